package pixel

import (
	"encoding/binary"
	"math"
)

// Convert returns a new buffer of the same size in format dst. fn is called
// once per pixel with the destination and source bytes of that pixel and
// must not retain either slice.
func (b *Buffer) Convert(dst Format, fn func(dst, src []byte)) *Buffer {
	out := NewBuffer(dst, b.width, b.height)
	sbpp := b.format.BytesPerPixel()
	dbpp := dst.BytesPerPixel()
	n := b.width * b.height
	for i := 0; i < n; i++ {
		fn(out.pix[i*dbpp:(i+1)*dbpp], b.pix[i*sbpp:(i+1)*sbpp])
	}
	return out
}

// ExtractChannel copies channel ch of every pixel into a new R8U buffer.
// Signed and float channels are mapped to the 0-255 range, negative values
// clamp to 0. It returns false if the format has no channel ch.
func (b *Buffer) ExtractChannel(ch int) (*Buffer, bool) {
	if ch < 0 || ch >= b.format.Channels() {
		return nil, false
	}
	format := b.format
	return b.Convert(R8U, func(dst, src []byte) {
		dst[0] = channelToU8(format, src, ch)
	}), true
}

// ExtractAlpha copies the alpha channel of a 4 channel buffer into a new R8U
// buffer. It returns false if the buffer does not have 4 channels.
func ExtractAlpha(src *Buffer) (*Buffer, bool) {
	if src.format.Channels() != 4 {
		return nil, false
	}
	return src.ExtractChannel(3)
}

// ExtractRed copies the first channel into a new R8U buffer. It returns false
// only for Unknown buffers.
func ExtractRed(src *Buffer) (*Buffer, bool) {
	return src.ExtractChannel(0)
}

// GlyphMask derives the single channel coverage mask of a font sheet: the
// alpha channel when src has one, the red channel otherwise.
func GlyphMask(src *Buffer) (*Buffer, bool) {
	if mask, ok := ExtractAlpha(src); ok {
		return mask, true
	}
	return ExtractRed(src)
}

func channelToU8(f Format, px []byte, ch int) uint8 {
	switch {
	case f.IsFloat():
		v := math.Float32frombits(binary.LittleEndian.Uint32(px[ch*4:]))
		return unitToU8(v)
	case f.IsSigned():
		v := int8(px[ch])
		if v <= 0 {
			return 0
		}
		return uint8(int(v) * 255 / 127)
	}
	return px[ch]
}

func unitToU8(v float32) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
