package pixel

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	_ "github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any registered format (png, jpeg, gif, bmp, tiff,
// webp and the netpbm family) and imports it with FromImage. It returns the
// name of the detected format.
func Decode(r io.Reader) (*Buffer, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", errors.Wrap(err, "pixel: decode image")
	}
	return FromImage(img), name, nil
}

// FromImage copies img into a new buffer. Gray and alpha images become R8U,
// YCbCr images (jpeg) and every other opaque image RGB8U, and images with
// transparency non-premultiplied RGBA8U. Opaque sources therefore never get a
// synthetic alpha channel and GlyphMask falls back to their red channel.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	switch src := img.(type) {
	case *image.Gray:
		b := NewBuffer(R8U, w, h)
		for y := 0; y < h; y++ {
			copy(b.pix[y*w:(y+1)*w], src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):])
		}
		return b
	case *image.Gray16:
		b := NewBuffer(R8U, w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				b.pix[y*w+x] = uint8(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y >> 8)
			}
		}
		return b
	case *image.Alpha:
		b := NewBuffer(R8U, w, h)
		for y := 0; y < h; y++ {
			copy(b.pix[y*w:(y+1)*w], src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):])
		}
		return b
	case *image.YCbCr:
		b := NewBuffer(RGB8U, w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := src.YCbCrAt(bounds.Min.X+x, bounds.Min.Y+y)
				r, g, bl := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
				i := b.PixOffset(x, y)
				b.pix[i], b.pix[i+1], b.pix[i+2] = r, g, bl
			}
		}
		return b
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) || nrgba.Stride != 4*w {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	if isOpaque(img) {
		b := NewBuffer(RGB8U, w, h)
		for i := 0; i < w*h; i++ {
			copy(b.pix[i*3:i*3+3], nrgba.Pix[i*4:i*4+3])
		}
		return b
	}
	b := NewBuffer(RGBA8U, w, h)
	copy(b.pix, nrgba.Pix)
	return b
}

// isOpaque uses the Opaque method of the standard image types (RGBA,
// NRGBA, Paletted, ...) and treats everything else as possibly transparent.
func isOpaque(img image.Image) bool {
	o, ok := img.(interface{ Opaque() bool })
	return ok && o.Opaque()
}

// ToImage returns a copy of the buffer as an image. R8U buffers become
// *image.Gray, every other format is converted to *image.NRGBA with missing
// channels set to 0 and alpha to opaque.
func (b *Buffer) ToImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)
	if b.format == R8U {
		img := image.NewGray(rect)
		copy(img.Pix, b.pix)
		return img
	}
	img := image.NewNRGBA(rect)
	channels := b.format.Channels()
	bpp := b.format.BytesPerPixel()
	if bpp == 0 {
		return img
	}
	for i := 0; i < b.width*b.height; i++ {
		px := b.pix[i*bpp : (i+1)*bpp]
		out := img.Pix[i*4 : i*4+4]
		out[3] = 255
		for ch := 0; ch < channels; ch++ {
			out[ch] = channelToU8(b.format, px, ch)
		}
	}
	return img
}
