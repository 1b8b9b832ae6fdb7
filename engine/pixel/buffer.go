package pixel

import (
	"encoding/binary"
	"math"

	"github.com/memmaker/spritefont/engine/debug"
)

// Buffer is a tightly packed 2D pixel buffer. The storage always holds exactly
// Width()*Height()*Format().BytesPerPixel() bytes.
type Buffer struct {
	format        Format
	width, height int
	pix           []byte
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(format Format, width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(format, width, height)
	return b
}

// Resize reallocates the storage for the given format and size. The previous
// contents are discarded and slices returned by Pix before the call no longer
// refer to this buffer.
func (b *Buffer) Resize(format Format, width, height int) {
	if width < 0 || height < 0 {
		panic("pixel: negative buffer size")
	}
	b.format = format
	b.width = width
	b.height = height
	b.pix = make([]byte, width*height*format.BytesPerPixel())
}

// Clear resets the buffer to an empty Unknown buffer.
func (b *Buffer) Clear() {
	b.format = Unknown
	b.width = 0
	b.height = 0
	b.pix = nil
}

func (b *Buffer) Format() Format { return b.format }
func (b *Buffer) Width() int     { return b.width }
func (b *Buffer) Height() int    { return b.height }

// Pix returns the raw storage, row by row without padding.
func (b *Buffer) Pix() []byte { return b.pix }

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int { return b.width * b.format.BytesPerPixel() }

// PixOffset returns the index of the first byte of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.width + x) * b.format.BytesPerPixel()
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// pixel returns the bytes of pixel (x, y).
func (b *Buffer) pixel(x, y int) []byte {
	i := b.PixOffset(x, y)
	return b.pix[i : i+b.format.BytesPerPixel()]
}

// Element types for typed access. The array length is the channel count.
type (
	R8UPixel    = [1]uint8
	RG8UPixel   = [2]uint8
	RGB8UPixel  = [3]uint8
	RGBA8UPixel = [4]uint8

	R8IPixel    = [1]int8
	RG8IPixel   = [2]int8
	RGB8IPixel  = [3]int8
	RGBA8IPixel = [4]int8

	R32FPixel    = [1]float32
	RG32FPixel   = [2]float32
	RGB32FPixel  = [3]float32
	RGBA32FPixel = [4]float32
)

// Pixel is the set of element types accepted by At and Set.
type Pixel interface {
	R8UPixel | RG8UPixel | RGB8UPixel | RGBA8UPixel |
		R8IPixel | RG8IPixel | RGB8IPixel | RGBA8IPixel |
		R32FPixel | RG32FPixel | RGB32FPixel | RGBA32FPixel
}

// FormatOf returns the Format that stores elements of type T.
func FormatOf[T Pixel]() Format {
	var v T
	switch any(v).(type) {
	case R8UPixel:
		return R8U
	case RG8UPixel:
		return RG8U
	case RGB8UPixel:
		return RGB8U
	case RGBA8UPixel:
		return RGBA8U
	case R8IPixel:
		return R8I
	case RG8IPixel:
		return RG8I
	case RGB8IPixel:
		return RGB8I
	case RGBA8IPixel:
		return RGBA8I
	case R32FPixel:
		return R32F
	case RG32FPixel:
		return RG32F
	case RGB32FPixel:
		return RGB32F
	case RGBA32FPixel:
		return RGBA32F
	}
	return Unknown
}

// At returns pixel (x, y) as element type T. In debug builds it panics if T
// does not match the buffer format or the coordinate is out of range.
func At[T Pixel](b *Buffer, x, y int) T {
	debug.Assert(FormatOf[T]() == b.format, "pixel: element type does not match buffer format")
	debug.Assert(b.inBounds(x, y), "pixel: coordinate out of range")
	var v T
	decodePixel(any(&v), b.pixel(x, y))
	return v
}

// Set stores v at pixel (x, y). The same debug checks as for At apply.
func Set[T Pixel](b *Buffer, x, y int, v T) {
	debug.Assert(FormatOf[T]() == b.format, "pixel: element type does not match buffer format")
	debug.Assert(b.inBounds(x, y), "pixel: coordinate out of range")
	encodePixel(b.pixel(x, y), any(&v))
}

func decodePixel(dst any, src []byte) {
	switch p := dst.(type) {
	case *R8UPixel:
		copy(p[:], src)
	case *RG8UPixel:
		copy(p[:], src)
	case *RGB8UPixel:
		copy(p[:], src)
	case *RGBA8UPixel:
		copy(p[:], src)
	case *R8IPixel:
		readInt8(p[:], src)
	case *RG8IPixel:
		readInt8(p[:], src)
	case *RGB8IPixel:
		readInt8(p[:], src)
	case *RGBA8IPixel:
		readInt8(p[:], src)
	case *R32FPixel:
		readFloat32(p[:], src)
	case *RG32FPixel:
		readFloat32(p[:], src)
	case *RGB32FPixel:
		readFloat32(p[:], src)
	case *RGBA32FPixel:
		readFloat32(p[:], src)
	}
}

func encodePixel(dst []byte, src any) {
	switch p := src.(type) {
	case *R8UPixel:
		copy(dst, p[:])
	case *RG8UPixel:
		copy(dst, p[:])
	case *RGB8UPixel:
		copy(dst, p[:])
	case *RGBA8UPixel:
		copy(dst, p[:])
	case *R8IPixel:
		writeInt8(dst, p[:])
	case *RG8IPixel:
		writeInt8(dst, p[:])
	case *RGB8IPixel:
		writeInt8(dst, p[:])
	case *RGBA8IPixel:
		writeInt8(dst, p[:])
	case *R32FPixel:
		writeFloat32(dst, p[:])
	case *RG32FPixel:
		writeFloat32(dst, p[:])
	case *RGB32FPixel:
		writeFloat32(dst, p[:])
	case *RGBA32FPixel:
		writeFloat32(dst, p[:])
	}
}

func readInt8(dst []int8, src []byte) {
	for i := range dst {
		dst[i] = int8(src[i])
	}
}

func writeInt8(dst []byte, src []int8) {
	for i, v := range src {
		dst[i] = byte(v)
	}
}

func readFloat32(dst []float32, src []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
}

func writeFloat32(dst []byte, src []float32) {
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
