// Package pixel provides format tagged pixel buffers used to prepare images
// for upload as textures, e.g. the single channel glyph mask of a sprite font.
package pixel

import "fmt"

// Format describes the channel count and element type of a Buffer.
type Format int

const (
	Unknown Format = iota

	R8U
	RG8U
	RGB8U
	RGBA8U

	R8I
	RG8I
	RGB8I
	RGBA8I

	R32F
	RG32F
	RGB32F
	RGBA32F
)

var formatNames = [...]string{
	Unknown: "Unknown",
	R8U:     "R8U", RG8U: "RG8U", RGB8U: "RGB8U", RGBA8U: "RGBA8U",
	R8I: "R8I", RG8I: "RG8I", RGB8I: "RGB8I", RGBA8I: "RGBA8I",
	R32F: "R32F", RG32F: "RG32F", RGB32F: "RGB32F", RGBA32F: "RGBA32F",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Valid reports whether f is one of the known formats other than Unknown.
func (f Format) Valid() bool {
	return f > Unknown && f <= RGBA32F
}

// Channels returns the number of channels per pixel, 0 for Unknown.
func (f Format) Channels() int {
	if !f.Valid() {
		return 0
	}
	return (int(f)-1)%4 + 1
}

// ElementSize returns the size of a single channel in bytes.
func (f Format) ElementSize() int {
	switch {
	case f >= R8U && f <= RGBA8I:
		return 1
	case f >= R32F && f <= RGBA32F:
		return 4
	}
	return 0
}

// BytesPerPixel returns Channels() * ElementSize().
func (f Format) BytesPerPixel() int {
	return f.Channels() * f.ElementSize()
}

func (f Format) IsSigned() bool { return f >= R8I && f <= RGBA8I }
func (f Format) IsFloat() bool  { return f >= R32F && f <= RGBA32F }

// WithChannels returns the format with the same element type as f and n
// channels.
func (f Format) WithChannels(n int) Format {
	if !f.Valid() || n < 1 || n > 4 {
		return Unknown
	}
	base := f - Format(f.Channels()-1)
	return base + Format(n-1)
}
