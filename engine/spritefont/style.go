package spritefont

import "github.com/go-gl/mathgl/mgl32"

// Style controls how text is laid out. Changing a Style only affects text
// added afterwards.
type Style struct {
	// Size is the target glyph size in device pixels. 0 uses the nominal
	// size of the atlas.
	Size float32
	// Spacing multiplies every advance.
	Spacing float32
	// Monospace advances every glyph by the default cell width instead of
	// its own width.
	Monospace bool
	Color     mgl32.Vec4
}

// DefaultStyle returns opaque white text at the nominal size.
func DefaultStyle() Style {
	return Style{
		Spacing: 1,
		Color:   mgl32.Vec4{1, 1, 1, 1},
	}
}
