package spritefont

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/spritefont/engine/sff"
)

// GlyphSource resolves code points to glyph records. *sff.Atlas implements
// it.
type GlyphSource interface {
	Glyph(cp rune) (sff.Glyph, bool)
	NominalFontSize() float32
}

// halfWidthLimit is the last code point guessed to be half width when no
// glyph is present or monospace is requested.
const halfWidthLimit = 0xFF

// Layout appends one quad per present glyph of text to dst, starting at
// origin, and returns the extended slice together with the cursor after the
// last code point. texSize is the size of the glyph sheet in pixels.
//
// Only the x coordinate of the cursor advances. Code points without a glyph
// produce no quad but still advance by the default cell width.
func Layout(dst []Quad, origin mgl32.Vec2, text []rune, style Style, glyphs GlyphSource, texSize mgl32.Vec2) ([]Quad, mgl32.Vec2) {
	cursor := origin
	if len(text) == 0 {
		return dst, cursor
	}
	m := newMetrics(style, glyphs.NominalFontSize())
	for _, cp := range text {
		g, ok := glyphs.Glyph(cp)
		if ok {
			w, h := float32(g.W), float32(g.H)
			dst = append(dst, Quad{
				Pos:    mgl32.Vec2{cursor.X() + float32(g.Offset)*m.scale, cursor.Y()},
				Size:   mgl32.Vec2{w * m.scale, h * m.scale},
				UVPos:  mgl32.Vec2{float32(g.U) / texSize.X(), float32(g.V) / texSize.Y()},
				UVSize: mgl32.Vec2{w / texSize.X(), h / texSize.Y()},
				Color:  style.Color,
			})
		}
		cursor[0] += m.advance(cp, g, ok)
	}
	return dst, cursor
}

// Measure returns the horizontal advance Layout would produce for text.
func Measure(text []rune, style Style, glyphs GlyphSource) float32 {
	if len(text) == 0 {
		return 0
	}
	m := newMetrics(style, glyphs.NominalFontSize())
	var width float32
	for _, cp := range text {
		g, ok := glyphs.Glyph(cp)
		width += m.advance(cp, g, ok)
	}
	return width
}

type metrics struct {
	nominal, scale, spacing float32
	monospace               bool
}

func newMetrics(style Style, nominal float32) metrics {
	size := style.Size
	if size == 0 {
		size = nominal
	}
	return metrics{
		nominal:   nominal,
		scale:     size / nominal,
		spacing:   style.Spacing,
		monospace: style.Monospace,
	}
}

// advance returns how far the cursor moves past cp. Absent glyphs and
// monospace text use the cell width guessed from the code point range.
func (m metrics) advance(cp rune, g sff.Glyph, present bool) float32 {
	if present && !m.monospace {
		return (float32(g.W)*m.scale + float32(g.Offset)*m.scale) * m.spacing
	}
	cell := m.nominal
	if cp <= halfWidthLimit {
		cell = m.nominal * 0.5
	}
	return cell * m.scale * m.spacing
}
