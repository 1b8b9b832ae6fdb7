// Package spritefont draws text from a pre-rendered glyph atlas. Text is laid
// out into textured quads with the current Style, queued, and submitted in
// bounded batches on Flush.
package spritefont

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/memmaker/spritefont/engine/glhf"
	"github.com/memmaker/spritefont/engine/pixel"
	"github.com/memmaker/spritefont/engine/sff"
	"github.com/memmaker/spritefont/engine/util"
)

// Renderer is the text drawing facade. It is not safe for concurrent use and
// must only be used on the thread that owns the GL context.
type Renderer struct {
	atlas    *sff.Atlas
	texSize  mgl32.Vec2
	style    Style
	batch    *Batcher
	target   DrawTarget
	scratch  []Quad
	released bool
}

// New creates a renderer drawing with OpenGL from an encoded atlas and the
// encoded image of its glyph sheet. glhf.Init must have been called.
//
// The glyph mask is taken from the alpha channel of the image, or from its
// red channel when the image has no alpha.
func New(atlasData, imageData []byte) (*Renderer, error) {
	if !glhf.Initialized() {
		return nil, errors.New("spritefont: glhf.Init has not been called")
	}
	atlas, err := sff.Load(atlasData)
	if err != nil {
		util.LogAtlasError(err.Error())
		return nil, errors.Wrap(err, "spritefont: load atlas")
	}
	img, format, err := pixel.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, errors.Wrap(err, "spritefont: load glyph sheet")
	}
	mask, ok := pixel.GlyphMask(img)
	if !ok {
		return nil, errors.Errorf("spritefont: glyph sheet format %v has no usable channel", img.Format())
	}
	util.LogTextureDebug(fmt.Sprintf("glyph sheet %dx%d %s (%v), mask %v", img.Width(), img.Height(), format, img.Format(), mask.Format()))

	texture, err := glhf.NewTextureFromBuffer(mask, true)
	if err != nil {
		util.LogTextureError(err.Error())
		return nil, errors.Wrap(err, "spritefont: upload glyph sheet")
	}
	target, err := newGLTarget(texture, MaxQuadsPerDraw)
	if err != nil {
		return nil, errors.Wrap(err, "spritefont: create draw target")
	}
	r, err := NewWithTarget(atlas, mask.Width(), mask.Height(), target)
	if err != nil {
		target.Release()
		return nil, err
	}
	return r, nil
}

// NewWithTarget creates a renderer submitting to target. texWidth and
// texHeight are the glyph sheet size used to normalize texture coordinates.
// Both must be positive. The renderer takes ownership of target and releases
// it in Release; on error the caller keeps it.
func NewWithTarget(atlas *sff.Atlas, texWidth, texHeight int, target DrawTarget) (*Renderer, error) {
	if texWidth <= 0 || texHeight <= 0 {
		return nil, errors.Errorf("spritefont: invalid glyph sheet size %dx%d", texWidth, texHeight)
	}
	util.LogAtlasInfo(fmt.Sprintf("atlas with %d glyphs, nominal size %v", atlas.GlyphCount(), atlas.NominalFontSize()))
	return &Renderer{
		atlas:   atlas,
		texSize: mgl32.Vec2{float32(texWidth), float32(texHeight)},
		style:   DefaultStyle(),
		batch:   NewBatcher(target, MaxQuadsPerDraw),
		target:  target,
	}, nil
}

// SetScreen sets an orthographic projection mapping the given bounds to the
// viewport. SetScreen(0, w, h, 0) puts the origin at the top left corner.
func (r *Renderer) SetScreen(left, right, bottom, top float32) {
	r.batch.SetRenderState(RenderState{ViewProjection: mgl32.Ortho2D(left, right, bottom, top)})
}

func (r *Renderer) SetColor(red, green, blue, alpha float32) {
	r.style.Color = mgl32.Vec4{red, green, blue, alpha}
}

// SetSize sets the glyph size in device pixels; 0 restores the nominal size.
func (r *Renderer) SetSize(size float32) {
	r.style.Size = size
}

func (r *Renderer) SetSpacing(spacing float32) {
	r.style.Spacing = spacing
}

func (r *Renderer) SetMonospace(monospace bool) {
	r.style.Monospace = monospace
}

func (r *Renderer) Style() Style {
	return r.style
}

// AddText lays out text at (x, y) with the current style and queues the
// resulting quads. It returns the cursor position after the last code point.
func (r *Renderer) AddText(x, y float32, text []rune) mgl32.Vec2 {
	origin := mgl32.Vec2{x, y}
	if r.released {
		util.LogTextWarning("AddText on released renderer")
		return origin
	}
	var cursor mgl32.Vec2
	r.scratch, cursor = Layout(r.scratch[:0], origin, text, r.style, r.atlas, r.texSize)
	r.batch.Enqueue(r.scratch...)
	return cursor
}

// AddString is AddText for UTF-8 text.
func (r *Renderer) AddString(x, y float32, text string) mgl32.Vec2 {
	return r.AddText(x, y, []rune(text))
}

// Measure returns the width text would occupy with the current style.
func (r *Renderer) Measure(text []rune) float32 {
	return Measure(text, r.style, r.atlas)
}

// Pending returns the number of queued quads.
func (r *Renderer) Pending() int {
	return r.batch.Pending()
}

// Flush draws all queued text and empties the queue.
func (r *Renderer) Flush() {
	if r.released {
		return
	}
	if draws := r.batch.Flush(); draws > 0 {
		util.LogGlDebug(fmt.Sprintf("flushed text in %d draw calls", draws))
	}
}

// Release frees the draw target. Queued text is dropped. Calling Release more
// than once has no effect.
func (r *Renderer) Release() {
	if r.released {
		return
	}
	r.released = true
	r.batch.Discard()
	r.target.Release()
}
