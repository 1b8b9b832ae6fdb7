// Package glhf wraps the OpenGL objects used by the sprite font renderer:
// shaders, vertex arrays, uniform buffers, samplers and textures. Every object
// owns exactly one GL name, binds with Begin, restores the previous binding
// with End and frees its name with Release.
//
// All functions must be called from the thread that owns the GL context.
package glhf

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

var initialized bool

var errNotInitialized = errors.New("glhf: Init has not been called")

// Init loads the OpenGL function pointers. Call it once, after a context has
// been made current and before creating any object of this package. Calling
// it again before Terminate is a no-op.
func Init() error {
	if initialized {
		return nil
	}
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "glhf: init")
	}
	initialized = true
	return nil
}

// Terminate marks the package as uninitialized. Objects created before must
// have been released; Init has to be called again for a new context.
func Terminate() {
	initialized = false
}

// Initialized reports whether Init succeeded and Terminate was not called since.
func Initialized() bool {
	return initialized
}

// Clear clears the current framebuffer's color buffer with the given color.
func Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Bounds sets the drawing bounds in pixels.
func Bounds(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
}

// EnableAlphaBlending enables non-premultiplied alpha blending, as needed to
// draw glyph masks over the existing framebuffer contents.
func EnableAlphaBlending() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// DisableBlending turns blending off again.
func DisableBlending() {
	gl.Disable(gl.BLEND)
}

// checkError reports the first pending GL error, if any.
func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("glhf: %s: gl error 0x%04x", op, code)
	}
	return nil
}
