package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"

	"github.com/memmaker/spritefont/engine/pixel"
)

// Texture is an OpenGL 2D texture.
type Texture struct {
	tex           binder
	width, height int
	format        pixel.Format
	smooth        bool
}

// textureFormat maps a pixel format to the internal format, pixel format and
// element type passed to glTexImage2D.
func textureFormat(f pixel.Format) (internal int32, format, xtype uint32, err error) {
	switch f {
	case pixel.R8U:
		return gl.R8, gl.RED, gl.UNSIGNED_BYTE, nil
	case pixel.R8I:
		return gl.R8_SNORM, gl.RED, gl.BYTE, nil
	case pixel.R32F:
		return gl.R32F, gl.RED, gl.FLOAT, nil
	case pixel.RG8U:
		return gl.RG8, gl.RG, gl.UNSIGNED_BYTE, nil
	case pixel.RG8I:
		return gl.RG8_SNORM, gl.RG, gl.BYTE, nil
	case pixel.RG32F:
		return gl.RG32F, gl.RG, gl.FLOAT, nil
	case pixel.RGB8U:
		return gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE, nil
	case pixel.RGB8I:
		return gl.RGB8_SNORM, gl.RGB, gl.BYTE, nil
	case pixel.RGB32F:
		return gl.RGB32F, gl.RGB, gl.FLOAT, nil
	case pixel.RGBA8U:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, nil
	case pixel.RGBA8I:
		return gl.RGBA8_SNORM, gl.RGBA, gl.BYTE, nil
	case pixel.RGBA32F:
		return gl.RGBA32F, gl.RGBA, gl.FLOAT, nil
	}
	return 0, 0, 0, errors.Errorf("glhf: unsupported texture format %v", f)
}

// NewTextureFromBuffer creates a texture with the size, format and contents
// of buf.
func NewTextureFromBuffer(buf *pixel.Buffer, smooth bool) (*Texture, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	internal, format, xtype, err := textureFormat(buf.Format())
	if err != nil {
		return nil, err
	}

	tex := &Texture{
		tex: binder{
			restoreLoc: gl.TEXTURE_BINDING_2D,
			bindFunc: func(obj uint32) {
				gl.BindTexture(gl.TEXTURE_2D, obj)
			},
		},
		width:  buf.Width(),
		height: buf.Height(),
		format: buf.Format(),
	}

	gl.GenTextures(1, &tex.tex.obj)

	tex.Begin()
	defer tex.End()

	var data interface{}
	if len(buf.Pix()) > 0 {
		data = buf.Pix()
	}
	// rows of single channel textures are not 4 byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		internal,
		int32(tex.width),
		int32(tex.height),
		0,
		format,
		xtype,
		gl.Ptr(data),
	)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	tex.SetSmooth(smooth)
	tex.SetWrapToClamp()

	if err := checkError("create texture"); err != nil {
		gl.DeleteTextures(1, &tex.tex.obj)
		return nil, err
	}
	runtime.SetFinalizer(tex, (*Texture).delete)

	return tex, nil
}

func (t *Texture) delete() {
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &t.tex.obj)
	})
}

// Release deletes the texture right away. It must be called on the GL thread.
func (t *Texture) Release() {
	if t.tex.obj == 0 {
		return
	}
	runtime.SetFinalizer(t, nil)
	gl.DeleteTextures(1, &t.tex.obj)
	t.tex.obj = 0
}

// ID returns the OpenGL ID of this Texture.
func (t *Texture) ID() uint32 {
	return t.tex.obj
}

// Width returns the width of the Texture in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the Texture in pixels.
func (t *Texture) Height() int {
	return t.height
}

// Format returns the pixel format the texture was created from.
func (t *Texture) Format() pixel.Format {
	return t.format
}

// SetSmooth sets whether the Texture should be drawn "smoothly" or "pixely".
//
// It affects how the Texture is drawn when zoomed. Smooth interpolates between the neighbour
// pixels, while pixely always chooses the nearest pixel. A bound Sampler overrides this.
func (t *Texture) SetSmooth(smooth bool) {
	t.smooth = smooth
	if smooth {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
}

func (t *Texture) SetWrapToClamp() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Smooth returns whether the Texture is set to be drawn "smooth" or "pixely".
func (t *Texture) Smooth() bool {
	return t.smooth
}

// Begin binds the Texture to the active texture unit. This is necessary before using the Texture.
func (t *Texture) Begin() {
	t.tex.bind()
}

// End unbinds the Texture and restores the previous one.
func (t *Texture) End() {
	t.tex.restore()
}
