package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// SamplerDesc configures wrapping and filtering of a Sampler.
type SamplerDesc struct {
	WrapS, WrapT, WrapR  int32
	MinFilter, MagFilter int32
}

// DefaultSamplerDesc clamps to the edge and filters linearly.
func DefaultSamplerDesc() SamplerDesc {
	return SamplerDesc{
		WrapS:     gl.CLAMP_TO_EDGE,
		WrapT:     gl.CLAMP_TO_EDGE,
		WrapR:     gl.CLAMP_TO_EDGE,
		MinFilter: gl.LINEAR,
		MagFilter: gl.LINEAR,
	}
}

// Sampler is an OpenGL sampler object. A bound sampler overrides the sampling
// parameters of the texture bound to the same unit.
type Sampler struct {
	obj uint32
}

func NewSampler(desc SamplerDesc) (*Sampler, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	s := &Sampler{}
	gl.GenSamplers(1, &s.obj)
	gl.SamplerParameteri(s.obj, gl.TEXTURE_WRAP_S, desc.WrapS)
	gl.SamplerParameteri(s.obj, gl.TEXTURE_WRAP_T, desc.WrapT)
	gl.SamplerParameteri(s.obj, gl.TEXTURE_WRAP_R, desc.WrapR)
	gl.SamplerParameteri(s.obj, gl.TEXTURE_MIN_FILTER, desc.MinFilter)
	gl.SamplerParameteri(s.obj, gl.TEXTURE_MAG_FILTER, desc.MagFilter)
	if err := checkError("create sampler"); err != nil {
		gl.DeleteSamplers(1, &s.obj)
		return nil, err
	}
	runtime.SetFinalizer(s, (*Sampler).delete)
	return s, nil
}

func (s *Sampler) delete() {
	mainthread.CallNonBlock(func() {
		gl.DeleteSamplers(1, &s.obj)
	})
}

// Release deletes the sampler right away. It must be called on the GL thread.
func (s *Sampler) Release() {
	if s.obj == 0 {
		return
	}
	runtime.SetFinalizer(s, nil)
	gl.DeleteSamplers(1, &s.obj)
	s.obj = 0
}

// Begin binds the sampler to texture unit slot.
func (s *Sampler) Begin(slot uint32) {
	gl.BindSampler(slot, s.obj)
}

// End unbinds the sampler from texture unit slot.
func (s *Sampler) End(slot uint32) {
	gl.BindSampler(slot, 0)
}
