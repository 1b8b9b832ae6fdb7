package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// UniformBuffer is a fixed size buffer backing a std140 uniform block.
type UniformBuffer struct {
	ubo  binder
	size int
}

// NewUniformBuffer allocates size bytes of uniform storage.
func NewUniformBuffer(size int) (*UniformBuffer, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	u := &UniformBuffer{
		ubo: binder{
			restoreLoc: gl.UNIFORM_BUFFER_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindBuffer(gl.UNIFORM_BUFFER, obj)
			},
		},
		size: size,
	}
	gl.GenBuffers(1, &u.ubo.obj)
	u.ubo.bind()
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	u.ubo.restore()
	if err := checkError("create uniform buffer"); err != nil {
		gl.DeleteBuffers(1, &u.ubo.obj)
		return nil, err
	}
	runtime.SetFinalizer(u, (*UniformBuffer).delete)
	return u, nil
}

func (u *UniformBuffer) delete() {
	mainthread.CallNonBlock(func() {
		gl.DeleteBuffers(1, &u.ubo.obj)
	})
}

// Release deletes the buffer right away. It must be called on the GL thread.
func (u *UniformBuffer) Release() {
	if u.ubo.obj == 0 {
		return
	}
	runtime.SetFinalizer(u, nil)
	gl.DeleteBuffers(1, &u.ubo.obj)
	u.ubo.obj = 0
}

func (u *UniformBuffer) Size() int {
	return u.size
}

// SetData overwrites the start of the buffer with data.
func (u *UniformBuffer) SetData(data []float32) error {
	if len(data)*SizeOfFloat32 > u.size {
		return errors.Errorf("glhf: %d bytes exceed uniform buffer of %d bytes", len(data)*SizeOfFloat32, u.size)
	}
	if len(data) == 0 {
		return nil
	}
	u.ubo.bind()
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data)*SizeOfFloat32, gl.Ptr(data))
	u.ubo.restore()
	return nil
}

// BindBase attaches the buffer to an indexed uniform binding point.
func (u *UniformBuffer) BindBase(binding uint32) {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, u.ubo.obj)
}
