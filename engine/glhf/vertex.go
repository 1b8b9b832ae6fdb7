package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// GlFloat is the element type of vertex data uploaded to a VertexSlice.
type GlFloat float32

// VertexSlice points to a portion of (or possibly whole) vertex array. It is used as a pointer,
// contrary to Go's builtin slices, so that sub-slices share the GL buffers of their parent.
//
// Note that you need to Begin a VertexSlice before getting or updating it's elements or drawing it.
// After you're done with it, you need to End it.
type VertexSlice struct {
	va                   *vertexArray
	startIndex, endIndex int
}

// MakeIndexedVertexSlice allocates a vertex array with the given capacity and
// a static element buffer holding indices. The returned slice covers the first
// len vertices. The array is specialized for shader and can't be used with
// another one.
func MakeIndexedVertexSlice(shader *Shader, len, cap int, indices []uint32) (*VertexSlice, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	if len > cap {
		return nil, errors.Errorf("glhf: vertex slice len %d > cap %d", len, cap)
	}
	va, err := newVertexArray(shader, cap, indices)
	if err != nil {
		return nil, err
	}
	return &VertexSlice{
		va:         va,
		startIndex: 0,
		endIndex:   len,
	}, nil
}

// Stride returns the number of float32 elements occupied by one vertex.
func (vs *VertexSlice) Stride() int {
	return vs.va.stride / SizeOfFloat32
}

// Len returns the length of the VertexSlice (number of vertices).
func (vs *VertexSlice) Len() int {
	return vs.endIndex - vs.startIndex
}

// Slice returns a sub-slice of this VertexSlice covering the range [i, j) (relative to this
// VertexSlice).
//
// Note, that the returned VertexSlice shares an underlying vertex array with the original
// VertexSlice. Modifying the contents of one modifies corresponding contents of the other.
func (vs *VertexSlice) Slice(i, j int) *VertexSlice {
	if i < 0 || j < i || vs.startIndex+j > vs.va.cap {
		panic("failed to slice vertex slice: index out of range")
	}
	return &VertexSlice{
		va:         vs.va,
		startIndex: vs.startIndex + i,
		endIndex:   vs.startIndex + j,
	}
}

// SetVertexData sets the contents of the VertexSlice.
//
// The data is a slice of floats, where each vertex attribute occupies a certain number of
// elements. Namely, Float occupies 1, Vec2 occupies 2, Vec3 occupies 3 and Vec4 occupies 4. The
// attribues in the data slice must be in the same order as in the vertex format of this Vertex
// Slice.
//
// If the length of vertices does not match the length of the VertexSlice, this method panics.
func (vs *VertexSlice) SetVertexData(data []GlFloat) {
	if len(data)/vs.Stride() != vs.Len() {
		panic("set vertex data: wrong length of vertices")
	}
	vs.va.setVertexData(vs.startIndex, vs.endIndex, data)
}

// DrawIndexed draws the first count elements of the index buffer as
// triangles. It panics if count exceeds the indices.
func (vs *VertexSlice) DrawIndexed(count int) {
	if count < 0 || count > len(vs.va.indices) {
		panic("draw indexed: count out of range")
	}
	if count == 0 {
		return
	}
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, gl.PtrOffset(0))
}

// Begin binds the underlying vertex array. Calling this method is necessary before using the VertexSlice.
func (vs *VertexSlice) Begin() {
	vs.va.begin()
}

// End unbinds the underlying vertex array. Call this method when you're done with VertexSlice.
func (vs *VertexSlice) End() {
	vs.va.end()
}

// Release deletes the vertex array and its buffers right away. Every slice
// sharing the array becomes unusable. It must be called on the GL thread.
func (vs *VertexSlice) Release() {
	vs.va.release()
}

type vertexArray struct {
	vao, vbo, ibo binder
	cap           int
	format        AttrFormat
	stride        int
	offset        []int
	shader        *Shader
	indices       []uint32
}

const vertexArrayMinCap = 4

func newVertexArray(shader *Shader, cap int, indices []uint32) (*vertexArray, error) {
	if cap < vertexArrayMinCap {
		cap = vertexArrayMinCap
	}

	va := &vertexArray{
		vao: binder{
			restoreLoc: gl.VERTEX_ARRAY_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindVertexArray(obj)
			},
		},
		vbo: binder{
			restoreLoc: gl.ARRAY_BUFFER_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindBuffer(gl.ARRAY_BUFFER, obj)
			},
		},
		ibo: binder{
			restoreLoc: gl.ELEMENT_ARRAY_BUFFER_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, obj)
			},
		},
		indices: indices,
		cap:     cap,
		format:  shader.VertexFormat(),
		stride:  shader.VertexFormat().Size(),
		offset:  make([]int, len(shader.VertexFormat())),
		shader:  shader,
	}

	offset := 0
	for i, attr := range va.format {
		switch attr.Type {
		case Float, Vec2, Vec3, Vec4:
		default:
			return nil, errors.Errorf("glhf: vertex attribute %q: unsupported type", attr.Name)
		}
		va.offset[i] = offset
		offset += attr.Type.Size()
	}

	gl.GenVertexArrays(1, &va.vao.obj)
	va.vao.bind()

	gl.GenBuffers(1, &va.vbo.obj)
	va.vbo.bind()
	gl.BufferData(gl.ARRAY_BUFFER, cap*va.stride, nil, gl.DYNAMIC_DRAW)
	va.setAttributes()

	// the element buffer binding is part of the vertex array state, so it is
	// bound while the vertex array is and left bound
	if len(indices) > 0 {
		gl.GenBuffers(1, &va.ibo.obj)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.ibo.obj)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	va.vbo.restore()
	va.vao.restore()

	if err := checkError("create vertex array"); err != nil {
		va.release()
		return nil, err
	}

	runtime.SetFinalizer(va, (*vertexArray).delete)

	return va, nil
}

func (va *vertexArray) setAttributes() {
	for i, attr := range va.format {
		loc := gl.GetAttribLocation(va.shader.program.obj, gl.Str(attr.Name+"\x00"))
		if loc < 0 {
			// optimized out by the compiler
			continue
		}

		var size int32
		switch attr.Type {
		case Float:
			size = 1
		case Vec2:
			size = 2
		case Vec3:
			size = 3
		case Vec4:
			size = 4
		}

		gl.VertexAttribPointerWithOffset(
			uint32(loc),
			size,
			gl.FLOAT,
			false,
			int32(va.stride),
			uintptr(va.offset[i]),
		)
		gl.EnableVertexAttribArray(uint32(loc))
	}
}

func (va *vertexArray) delete() {
	mainthread.CallNonBlock(func() {
		gl.DeleteVertexArrays(1, &va.vao.obj)
		gl.DeleteBuffers(1, &va.vbo.obj)
		if va.ibo.obj != 0 {
			gl.DeleteBuffers(1, &va.ibo.obj)
		}
	})
}

func (va *vertexArray) release() {
	if va.vao.obj == 0 {
		return
	}
	runtime.SetFinalizer(va, nil)
	gl.DeleteVertexArrays(1, &va.vao.obj)
	gl.DeleteBuffers(1, &va.vbo.obj)
	if va.ibo.obj != 0 {
		gl.DeleteBuffers(1, &va.ibo.obj)
	}
	va.vao.obj, va.vbo.obj, va.ibo.obj = 0, 0, 0
}

func (va *vertexArray) begin() {
	va.vao.bind()
	va.vbo.bind()
}

func (va *vertexArray) end() {
	va.vbo.restore()
	va.vao.restore()
}

func (va *vertexArray) setVertexData(i, j int, data []GlFloat) {
	if j-i == 0 {
		// avoid setting 0 bytes of buffer data
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, i*va.stride, len(data)*SizeOfFloat32, gl.Ptr(data))
}
