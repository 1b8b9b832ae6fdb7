package spritefont

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/memmaker/spritefont/engine/glhf"
	"github.com/memmaker/spritefont/engine/util"
)

const (
	fontTextureUnit   = 0
	renderStatesSlot  = 0
	indicesPerQuad    = 6
	renderStatesBytes = 16 * glhf.SizeOfFloat32
)

// glTarget draws quads with the font shader from a dynamic vertex buffer and a
// static index buffer holding two triangles per quad.
type glTarget struct {
	texture    *glhf.Texture
	sampler    *glhf.Sampler
	shader     *glhf.Shader
	vertices   *glhf.VertexSlice
	states     *glhf.UniformBuffer
	blockIndex uint32
	capacity   int
	data       []glhf.GlFloat
}

func quadIndices(quads int) []uint32 {
	indices := make([]uint32, 0, quads*indicesPerQuad)
	for q := 0; q < quads; q++ {
		base := uint32(q * VerticesPerQuad)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return indices
}

// newGLTarget creates the GL objects needed to draw up to capacity quads per
// draw call sampling texture. The target takes ownership of texture. On error
// everything created so far, texture included, is released.
func newGLTarget(texture *glhf.Texture, capacity int) (*glTarget, error) {
	t := &glTarget{texture: texture, capacity: capacity}
	if err := t.init(); err != nil {
		t.Release()
		return nil, err
	}
	util.LogGlDebug(fmt.Sprintf("font target ready, %d quads per draw", capacity))
	return t, nil
}

func (t *glTarget) init() error {
	var err error
	t.shader, err = glhf.NewShader(fontVertexFormat, fontUniformFormat, fontVertexShader, fontFragmentShader)
	if err != nil {
		return errors.Wrap(err, "font shader")
	}
	var ok bool
	t.blockIndex, ok = t.shader.UniformBlockIndex(renderStatesBlock)
	if !ok {
		return errors.Errorf("font shader has no uniform block %q", renderStatesBlock)
	}
	t.vertices, err = glhf.MakeIndexedVertexSlice(t.shader, 0, t.capacity*VerticesPerQuad, quadIndices(t.capacity))
	if err != nil {
		return errors.Wrap(err, "font vertex buffer")
	}
	t.states, err = glhf.NewUniformBuffer(renderStatesBytes)
	if err != nil {
		return errors.Wrap(err, "render state buffer")
	}
	t.sampler, err = glhf.NewSampler(glhf.DefaultSamplerDesc())
	if err != nil {
		return errors.Wrap(err, "font sampler")
	}
	t.data = make([]glhf.GlFloat, 0, t.capacity*VerticesPerQuad*floatsPerVertex)
	return util.CheckForGLError("create font target")
}

func (t *glTarget) Begin() {
	t.shader.BindUniformBlock(t.blockIndex, renderStatesSlot, t.states)
	t.shader.Begin()
	t.shader.SetUniformAttr(fontSamplerUniform, int32(fontTextureUnit))
	t.sampler.Begin(fontTextureUnit)
	t.texture.Begin()
	t.vertices.Begin()
}

func (t *glTarget) SetVertices(vertices []Vertex) {
	t.data = t.data[:0]
	for _, v := range vertices {
		t.data = append(t.data,
			glhf.GlFloat(v.Pos[0]), glhf.GlFloat(v.Pos[1]),
			glhf.GlFloat(v.TexCoord[0]), glhf.GlFloat(v.TexCoord[1]),
			glhf.GlFloat(v.Color[0]), glhf.GlFloat(v.Color[1]), glhf.GlFloat(v.Color[2]), glhf.GlFloat(v.Color[3]),
		)
	}
	t.vertices.Slice(0, len(vertices)).SetVertexData(t.data)
}

func (t *glTarget) SetRenderState(state RenderState) {
	if err := t.states.SetData(state.ViewProjection[:]); err != nil {
		util.LogGlError(err.Error())
	}
}

func (t *glTarget) DrawQuads(count int) {
	t.vertices.DrawIndexed(count * indicesPerQuad)
}

func (t *glTarget) End() {
	t.vertices.End()
	t.texture.End()
	t.sampler.End(fontTextureUnit)
	t.shader.End()
}

// Release deletes every GL object of the target. Calling it again is a no-op.
func (t *glTarget) Release() {
	if t.vertices != nil {
		t.vertices.Release()
		t.vertices = nil
	}
	if t.states != nil {
		t.states.Release()
		t.states = nil
	}
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.shader != nil {
		t.shader.Release()
		t.shader = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
