package spritefont

import (
	_ "embed"

	"github.com/memmaker/spritefont/engine/glhf"
)

//go:embed shader/font.vert
var fontVertexShader string

//go:embed shader/font.frag
var fontFragmentShader string

const renderStatesBlock = "render_states"

var fontVertexFormat = glhf.AttrFormat{
	{Name: "position", Type: glhf.Vec2},
	{Name: "texCoord", Type: glhf.Vec2},
	{Name: "color", Type: glhf.Vec4},
}

var fontUniformFormat = glhf.AttrFormat{
	{Name: "u_Font", Type: glhf.Int},
}

const fontSamplerUniform = 0

// floatsPerVertex must match fontVertexFormat.
const floatsPerVertex = 2 + 2 + 4
