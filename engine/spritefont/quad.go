package spritefont

import "github.com/go-gl/mathgl/mgl32"

// Quad is an axis aligned, textured and tinted rectangle in screen space.
type Quad struct {
	Pos, Size     mgl32.Vec2
	UVPos, UVSize mgl32.Vec2
	Color         mgl32.Vec4
}

// Max returns the corner opposite to Pos.
func (q Quad) Max() mgl32.Vec2 {
	return q.Pos.Add(q.Size)
}

// UVMax returns the texture coordinate opposite to UVPos.
func (q Quad) UVMax() mgl32.Vec2 {
	return q.UVPos.Add(q.UVSize)
}

// Vertex is the vertex layout consumed by the font shader.
type Vertex struct {
	Pos      mgl32.Vec2
	TexCoord mgl32.Vec2
	Color    mgl32.Vec4
}

// VerticesPerQuad is the number of vertices written per quad.
const VerticesPerQuad = 4

// appendVertices appends the corners of q in the order
// (min.x,min.y), (min.x,max.y), (max.x,max.y), (max.x,min.y).
func appendVertices(dst []Vertex, q Quad) []Vertex {
	pMax, tMax := q.Max(), q.UVMax()
	return append(dst,
		Vertex{Pos: q.Pos, TexCoord: q.UVPos, Color: q.Color},
		Vertex{Pos: mgl32.Vec2{q.Pos.X(), pMax.Y()}, TexCoord: mgl32.Vec2{q.UVPos.X(), tMax.Y()}, Color: q.Color},
		Vertex{Pos: pMax, TexCoord: tMax, Color: q.Color},
		Vertex{Pos: mgl32.Vec2{pMax.X(), q.Pos.Y()}, TexCoord: mgl32.Vec2{tMax.X(), q.UVPos.Y()}, Color: q.Color},
	)
}

// RenderState is uploaded once per draw.
type RenderState struct {
	ViewProjection mgl32.Mat4
}
