package spritefont

// MaxQuadsPerDraw is the default number of quads submitted per draw call.
const MaxQuadsPerDraw = 1024

// DrawTarget receives the batches produced by a Batcher. Vertices hold
// VerticesPerQuad entries per quad; DrawQuads draws the first count quads of
// the last uploaded vertices as two triangles each.
type DrawTarget interface {
	Begin()
	SetVertices(vertices []Vertex)
	SetRenderState(state RenderState)
	DrawQuads(count int)
	End()
	Release()
}

// Batcher queues quads and submits them to a DrawTarget in chunks of at most
// Capacity quads.
type Batcher struct {
	target   DrawTarget
	capacity int
	state    RenderState
	pending  []Quad
	scratch  []Vertex
}

// NewBatcher returns a batcher drawing at most capacity quads per draw. A
// capacity <= 0 selects MaxQuadsPerDraw.
func NewBatcher(target DrawTarget, capacity int) *Batcher {
	if capacity <= 0 {
		capacity = MaxQuadsPerDraw
	}
	return &Batcher{
		target:   target,
		capacity: capacity,
		scratch:  make([]Vertex, 0, capacity*VerticesPerQuad),
	}
}

func (b *Batcher) Capacity() int {
	return b.capacity
}

// SetRenderState sets the state uploaded with every following batch.
func (b *Batcher) SetRenderState(state RenderState) {
	b.state = state
}

// Enqueue appends quads to the pending queue. The queue grows without bound
// until Flush.
func (b *Batcher) Enqueue(quads ...Quad) {
	b.pending = append(b.pending, quads...)
}

// Pending returns the number of queued quads.
func (b *Batcher) Pending() int {
	return len(b.pending)
}

// Flush draws every pending quad in enqueue order and clears the queue. It
// returns the number of draw calls issued, which is zero for an empty queue.
func (b *Batcher) Flush() int {
	if len(b.pending) == 0 {
		return 0
	}
	draws := 0
	b.target.Begin()
	for start := 0; start < len(b.pending); start += b.capacity {
		end := start + b.capacity
		if end > len(b.pending) {
			end = len(b.pending)
		}
		b.scratch = b.scratch[:0]
		for _, q := range b.pending[start:end] {
			b.scratch = appendVertices(b.scratch, q)
		}
		b.target.SetVertices(b.scratch)
		b.target.SetRenderState(b.state)
		b.target.DrawQuads(end - start)
		draws++
	}
	b.target.End()
	b.pending = b.pending[:0]
	return draws
}

// Discard drops all pending quads without drawing them.
func (b *Batcher) Discard() {
	b.pending = b.pending[:0]
}
