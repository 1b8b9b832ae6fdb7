package spritefont

// recordingTarget is a DrawTarget that records every batch instead of
// drawing it.
type recordingTarget struct {
	calls    []string
	batches  [][]Vertex
	states   []RenderState
	counts   []int
	begun    int
	released int
}

func (r *recordingTarget) Begin() {
	r.begun++
	r.calls = append(r.calls, "begin")
}

func (r *recordingTarget) SetVertices(vertices []Vertex) {
	r.calls = append(r.calls, "vertices")
	r.batches = append(r.batches, append([]Vertex(nil), vertices...))
}

func (r *recordingTarget) SetRenderState(state RenderState) {
	r.calls = append(r.calls, "state")
	r.states = append(r.states, state)
}

func (r *recordingTarget) DrawQuads(count int) {
	r.calls = append(r.calls, "draw")
	r.counts = append(r.counts, count)
}

func (r *recordingTarget) End() {
	r.calls = append(r.calls, "end")
}

func (r *recordingTarget) Release() {
	r.released++
}

func (r *recordingTarget) draws() int {
	return len(r.counts)
}
