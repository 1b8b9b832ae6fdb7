package spritefont

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// numberedQuads returns n quads whose x position is their index.
func numberedQuads(n int) []Quad {
	quads := make([]Quad, n)
	for i := range quads {
		quads[i] = Quad{
			Pos:   mgl32.Vec2{float32(i), 0},
			Size:  mgl32.Vec2{1, 1},
			Color: mgl32.Vec4{1, 1, 1, 1},
		}
	}
	return quads
}

func TestFlushBatchCount(t *testing.T) {
	tests := []struct {
		n, capacity int
		want        []int
	}{
		{1, 4, []int{1}},
		{4, 4, []int{4}},
		{5, 4, []int{4, 1}},
		{9, 4, []int{4, 4, 1}},
		{2048, MaxQuadsPerDraw, []int{1024, 1024}},
		{2500, MaxQuadsPerDraw, []int{1024, 1024, 452}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.n, tt.capacity), func(t *testing.T) {
			target := &recordingTarget{}
			b := NewBatcher(target, tt.capacity)
			b.Enqueue(numberedQuads(tt.n)...)

			if draws := b.Flush(); draws != len(tt.want) {
				t.Errorf("Flush returned %d, want %d", draws, len(tt.want))
			}
			if fmt.Sprint(target.counts) != fmt.Sprint(tt.want) {
				t.Errorf("draw counts = %v, want %v", target.counts, tt.want)
			}

			// every quad exactly once, in enqueue order
			next := 0
			for i, batch := range target.batches {
				if len(batch) != target.counts[i]*VerticesPerQuad {
					t.Errorf("batch %d has %d vertices for %d quads", i, len(batch), target.counts[i])
				}
				for v := 0; v < len(batch); v += VerticesPerQuad {
					if x := batch[v].Pos.X(); x != float32(next) {
						t.Fatalf("batch %d: quad %v out of order, want %d", i, x, next)
					}
					next++
				}
			}
			if next != tt.n {
				t.Errorf("drew %d quads, want %d", next, tt.n)
			}
			if b.Pending() != 0 {
				t.Errorf("%d quads pending after flush", b.Pending())
			}
		})
	}
}

func TestFlushCallOrder(t *testing.T) {
	target := &recordingTarget{}
	b := NewBatcher(target, 2)
	b.Enqueue(numberedQuads(3)...)
	b.Flush()

	want := "[begin vertices state draw vertices state draw end]"
	if got := fmt.Sprint(target.calls); got != want {
		t.Errorf("calls = %s, want %s", got, want)
	}
}

func TestFlushIdempotent(t *testing.T) {
	target := &recordingTarget{}
	b := NewBatcher(target, 0)
	b.Enqueue(numberedQuads(3)...)

	if draws := b.Flush(); draws != 1 {
		t.Fatalf("first flush drew %d batches", draws)
	}
	if draws := b.Flush(); draws != 0 {
		t.Errorf("second flush drew %d batches", draws)
	}
	if target.draws() != 1 || target.begun != 1 {
		t.Errorf("target saw %d draws and %d begins, want 1 and 1", target.draws(), target.begun)
	}
}

func TestFlushEmpty(t *testing.T) {
	target := &recordingTarget{}
	b := NewBatcher(target, 8)
	if draws := b.Flush(); draws != 0 {
		t.Errorf("Flush on empty queue drew %d batches", draws)
	}
	if len(target.calls) != 0 {
		t.Errorf("target touched: %v", target.calls)
	}
}

func TestDefaultCapacity(t *testing.T) {
	if c := NewBatcher(&recordingTarget{}, -1).Capacity(); c != MaxQuadsPerDraw {
		t.Errorf("capacity = %d, want %d", c, MaxQuadsPerDraw)
	}
}

func TestVertexOrder(t *testing.T) {
	target := &recordingTarget{}
	b := NewBatcher(target, 4)
	color := mgl32.Vec4{0.1, 0.2, 0.3, 0.4}
	b.Enqueue(Quad{
		Pos:    mgl32.Vec2{10, 20},
		Size:   mgl32.Vec2{5, 8},
		UVPos:  mgl32.Vec2{0.25, 0.5},
		UVSize: mgl32.Vec2{0.25, 0.125},
		Color:  color,
	})
	b.Flush()

	want := []Vertex{
		{Pos: mgl32.Vec2{10, 20}, TexCoord: mgl32.Vec2{0.25, 0.5}, Color: color},
		{Pos: mgl32.Vec2{10, 28}, TexCoord: mgl32.Vec2{0.25, 0.625}, Color: color},
		{Pos: mgl32.Vec2{15, 28}, TexCoord: mgl32.Vec2{0.5, 0.625}, Color: color},
		{Pos: mgl32.Vec2{15, 20}, TexCoord: mgl32.Vec2{0.5, 0.5}, Color: color},
	}
	got := target.batches[0]
	if len(got) != len(want) {
		t.Fatalf("got %d vertices", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRenderStatePerBatch(t *testing.T) {
	target := &recordingTarget{}
	b := NewBatcher(target, 1)
	state := RenderState{ViewProjection: mgl32.Ortho2D(0, 800, 600, 0)}
	b.SetRenderState(state)
	b.Enqueue(numberedQuads(3)...)
	b.Flush()

	if len(target.states) != 3 {
		t.Fatalf("state uploaded %d times, want 3", len(target.states))
	}
	for i, s := range target.states {
		if s != state {
			t.Errorf("batch %d state = %v", i, s)
		}
	}
}

func TestQuadIndices(t *testing.T) {
	got := quadIndices(2)
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("indices = %v, want %v", got, want)
	}
}

func BenchmarkFlush(b *testing.B) {
	batcher := NewBatcher(&discardTarget{}, MaxQuadsPerDraw)
	quads := numberedQuads(4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		batcher.Enqueue(quads...)
		batcher.Flush()
	}
}

type discardTarget struct{}

func (discardTarget) Begin() {}
func (discardTarget) SetVertices([]Vertex) {}
func (discardTarget) SetRenderState(RenderState) {}
func (discardTarget) DrawQuads(int) {}
func (discardTarget) End() {}
func (discardTarget) Release() {}
