package batch

import (
	"testing"

	"github.com/vexelgl/vexel"
)

func quadUint16(x, y float32) []Vertex[uint16] {
	return []Vertex[uint16]{
		{X: x, Y: y, U: 0, V: 0, Color: vexel.White},
		{X: x + 10, Y: y, U: 16, V: 0, Color: vexel.White},
		{X: x + 10, Y: y + 10, U: 16, V: 16, Color: vexel.White},
		{X: x, Y: y + 10, U: 0, V: 16, Color: vexel.White},
	}
}

func TestBatchPromotion(t *testing.T) {
	var b Batch
	base := b.PushUint16(quadUint16(0, 0)...)
	if base != 0 {
		t.Fatalf("first push base = %d, want 0", base)
	}
	if b.Kind() != UVUint16 {
		t.Fatalf("kind = %v, want UVUint16", b.Kind())
	}

	base = b.PushFloat32(Vertex[float32]{X: 5, Y: 5, U: 0.5, V: 0.5, Color: vexel.White})
	if base != 4 {
		t.Fatalf("float push base = %d, want 4", base)
	}
	if b.Kind() != UVFloat32 {
		t.Fatalf("kind after float push = %v, want UVFloat32", b.Kind())
	}

	vs := b.Float32Vertices()
	if len(vs) != 5 {
		t.Fatalf("len = %d, want 5", len(vs))
	}
	if vs[1].U != 16 || vs[2].V != 16 {
		t.Errorf("promoted UVs = (%v, %v), want (16, 16)", vs[1].U, vs[2].V)
	}
	if _, ok := b.Uint16Vertices(); ok {
		t.Error("Uint16Vertices ok after promotion, want false")
	}

	// Later integer pushes convert on the way in; the batch never
	// reverts.
	b.PushUint16(Vertex[uint16]{U: 7, V: 9})
	if b.Kind() != UVFloat32 {
		t.Fatalf("kind after later uint16 push = %v, want UVFloat32", b.Kind())
	}
	vs = b.Float32Vertices()
	if got := vs[len(vs)-1]; got.U != 7 || got.V != 9 {
		t.Errorf("converted UVs = (%v, %v), want (7, 9)", got.U, got.V)
	}
}

func TestBatchVertexCeiling(t *testing.T) {
	var b Batch
	vs := make([]Vertex[uint16], MaxVertices)
	b.PushUint16(vs...)
	if b.Len() != MaxVertices {
		t.Fatalf("len = %d, want %d", b.Len(), MaxVertices)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("push past MaxVertices did not panic")
		}
	}()
	b.PushUint16(Vertex[uint16]{})
}

func TestBatchEmptyPush(t *testing.T) {
	var b Batch
	b.PushUint16(make([]Vertex[uint16], MaxVertices)...)

	// A zero-vertex push into a full batch must not wrap the base index
	// or trip the ceiling.
	if got := b.PushUint16(); got != 0 {
		t.Errorf("empty push base = %d, want 0", got)
	}
	if b.Len() != MaxVertices {
		t.Errorf("len = %d, want %d", b.Len(), MaxVertices)
	}

	// An empty float push must not promote either.
	if got := b.PushFloat32(); got != 0 {
		t.Errorf("empty float push base = %d, want 0", got)
	}
	if b.Kind() != UVUint16 {
		t.Errorf("kind after empty float push = %v, want UVUint16", b.Kind())
	}
}

func TestBatchTriangles(t *testing.T) {
	var b Batch
	b.PushUint16(quadUint16(0, 0)...)
	base := b.PushUint16(quadUint16(20, 0)...)
	b.Triangles(base, 0, 1, 2, 0, 2, 3)

	want := []uint16{4, 5, 6, 4, 6, 7}
	got := b.IndexBytes()
	if len(got) != len(want)*2 {
		t.Fatalf("index bytes = %d, want %d", len(got), len(want)*2)
	}
	for i, w := range want {
		if v := uint16(got[2*i]) | uint16(got[2*i+1])<<8; v != w {
			t.Errorf("index %d = %d, want %d", i, v, w)
		}
	}
}

func TestVertexBytesStride(t *testing.T) {
	tests := []struct {
		name string
		fill func(b *Batch)
		kind UVKind
	}{
		{"uint16", func(b *Batch) { b.PushUint16(quadUint16(0, 0)...) }, UVUint16},
		{"float32", func(b *Batch) {
			b.PushFloat32(
				Vertex[float32]{U: 0.25, V: 0.75},
				Vertex[float32]{U: 1, V: 0},
				Vertex[float32]{U: 0, V: 1},
				Vertex[float32]{U: 1, V: 1},
			)
		}, UVFloat32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Batch
			tt.fill(&b)
			layout := LayoutFor(tt.kind)
			if got := len(b.VertexBytes()); got != 4*layout.Stride {
				t.Errorf("vertex bytes = %d, want %d", got, 4*layout.Stride)
			}
		})
	}
}
