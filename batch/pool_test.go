package batch

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vexelgl/vexel"
)

func TestFindBatchCoalescing(t *testing.T) {
	p := NewPool(mgl32.Ident4())
	grass := State{Texture: "grass"}
	stone := State{Texture: "stone"}

	a := p.FindBatch(grass, 4)
	b := p.FindBatch(grass, 4)
	if a != b {
		t.Error("same state back-to-back returned a new batch, want the tail")
	}
	if p.Len() != 1 {
		t.Fatalf("pool len = %d, want 1", p.Len())
	}

	c := p.FindBatch(stone, 4)
	if c == b {
		t.Error("texture change returned the tail batch, want a new one")
	}
	d := p.FindBatch(grass, 4)
	if d == a {
		t.Error("tail-only policy merged across an intervening batch")
	}
	if p.Len() != 3 {
		t.Fatalf("pool len = %d, want 3", p.Len())
	}
}

func TestFindBatchStateChanges(t *testing.T) {
	base := State{Texture: "atlas"}
	tests := []struct {
		name string
		next State
	}{
		{"class", State{Texture: "atlas", Class: NewMask, Mode: ModePush}},
		{"mode", State{Texture: "atlas", Mode: ModePop}},
		{"level", State{Texture: "atlas", Level: 1}},
		{"texture", State{Texture: "other"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(mgl32.Ident4())
			a := p.FindBatch(base, 4)
			b := p.FindBatch(tt.next, 4)
			if a == b {
				t.Error("state change coalesced, want a new batch")
			}
		})
	}
}

func TestFindBatchHeadroom(t *testing.T) {
	p := NewPool(mgl32.Ident4())
	s := State{Texture: "atlas"}

	a := p.FindBatch(s, MaxVertices-3)
	a.PushUint16(make([]Vertex[uint16], MaxVertices-3)...)

	b := p.FindBatch(s, 3)
	if a != b {
		t.Error("push that exactly fills the batch opened a new one")
	}
	b.PushUint16(make([]Vertex[uint16], 3)...)

	c := p.FindBatch(s, 1)
	if c == b {
		t.Error("full batch was reused, want a new one")
	}
}

func TestFindBatchBounds(t *testing.T) {
	p := NewPool(mgl32.Ident4())
	s := State{Texture: "atlas"}

	b := p.FindBatch(s, 4, vexel.NewRect(0, 0, 10, 10))
	p.FindBatch(s, 4, vexel.NewRect(20, 5, 10, 10))

	got := b.Bounds()
	want := vexel.NewRect(0, 0, 30, 15)
	if got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
}
