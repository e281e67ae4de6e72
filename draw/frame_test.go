package draw

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/batch"
)

func TestFrameCoalescing(t *testing.T) {
	f := NewFrame(mgl32.Ident4())
	p := NewParams()
	p.UseTexture("image:atlas")

	a := f.FindBatch(&p, 4)
	b := f.FindBatch(&p, 4)
	if a != b {
		t.Error("unchanged params opened a new batch, want the tail")
	}

	p.Mul(mgl32.Translate3D(10, 0, 0))
	c := f.FindBatch(&p, 4)
	if c == b {
		t.Error("transform change coalesced, want a new batch")
	}

	p.Tint(vexel.RGBA8(255, 0, 0, 255))
	d := f.FindBatch(&p, 4)
	if d == c {
		t.Error("tint change coalesced, want a new batch")
	}

	p.SDFMode()
	e := f.FindBatch(&p, 4)
	if e == d {
		t.Error("shader mode change coalesced, want a new batch")
	}
	if f.Len() != 4 {
		t.Errorf("frame len = %d, want 4", f.Len())
	}
}

func TestFrameNewMaskAdvances(t *testing.T) {
	f := NewFrame(mgl32.Ident4())
	p := NewParams()

	p.PushMask()
	a := f.FindBatch(&p, 4)
	if got := a.Class(); got != batch.NewMask {
		t.Fatalf("first mask batch class = %v, want NewMask", got)
	}

	b := f.FindBatch(&p, 4)
	if b == a {
		t.Error("classification advance coalesced into the NewMask batch")
	}
	if got := b.Class(); got != batch.AddToMask {
		t.Errorf("second mask batch class = %v, want AddToMask", got)
	}

	c := f.FindBatch(&p, 4)
	if c != b {
		t.Error("two AddToMask finds did not coalesce")
	}
}

func TestFrameEmptyPushPop(t *testing.T) {
	f := NewFrame(mgl32.Ident4())
	p := NewParams()

	a := f.FindBatch(&p, 4)
	p.PushMask()
	p.PopMask()
	p.CommitMask()
	b := f.FindBatch(&p, 4)

	if a != b {
		t.Error("empty push/pop changed the observable state of the next batch")
	}
	if f.Len() != 1 {
		t.Errorf("frame len = %d, want 1", f.Len())
	}
}
