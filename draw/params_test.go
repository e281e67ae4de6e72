package draw

import (
	"testing"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/batch"
)

func TestMaskStateMachine(t *testing.T) {
	p := NewParams()

	steps := []struct {
		name  string
		op    func()
		mode  batch.MaskMode
		level int
		class batch.MaskClass
	}{
		{"initial", func() {}, batch.ModeMasked, 0, batch.Unmasked},
		{"push", p.PushMask, batch.ModePush, 1, batch.NewMask},
		{"commit push", p.CommitMask, batch.ModeMasked, 1, batch.Masked},
		{"pop", p.PopMask, batch.ModePop, 0, batch.AddToMask},
		{"commit pop", p.CommitMask, batch.ModeMasked, 0, batch.Unmasked},
	}
	for _, s := range steps {
		s.op()
		if got := p.MaskMode(); got != s.mode {
			t.Errorf("%s: mode = %v, want %v", s.name, got, s.mode)
		}
		if got := p.MaskLevel(); got != s.level {
			t.Errorf("%s: level = %d, want %d", s.name, got, s.level)
		}
		if got := p.Class(); got != s.class {
			t.Errorf("%s: class = %v, want %v", s.name, got, s.class)
		}
	}
}

func TestMaskDepthGuards(t *testing.T) {
	p := NewParams()

	p.PopMask()
	if got := p.MaskLevel(); got != 0 {
		t.Errorf("level after underflow pop = %d, want 0", got)
	}
	if got := p.MaskMode(); got != batch.ModeMasked {
		t.Errorf("mode after underflow pop = %v, want Masked", got)
	}

	for i := 0; i < MaskLevels+2; i++ {
		p.PushMask()
		p.CommitMask()
	}
	if got := p.MaskLevel(); got != MaskLevels {
		t.Errorf("level after overflow pushes = %d, want %d", got, MaskLevels)
	}
}

func TestSDFSettersOutsideSDFMode(t *testing.T) {
	p := NewParams()
	p.SDFTextColor(vexel.Black)
	p.SDFOutlineColor(vexel.Black)
	p.SDFEdges(0.5, 0.1)
	p.SDFChanMask(255, 0, 0, 0)

	want := NewParams()
	if p != want {
		t.Errorf("SDF setters mutated params in standard mode: %+v", p)
	}
}

func TestSDFSetters(t *testing.T) {
	p := NewParams()
	p.SDFMode()
	p.SDFTextColor(vexel.Black)
	p.SDFEdges(0.5, 0.2)
	p.SDFOutlineEdges(0.4, 0)
	p.SDFChanMask(255, 0, 0, 0)

	if p.TextColor != vexel.Black {
		t.Errorf("text color = %v, want black", p.TextColor)
	}
	wantEdges := [4]float32{0.4, 0.6, 0.4, 0.4}
	if p.DistanceEdges != wantEdges {
		t.Errorf("distance edges = %v, want %v", p.DistanceEdges, wantEdges)
	}
	if p.ChanMask != [4]float32{1, 0, 0, 0} {
		t.Errorf("chan mask = %v, want red channel", p.ChanMask)
	}
}
