package draw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/batch"
)

// Frame records one frame's worth of batches together with the Params
// snapshot each batch was drawn under. The widget layer obtains batches
// through FindBatch while mutating a Params; the renderer consumes the
// finished frame exactly once.
type Frame struct {
	pool   *batch.Pool
	params []Params
}

// NewFrame starts an empty frame with the given global transform.
func NewFrame(transform mgl32.Mat4) *Frame {
	return &Frame{pool: batch.NewPool(transform)}
}

// Pool returns the underlying batch pool.
func (f *Frame) Pool() *batch.Pool { return f.pool }

// Params returns the snapshot recorded for batch i.
func (f *Frame) Params(i int) Params { return f.params[i] }

// Len returns the number of recorded batches.
func (f *Frame) Len() int { return f.pool.Len() }

// FindBatch returns the batch that n more vertices should be pushed
// into under the current params. The tail batch is reused only when its
// recorded state and visual params match exactly and n more vertices
// fit; any change of texture, mask classification, shader mode,
// transform or tint opens a new batch, preserving paint order.
//
// The first batch found after PushMask is classified NewMask; the
// classification then advances to AddToMask for subsequent finds.
func (f *Frame) FindBatch(p *Params, n int, boxes ...vexel.Rect) *batch.Batch {
	s := p.state()
	if i := f.pool.Len() - 1; i >= 0 {
		tail := f.pool.Batches()[i]
		if tail.State() == s && tail.Len()+n <= batch.MaxVertices && visualEqual(f.params[i], *p) {
			p.newMask = false
			return f.pool.FindBatch(s, n, boxes...)
		}
	}
	b := f.pool.Append(s, boxes...)
	f.params = append(f.params, *p)
	p.newMask = false
	return b
}

// visualEqual compares every field that affects rendering; the pending
// new-mask flag is classification bookkeeping and is excluded.
func visualEqual(a, b Params) bool {
	a.newMask = false
	b.newMask = false
	return a == b
}
