package batch

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vexelgl/vexel"
)

// Pool is the ordered sequence of batches recorded for one frame, plus
// the frame's global transform. The pool is owned by the frame being
// recorded and consumed exactly once by the renderer.
type Pool struct {
	// Transform maps logical pixels to clip space for the whole frame.
	Transform mgl32.Mat4

	batches []*Batch
}

// NewPool creates an empty pool with the given frame transform.
func NewPool(transform mgl32.Mat4) *Pool {
	return &Pool{Transform: transform}
}

// FindBatch returns the batch that n more vertices should be pushed
// into. It returns the tail batch when, and only when, the tail's state
// matches s exactly and n more vertices fit under MaxVertices;
// otherwise it appends and returns a new batch. Only the tail is ever
// considered, preserving paint order.
//
// Bounding boxes extend the batch's recorded bounds; the baseline
// coalescing policy does not consult them.
func (p *Pool) FindBatch(s State, n int, boxes ...vexel.Rect) *Batch {
	if tail := p.tail(); tail != nil && tail.state == s && tail.Len()+n <= MaxVertices {
		for _, box := range boxes {
			tail.bounds = tail.bounds.Union(box)
		}
		return tail
	}
	b := &Batch{state: s}
	for _, box := range boxes {
		b.bounds = b.bounds.Union(box)
	}
	p.batches = append(p.batches, b)
	return b
}

// Append unconditionally opens a new batch, for callers whose
// compatibility rules are stricter than the pool's own.
func (p *Pool) Append(s State, boxes ...vexel.Rect) *Batch {
	b := &Batch{state: s}
	for _, box := range boxes {
		b.bounds = b.bounds.Union(box)
	}
	p.batches = append(p.batches, b)
	return b
}

func (p *Pool) tail() *Batch {
	if len(p.batches) == 0 {
		return nil
	}
	return p.batches[len(p.batches)-1]
}

// Batches returns the recorded batches in paint order.
func (p *Pool) Batches() []*Batch { return p.batches }

// Len returns the number of recorded batches.
func (p *Pool) Len() int { return len(p.batches) }
