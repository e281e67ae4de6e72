package render

import (
	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/batch"
	"github.com/vexelgl/vexel/draw"
	"github.com/vexelgl/vexel/internal/gldriver"
)

// Render draws one finished frame: it populates pending textures, prunes
// mask work no batch will ever sample, then walks the surviving batches
// in paint order, streaming each one's data into a pooled buffer pair
// and issuing a single indexed draw per batch. Called exactly once per
// frame, after all drawing has been recorded.
func (c *Context) Render(f *draw.Frame) {
	c.cache.RunPopulators()

	batches := f.Pool().Batches()
	plan := prunePlan(batches)

	c.differ.Reset()
	clearColorDirty := false
	slot := 0
	for _, i := range plan {
		b := batches[i]
		if _, _, ok := c.cache.Lookup(b.Texture()); !ok {
			vexel.Logger().Debug("skipping batch, texture not ready",
				"texture", string(b.Texture()), "batch", i)
			continue
		}

		p := f.Params(i)
		p.Transform = f.Pool().Transform.Mul4(p.Transform)
		c.differ.ApplyChange(p, b.Kind())

		// A new mask starts from an empty strip. The differ has already
		// bound the atlas target, so only the scissored clear remains.
		if b.Class() == batch.NewMask {
			if !clearColorDirty {
				c.drv.ClearColor(0, 0, 0, 0)
				clearColorDirty = true
			}
			c.atlas.ClearStrip(draw.WriteStrip(b.Mode(), b.Level()))
		}

		pair := c.buffer(slot)
		slot++
		c.drv.BindBuffer(gldriver.ArrayBuffer, pair.vertex)
		c.drv.BufferData(gldriver.ArrayBuffer, b.VertexBytes(), gldriver.StreamDraw)
		c.drv.BindBuffer(gldriver.ElementArrayBuffer, pair.index)
		c.drv.BufferData(gldriver.ElementArrayBuffer, b.IndexBytes(), gldriver.StreamDraw)

		layout := batch.LayoutFor(b.Kind())
		active := c.differ.CurrentShader().AttribCount
		for _, a := range layout.Attribs {
			if a.Index < active {
				c.drv.VertexAttribPointer(a.Index, a.Size, a.Type, a.Normalized, layout.Stride, a.Offset)
			}
		}
		c.drv.DrawTriangles(b.IndexCount())
	}

	// Mask clears borrow the clear color; the ambient one comes back
	// before the platform layer clears the next frame.
	if clearColorDirty {
		cc := c.config.ClearColor.Floats()
		c.drv.ClearColor(cc[0], cc[1], cc[2], cc[3])
	}
}

// prunePlan returns the indices of the batches worth drawing, in paint
// order. It drops empty batches, and drops every contiguous run of
// mask-writing batches whose strip is never sampled afterwards before
// the strip's next clear or the end of the frame. Masks that are pushed
// and popped without masking anything cost no GPU work at all.
func prunePlan(batches []*batch.Batch) []int {
	keep := make([]bool, len(batches))
	for i, b := range batches {
		keep[i] = b.Len() > 0 && b.IndexCount() > 0
	}

	for i := 0; i < len(batches); i++ {
		if !maskWrite(batches[i]) {
			continue
		}
		strip := draw.WriteStrip(batches[i].Mode(), batches[i].Level())
		j := i
		for j < len(batches) && maskWrite(batches[j]) &&
			draw.WriteStrip(batches[j].Mode(), batches[j].Level()) == strip {
			j++
		}
		if !stripSampled(batches[j:], strip) {
			for k := i; k < j; k++ {
				keep[k] = false
			}
		}
		i = j - 1
	}

	plan := make([]int, 0, len(batches))
	for i := range batches {
		if keep[i] {
			plan = append(plan, i)
		}
	}
	return plan
}

func maskWrite(b *batch.Batch) bool {
	return b.Class() == batch.NewMask || b.Class() == batch.AddToMask
}

// stripSampled reports whether any masked batch reads the strip before
// it is cleared again.
func stripSampled(rest []*batch.Batch, strip int) bool {
	for _, b := range rest {
		switch b.Class() {
		case batch.Masked:
			if b.Level()-1 == strip {
				return true
			}
		case batch.NewMask:
			if draw.WriteStrip(b.Mode(), b.Level()) == strip {
				return false
			}
		}
	}
	return false
}
