package batch

import (
	"encoding/binary"
	"fmt"

	"github.com/vexelgl/vexel"
)

// MaxVertices is the most vertices one batch may hold. Indices are
// 16-bit, so this is the full index space; pushing past it panics.
const MaxVertices = 1 << 16

// MaskClass classifies how a batch interacts with the clip mask.
type MaskClass uint8

const (
	// Unmasked draws straight to the color target.
	Unmasked MaskClass = iota
	// NewMask starts accumulating a fresh mask at the current level.
	NewMask
	// AddToMask continues accumulating into the current mask level.
	AddToMask
	// Masked draws to the color target sampling the current mask level.
	Masked
)

// String returns the string representation of the class.
func (c MaskClass) String() string {
	switch c {
	case Unmasked:
		return "Unmasked"
	case NewMask:
		return "NewMask"
	case AddToMask:
		return "AddToMask"
	case Masked:
		return "Masked"
	default:
		return "Unknown"
	}
}

// MaskMode is the compositor cursor at the time a batch is recorded.
// Mask-writing batches replay with additive blending under ModePush and
// reverse-subtractive blending under ModePop.
type MaskMode uint8

const (
	// ModeMasked is ordinary drawing to the color target.
	ModeMasked MaskMode = iota
	// ModePush accumulates coverage into the mask atlas.
	ModePush
	// ModePop unwinds previously accumulated coverage.
	ModePop
)

// String returns the string representation of the mode.
func (m MaskMode) String() string {
	switch m {
	case ModeMasked:
		return "Masked"
	case ModePush:
		return "Push"
	case ModePop:
		return "Pop"
	default:
		return "Unknown"
	}
}

// State is the draw state a batch is tagged with. Two find calls
// coalesce only when their states are identical.
type State struct {
	Texture vexel.TextureKey
	Class   MaskClass
	Mode    MaskMode
	// Level is the mask nesting depth the batch draws at.
	Level int
}

// Batch is one draw call's worth of vertex and index data. Vertices are
// stored with 16-bit UVs until the first float push promotes the whole
// batch, permanently, to float storage.
type Batch struct {
	state  State
	bounds vexel.Rect

	kind    UVKind
	u16     []Vertex[uint16]
	f32     []Vertex[float32]
	indices []uint16
}

// State returns the draw state the batch was recorded under.
func (b *Batch) State() State { return b.state }

// Texture returns the batch's texture key.
func (b *Batch) Texture() vexel.TextureKey { return b.state.Texture }

// Class returns the batch's mask classification.
func (b *Batch) Class() MaskClass { return b.state.Class }

// Mode returns the compositor cursor mode the batch draws under.
func (b *Batch) Mode() MaskMode { return b.state.Mode }

// Level returns the mask nesting depth the batch draws at.
func (b *Batch) Level() int { return b.state.Level }

// Bounds returns the union of the bounding boxes supplied for the
// batch's primitives.
func (b *Batch) Bounds() vexel.Rect { return b.bounds }

// Kind returns the batch's current UV storage precision.
func (b *Batch) Kind() UVKind { return b.kind }

// Len returns the number of vertices stored.
func (b *Batch) Len() int {
	if b.kind == UVFloat32 {
		return len(b.f32)
	}
	return len(b.u16)
}

// IndexCount returns the number of indices stored.
func (b *Batch) IndexCount() int { return len(b.indices) }

func (b *Batch) checkRoom(n int) {
	if b.Len()+n > MaxVertices {
		panic(fmt.Sprintf("batch: vertex count %d exceeds %d; split the batch upstream", b.Len()+n, MaxVertices))
	}
}

// PushUint16 appends vertices with pixel-space UVs and returns the
// index of the first one. If the batch has already been promoted to
// float storage the vertices are converted on the way in. Pushing no
// vertices returns zero and leaves the batch untouched. Panics if the
// push would exceed MaxVertices.
func (b *Batch) PushUint16(vs ...Vertex[uint16]) uint16 {
	if len(vs) == 0 {
		return 0
	}
	b.checkRoom(len(vs))
	base := uint16(b.Len())
	if b.kind == UVFloat32 {
		for _, v := range vs {
			b.f32 = append(b.f32, promote(v))
		}
		return base
	}
	b.u16 = append(b.u16, vs...)
	return base
}

// PushFloat32 appends vertices with float UVs and returns the index of
// the first one. If the batch currently stores 16-bit UVs, every stored
// vertex is promoted to float first; promotion is never reversed.
// Pushing no vertices returns zero and leaves the batch untouched.
// Panics if the push would exceed MaxVertices.
func (b *Batch) PushFloat32(vs ...Vertex[float32]) uint16 {
	if len(vs) == 0 {
		return 0
	}
	b.checkRoom(len(vs))
	if b.kind == UVUint16 {
		b.f32 = make([]Vertex[float32], 0, len(b.u16)+len(vs))
		for _, v := range b.u16 {
			b.f32 = append(b.f32, promote(v))
		}
		b.u16 = nil
		b.kind = UVFloat32
	}
	base := uint16(b.Len())
	b.f32 = append(b.f32, vs...)
	return base
}

// Triangles appends triangle-list indices relative to base, which is
// the value a Push call returned for the vertices being referenced.
func (b *Batch) Triangles(base uint16, rel ...uint16) {
	for _, r := range rel {
		b.indices = append(b.indices, base+r)
	}
}

// Uint16Vertices returns the stored vertices when the batch still holds
// pixel-space UVs. ok is false once the batch has been promoted.
func (b *Batch) Uint16Vertices() (vs []Vertex[uint16], ok bool) {
	if b.kind != UVUint16 {
		return nil, false
	}
	return b.u16, true
}

// Float32Vertices returns every stored vertex at float precision,
// converting on the fly when the batch still holds 16-bit UVs.
func (b *Batch) Float32Vertices() []Vertex[float32] {
	if b.kind == UVFloat32 {
		return b.f32
	}
	out := make([]Vertex[float32], len(b.u16))
	for i, v := range b.u16 {
		out[i] = promote(v)
	}
	return out
}

// VertexBytes serializes the vertex data interleaved little-endian,
// matching LayoutFor(b.Kind()).
func (b *Batch) VertexBytes() []byte {
	out := make([]byte, 0, b.Len()*LayoutFor(b.kind).Stride)
	if b.kind == UVFloat32 {
		for _, v := range b.f32 {
			out = appendVertexFloat32(out, v)
		}
		return out
	}
	for _, v := range b.u16 {
		out = appendVertexUint16(out, v)
	}
	return out
}

// IndexBytes serializes the index data as little-endian 16-bit values.
func (b *Batch) IndexBytes() []byte {
	out := make([]byte, 0, len(b.indices)*2)
	for _, i := range b.indices {
		out = binary.LittleEndian.AppendUint16(out, i)
	}
	return out
}
