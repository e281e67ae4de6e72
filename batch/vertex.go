// Package batch builds the per-frame sequence of draw batches.
//
// Widgets push vertices into batches obtained from a Pool; the pool
// appends batches in paint order and coalesces only into the most
// recently appended compatible batch, so overlapping primitives are
// never reordered. A finished pool is handed to the renderer exactly
// once per frame.
package batch

import (
	"encoding/binary"

	"golang.org/x/mobile/exp/f32"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/internal/gldriver"
)

// Component is a UV coordinate component. Pixel-space coordinates use
// uint16, normalized or fractional coordinates use float32.
type Component interface {
	~uint16 | ~float32
}

// Config holds the per-vertex shading configuration bytes: the alpha
// ramp endpoints and the two corner flags circular shapes use to tell
// inside from outside edges.
type Config struct {
	AlphaBase uint8
	AlphaPeak uint8
	Inside    uint8
	Outside   uint8
}

// Vertex is one interleaved vertex record. All vertices stored in one
// batch share the same UV component type.
type Vertex[U Component] struct {
	X, Y      float32
	U, V      U
	Color     vexel.Color
	Config    Config
	Smoothing float32
}

// UVKind tags which UV precision a batch currently stores.
type UVKind uint8

const (
	// UVUint16 stores pixel-space 16-bit UVs, the cheap common case.
	UVUint16 UVKind = iota
	// UVFloat32 stores full-precision UVs. Batches promote to this kind
	// permanently the first time a float UV is pushed.
	UVFloat32
)

// String returns the string representation of the UV kind.
func (k UVKind) String() string {
	switch k {
	case UVUint16:
		return "UVUint16"
	case UVFloat32:
		return "UVFloat32"
	default:
		return "Unknown"
	}
}

// Attrib describes one vertex attribute within an interleaved layout.
type Attrib struct {
	Index      int
	Size       int
	Type       gldriver.AttribType
	Normalized bool
	Offset     int
}

// Layout is the interleaved vertex layout for one UV kind.
type Layout struct {
	Stride  int
	Attribs []Attrib
}

// Attribute indices shared by every shader program.
const (
	AttribPos = iota
	AttribUV
	AttribColor
	AttribConfig
	AttribSmoothing
)

var layouts = [2]Layout{
	UVUint16: {
		Stride: 24,
		Attribs: []Attrib{
			{AttribPos, 2, gldriver.AttribFloat32, false, 0},
			{AttribUV, 2, gldriver.AttribUint16, false, 8},
			{AttribColor, 4, gldriver.AttribUint8, true, 12},
			{AttribConfig, 4, gldriver.AttribUint8, true, 16},
			{AttribSmoothing, 1, gldriver.AttribFloat32, false, 20},
		},
	},
	UVFloat32: {
		Stride: 28,
		Attribs: []Attrib{
			{AttribPos, 2, gldriver.AttribFloat32, false, 0},
			{AttribUV, 2, gldriver.AttribFloat32, false, 8},
			{AttribColor, 4, gldriver.AttribUint8, true, 16},
			{AttribConfig, 4, gldriver.AttribUint8, true, 20},
			{AttribSmoothing, 1, gldriver.AttribFloat32, false, 24},
		},
	},
}

// LayoutFor returns the interleaved layout for the given UV kind. The
// renderer keys attribute pointer setup off this table.
func LayoutFor(k UVKind) Layout {
	return layouts[k]
}

func appendVertexUint16(dst []byte, v Vertex[uint16]) []byte {
	dst = append(dst, f32.Bytes(binary.LittleEndian, v.X, v.Y)...)
	dst = binary.LittleEndian.AppendUint16(dst, v.U)
	dst = binary.LittleEndian.AppendUint16(dst, v.V)
	c := v.Color.Bytes()
	dst = append(dst, c[0], c[1], c[2], c[3])
	dst = append(dst, v.Config.AlphaBase, v.Config.AlphaPeak, v.Config.Inside, v.Config.Outside)
	return append(dst, f32.Bytes(binary.LittleEndian, v.Smoothing)...)
}

func appendVertexFloat32(dst []byte, v Vertex[float32]) []byte {
	dst = append(dst, f32.Bytes(binary.LittleEndian, v.X, v.Y, v.U, v.V)...)
	c := v.Color.Bytes()
	dst = append(dst, c[0], c[1], c[2], c[3])
	dst = append(dst, v.Config.AlphaBase, v.Config.AlphaPeak, v.Config.Inside, v.Config.Outside)
	return append(dst, f32.Bytes(binary.LittleEndian, v.Smoothing)...)
}

func promote(v Vertex[uint16]) Vertex[float32] {
	return Vertex[float32]{
		X:         v.X,
		Y:         v.Y,
		U:         float32(v.U),
		V:         float32(v.V),
		Color:     v.Color,
		Config:    v.Config,
		Smoothing: v.Smoothing,
	}
}
