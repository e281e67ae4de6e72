// Package gldriver is the seam between the renderer and the GPU.
//
// Driver exposes the narrow slice of the GL command model the rendering
// stack needs: texture and framebuffer management, dynamic blend state,
// buffer uploads, program/uniform plumbing and indexed draws. The real
// implementation (OpenGL) binds to a live context; Recorder captures the
// command stream for tests and offline tooling.
//
// Blend state is typed with the gputypes vocabulary so the rest of the
// stack never sees raw GL enums.
package gldriver

import "github.com/gogpu/gputypes"

// TextureID names a GPU texture object. Zero is never a valid name.
type TextureID uint32

// BufferID names a GPU buffer object. Zero is never a valid name.
type BufferID uint32

// FramebufferID names a framebuffer object. Zero is the default
// (on-screen) framebuffer.
type FramebufferID uint32

// ProgramID names a linked shader program. Zero is never a valid name.
type ProgramID uint32

// UniformLoc is a uniform location within a program. Negative locations
// are invalid and uploads to them are silently ignored, matching GL.
type UniformLoc int32

// BufferTarget selects which binding point a buffer operation addresses.
type BufferTarget uint8

const (
	// ArrayBuffer is the vertex data binding point.
	ArrayBuffer BufferTarget = iota
	// ElementArrayBuffer is the index data binding point.
	ElementArrayBuffer
)

// String returns the string representation of the target.
func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ArrayBuffer"
	case ElementArrayBuffer:
		return "ElementArrayBuffer"
	default:
		return "Unknown"
	}
}

// Usage is the buffer usage hint passed with each upload.
type Usage uint8

const (
	// StaticDraw marks data written once and drawn many times.
	StaticDraw Usage = iota
	// DynamicDraw marks data rewritten occasionally.
	DynamicDraw
	// StreamDraw marks data rewritten every frame, the hint used for
	// per-frame batch uploads.
	StreamDraw
)

// String returns the string representation of the usage hint.
func (u Usage) String() string {
	switch u {
	case StaticDraw:
		return "StaticDraw"
	case DynamicDraw:
		return "DynamicDraw"
	case StreamDraw:
		return "StreamDraw"
	default:
		return "Unknown"
	}
}

// FilterMode selects texture minification/magnification filtering.
type FilterMode uint8

const (
	// FilterNearest samples the nearest texel.
	FilterNearest FilterMode = iota
	// FilterLinear interpolates between texels.
	FilterLinear
)

// WrapMode selects texture coordinate wrapping.
type WrapMode uint8

const (
	// WrapClampToEdge clamps coordinates to the texture edge.
	WrapClampToEdge WrapMode = iota
	// WrapRepeat tiles the texture.
	WrapRepeat
)

// AttribType is the component type of a vertex attribute.
type AttribType uint8

const (
	// AttribFloat32 is a 32-bit float component.
	AttribFloat32 AttribType = iota
	// AttribUint16 is an unsigned 16-bit component, converted to float
	// by the fixed-function fetch (optionally normalized).
	AttribUint16
	// AttribUint8 is an unsigned 8-bit component.
	AttribUint8
)

// Driver issues GPU commands. Implementations are not safe for
// concurrent use; the rendering model is strictly single-threaded.
//
// All state is sticky the way GL state is: a bound texture, blend
// equation or enabled attribute array persists until changed. The
// draw-state differ depends on this to skip redundant calls.
type Driver interface {
	// Viewport sets the render target viewport in pixels.
	Viewport(x, y, w, h int)

	// Textures. CreateTexture allocates a texture name; the texture
	// bound to the active unit receives subsequent TexImage2D,
	// TexSubImage2D, TexFilter and TexWrap calls.
	CreateTexture() TextureID
	DeleteTexture(id TextureID)
	ActiveTexture(unit int)
	BindTexture(id TextureID)
	TexImage2D(format gputypes.TextureFormat, w, h int, pixels []byte)
	TexSubImage2D(x, y, w, h int, format gputypes.TextureFormat, pixels []byte)
	TexFilter(minFilter, magFilter FilterMode)
	TexWrap(s, t WrapMode)

	// Framebuffers. FramebufferTexture attaches a texture as the color
	// attachment of the currently bound framebuffer.
	CreateFramebuffer() FramebufferID
	DeleteFramebuffer(id FramebufferID)
	BindFramebuffer(id FramebufferID)
	FramebufferTexture(id TextureID)

	// Clearing and scissor.
	ClearColor(r, g, b, a float32)
	Clear()
	Scissor(x, y, w, h int)
	SetScissorEnabled(enabled bool)

	// Blend state.
	BlendEquation(op gputypes.BlendOperation)
	BlendFunc(src, dst gputypes.BlendFactor)
	BlendColor(r, g, b, a float32)

	// Buffers.
	CreateBuffer() BufferID
	DeleteBuffer(id BufferID)
	BindBuffer(target BufferTarget, id BufferID)
	BufferData(target BufferTarget, data []byte, usage Usage)

	// Programs and uniforms.
	CompileProgram(vertexSrc, fragmentSrc string) (ProgramID, error)
	DeleteProgram(id ProgramID)
	UseProgram(id ProgramID)
	UniformLocation(id ProgramID, name string) UniformLoc
	// ActiveAttribCount reports how many vertex attributes the program
	// actually uses; a program switch rebinds exactly that many arrays.
	ActiveAttribCount(id ProgramID) int
	Uniform1i(loc UniformLoc, v int32)
	Uniform1f(loc UniformLoc, v float32)
	Uniform2f(loc UniformLoc, x, y float32)
	Uniform4f(loc UniformLoc, x, y, z, w float32)
	UniformMatrix4(loc UniformLoc, m [16]float32)

	// Vertex attributes and draws.
	EnableVertexAttrib(index int)
	DisableVertexAttrib(index int)
	VertexAttribPointer(index, size int, typ AttribType, normalized bool, stride, offset int)
	// DrawTriangles issues one indexed triangle-list draw of count
	// 16-bit indices from the bound element array buffer.
	DrawTriangles(count int)
}
