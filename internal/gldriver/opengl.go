//go:build !nogl

package gldriver

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"
)

// OpenGL is the live Driver implementation over an OpenGL 3.3 core
// context. The context must be current on the calling goroutine before
// NewOpenGL and stay current for every subsequent call; this package
// never touches windowing.
type OpenGL struct {
	vao uint32
}

// NewOpenGL initializes the GL function pointers and allocates the
// single vertex array object the renderer works through.
func NewOpenGL() (*OpenGL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gldriver: initializing OpenGL: %w", err)
	}
	d := &OpenGL{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.Enable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)
	return d, nil
}

// Close releases the vertex array object. The GL context itself belongs
// to the platform layer.
func (d *OpenGL) Close() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

// Viewport implements Driver.
func (d *OpenGL) Viewport(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

// CreateTexture implements Driver.
func (d *OpenGL) CreateTexture() TextureID {
	var id uint32
	gl.GenTextures(1, &id)
	return TextureID(id)
}

// DeleteTexture implements Driver.
func (d *OpenGL) DeleteTexture(id TextureID) {
	u := uint32(id)
	gl.DeleteTextures(1, &u)
}

// ActiveTexture implements Driver.
func (d *OpenGL) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

// BindTexture implements Driver.
func (d *OpenGL) BindTexture(id TextureID) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

// TexImage2D implements Driver.
func (d *OpenGL) TexImage2D(format gputypes.TextureFormat, w, h int, pixels []byte) {
	internal, external := glFormat(format)
	var ptr = gl.Ptr(pixels)
	if len(pixels) == 0 {
		ptr = nil
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(w), int32(h), 0, external, gl.UNSIGNED_BYTE, ptr)
}

// TexSubImage2D implements Driver.
func (d *OpenGL) TexSubImage2D(x, y, w, h int, format gputypes.TextureFormat, pixels []byte) {
	_, external := glFormat(format)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(w), int32(h), external, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

// TexFilter implements Driver.
func (d *OpenGL) TexFilter(minFilter, magFilter FilterMode) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(minFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(magFilter))
}

// TexWrap implements Driver.
func (d *OpenGL) TexWrap(s, t WrapMode) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(s))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(t))
}

// CreateFramebuffer implements Driver.
func (d *OpenGL) CreateFramebuffer() FramebufferID {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return FramebufferID(id)
}

// DeleteFramebuffer implements Driver.
func (d *OpenGL) DeleteFramebuffer(id FramebufferID) {
	u := uint32(id)
	gl.DeleteFramebuffers(1, &u)
}

// BindFramebuffer implements Driver.
func (d *OpenGL) BindFramebuffer(id FramebufferID) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(id))
}

// FramebufferTexture implements Driver.
func (d *OpenGL) FramebufferTexture(id TextureID) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(id), 0)
}

// ClearColor implements Driver.
func (d *OpenGL) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

// Clear implements Driver.
func (d *OpenGL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Scissor implements Driver.
func (d *OpenGL) Scissor(x, y, w, h int) {
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
}

// SetScissorEnabled implements Driver.
func (d *OpenGL) SetScissorEnabled(enabled bool) {
	if enabled {
		gl.Enable(gl.SCISSOR_TEST)
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}
}

// BlendEquation implements Driver.
func (d *OpenGL) BlendEquation(op gputypes.BlendOperation) {
	gl.BlendEquation(glBlendOp(op))
}

// BlendFunc implements Driver.
func (d *OpenGL) BlendFunc(src, dst gputypes.BlendFactor) {
	gl.BlendFunc(glBlendFactor(src), glBlendFactor(dst))
}

// BlendColor implements Driver.
func (d *OpenGL) BlendColor(r, g, b, a float32) {
	gl.BlendColor(r, g, b, a)
}

// CreateBuffer implements Driver.
func (d *OpenGL) CreateBuffer() BufferID {
	var id uint32
	gl.GenBuffers(1, &id)
	return BufferID(id)
}

// DeleteBuffer implements Driver.
func (d *OpenGL) DeleteBuffer(id BufferID) {
	u := uint32(id)
	gl.DeleteBuffers(1, &u)
}

// BindBuffer implements Driver.
func (d *OpenGL) BindBuffer(target BufferTarget, id BufferID) {
	gl.BindBuffer(glTarget(target), uint32(id))
}

// BufferData implements Driver.
func (d *OpenGL) BufferData(target BufferTarget, data []byte, usage Usage) {
	gl.BufferData(glTarget(target), len(data), gl.Ptr(data), glUsage(usage))
}

// CompileProgram implements Driver.
func (d *OpenGL) CompileProgram(vertexSrc, fragmentSrc string) (ProgramID, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("gldriver: vertex shader: %w", err)
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, fmt.Errorf("gldriver: fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("gldriver: linking program: %v", log)
	}
	return ProgramID(program), nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compiling: %v", log)
	}
	return shader, nil
}

// DeleteProgram implements Driver.
func (d *OpenGL) DeleteProgram(id ProgramID) {
	gl.DeleteProgram(uint32(id))
}

// UseProgram implements Driver.
func (d *OpenGL) UseProgram(id ProgramID) {
	gl.UseProgram(uint32(id))
}

// UniformLocation implements Driver.
func (d *OpenGL) UniformLocation(id ProgramID, name string) UniformLoc {
	return UniformLoc(gl.GetUniformLocation(uint32(id), gl.Str(name+"\x00")))
}

// ActiveAttribCount implements Driver.
func (d *OpenGL) ActiveAttribCount(id ProgramID) int {
	var n int32
	gl.GetProgramiv(uint32(id), gl.ACTIVE_ATTRIBUTES, &n)
	return int(n)
}

// Uniform1i implements Driver.
func (d *OpenGL) Uniform1i(loc UniformLoc, v int32) {
	gl.Uniform1i(int32(loc), v)
}

// Uniform1f implements Driver.
func (d *OpenGL) Uniform1f(loc UniformLoc, v float32) {
	gl.Uniform1f(int32(loc), v)
}

// Uniform2f implements Driver.
func (d *OpenGL) Uniform2f(loc UniformLoc, x, y float32) {
	gl.Uniform2f(int32(loc), x, y)
}

// Uniform4f implements Driver.
func (d *OpenGL) Uniform4f(loc UniformLoc, x, y, z, w float32) {
	gl.Uniform4f(int32(loc), x, y, z, w)
}

// UniformMatrix4 implements Driver.
func (d *OpenGL) UniformMatrix4(loc UniformLoc, m [16]float32) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

// EnableVertexAttrib implements Driver.
func (d *OpenGL) EnableVertexAttrib(index int) {
	gl.EnableVertexAttribArray(uint32(index))
}

// DisableVertexAttrib implements Driver.
func (d *OpenGL) DisableVertexAttrib(index int) {
	gl.DisableVertexAttribArray(uint32(index))
}

// VertexAttribPointer implements Driver.
func (d *OpenGL) VertexAttribPointer(index, size int, typ AttribType, normalized bool, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(index), int32(size), glAttribType(typ), normalized, int32(stride), uintptr(offset))
}

// DrawTriangles implements Driver.
func (d *OpenGL) DrawTriangles(count int) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), gl.UNSIGNED_SHORT, 0)
}

func glFormat(f gputypes.TextureFormat) (internal int32, external uint32) {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return gl.R8, gl.RED
	default:
		return gl.RGBA8, gl.RGBA
	}
}

func glFilter(f FilterMode) int32 {
	if f == FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func glWrap(w WrapMode) int32 {
	if w == WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func glAttribType(t AttribType) uint32 {
	switch t {
	case AttribUint16:
		return gl.UNSIGNED_SHORT
	case AttribUint8:
		return gl.UNSIGNED_BYTE
	default:
		return gl.FLOAT
	}
}

func glTarget(t BufferTarget) uint32 {
	if t == ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glUsage(u Usage) uint32 {
	switch u {
	case StaticDraw:
		return gl.STATIC_DRAW
	case DynamicDraw:
		return gl.DYNAMIC_DRAW
	default:
		return gl.STREAM_DRAW
	}
}

func glBlendOp(op gputypes.BlendOperation) uint32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return gl.FUNC_SUBTRACT
	case gputypes.BlendOperationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case gputypes.BlendOperationMin:
		return gl.MIN
	case gputypes.BlendOperationMax:
		return gl.MAX
	default:
		return gl.FUNC_ADD
	}
}

func glBlendFactor(f gputypes.BlendFactor) uint32 {
	switch f {
	case gputypes.BlendFactorZero:
		return gl.ZERO
	case gputypes.BlendFactorSrc:
		return gl.SRC_COLOR
	case gputypes.BlendFactorOneMinusSrc:
		return gl.ONE_MINUS_SRC_COLOR
	case gputypes.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gputypes.BlendFactorDst:
		return gl.DST_COLOR
	case gputypes.BlendFactorOneMinusDst:
		return gl.ONE_MINUS_DST_COLOR
	case gputypes.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case gputypes.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case gputypes.BlendFactorConstant:
		return gl.CONSTANT_COLOR
	case gputypes.BlendFactorOneMinusConstant:
		return gl.ONE_MINUS_CONSTANT_COLOR
	default:
		return gl.ONE
	}
}

// Ensure OpenGL implements Driver.
var _ Driver = (*OpenGL)(nil)
