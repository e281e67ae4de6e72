package gldriver

import "github.com/gogpu/gputypes"

// Call is one recorded driver invocation.
type Call struct {
	// Op is the Driver method name, e.g. "BindTexture".
	Op string
	// Args are the call arguments in declaration order.
	Args []any
}

// Recorder is a Driver that performs no GPU work and instead records
// every call. Tests use it to assert exactly which state changes a
// frame produced; the demo uses it to print draw statistics.
//
// Resource creation hands out monotonically increasing ids per resource
// kind, starting at 1.
type Recorder struct {
	// Calls is the full recorded command stream in order.
	Calls []Call

	// AttribCounts overrides ActiveAttribCount per program. Programs
	// compiled through the recorder default to DefaultAttribCount.
	AttribCounts map[ProgramID]int

	counts       map[string]int
	nextTexture  TextureID
	nextBuffer   BufferID
	nextFBO      FramebufferID
	nextProgram  ProgramID
	nextUniform  UniformLoc
	uniformNames map[ProgramID]map[string]UniformLoc
}

// DefaultAttribCount is reported for programs compiled through the
// recorder unless overridden, matching the five-attribute standard
// vertex layout.
const DefaultAttribCount = 5

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		AttribCounts: make(map[ProgramID]int),
		counts:       make(map[string]int),
		uniformNames: make(map[ProgramID]map[string]UniformLoc),
	}
}

// Count returns how many times the named op was recorded.
func (r *Recorder) Count(op string) int { return r.counts[op] }

// CallsFor returns the recorded calls for one op, in order.
func (r *Recorder) CallsFor(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset discards the recorded stream and counters but keeps handed-out
// resource ids valid, as a live GL context would.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.counts = make(map[string]int)
}

// Len returns the total number of recorded calls.
func (r *Recorder) Len() int { return len(r.Calls) }

func (r *Recorder) record(op string, args ...any) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
	r.counts[op]++
}

// Viewport implements Driver.
func (r *Recorder) Viewport(x, y, w, h int) { r.record("Viewport", x, y, w, h) }

// CreateTexture implements Driver.
func (r *Recorder) CreateTexture() TextureID {
	r.nextTexture++
	r.record("CreateTexture", r.nextTexture)
	return r.nextTexture
}

// DeleteTexture implements Driver.
func (r *Recorder) DeleteTexture(id TextureID) { r.record("DeleteTexture", id) }

// ActiveTexture implements Driver.
func (r *Recorder) ActiveTexture(unit int) { r.record("ActiveTexture", unit) }

// BindTexture implements Driver.
func (r *Recorder) BindTexture(id TextureID) { r.record("BindTexture", id) }

// TexImage2D implements Driver.
func (r *Recorder) TexImage2D(format gputypes.TextureFormat, w, h int, pixels []byte) {
	r.record("TexImage2D", format, w, h, len(pixels))
}

// TexSubImage2D implements Driver.
func (r *Recorder) TexSubImage2D(x, y, w, h int, format gputypes.TextureFormat, pixels []byte) {
	r.record("TexSubImage2D", x, y, w, h, format, len(pixels))
}

// TexFilter implements Driver.
func (r *Recorder) TexFilter(minFilter, magFilter FilterMode) {
	r.record("TexFilter", minFilter, magFilter)
}

// TexWrap implements Driver.
func (r *Recorder) TexWrap(s, t WrapMode) { r.record("TexWrap", s, t) }

// CreateFramebuffer implements Driver.
func (r *Recorder) CreateFramebuffer() FramebufferID {
	r.nextFBO++
	r.record("CreateFramebuffer", r.nextFBO)
	return r.nextFBO
}

// DeleteFramebuffer implements Driver.
func (r *Recorder) DeleteFramebuffer(id FramebufferID) { r.record("DeleteFramebuffer", id) }

// BindFramebuffer implements Driver.
func (r *Recorder) BindFramebuffer(id FramebufferID) { r.record("BindFramebuffer", id) }

// FramebufferTexture implements Driver.
func (r *Recorder) FramebufferTexture(id TextureID) { r.record("FramebufferTexture", id) }

// ClearColor implements Driver.
func (r *Recorder) ClearColor(red, g, b, a float32) { r.record("ClearColor", red, g, b, a) }

// Clear implements Driver.
func (r *Recorder) Clear() { r.record("Clear") }

// Scissor implements Driver.
func (r *Recorder) Scissor(x, y, w, h int) { r.record("Scissor", x, y, w, h) }

// SetScissorEnabled implements Driver.
func (r *Recorder) SetScissorEnabled(enabled bool) { r.record("SetScissorEnabled", enabled) }

// BlendEquation implements Driver.
func (r *Recorder) BlendEquation(op gputypes.BlendOperation) { r.record("BlendEquation", op) }

// BlendFunc implements Driver.
func (r *Recorder) BlendFunc(src, dst gputypes.BlendFactor) { r.record("BlendFunc", src, dst) }

// BlendColor implements Driver.
func (r *Recorder) BlendColor(red, g, b, a float32) { r.record("BlendColor", red, g, b, a) }

// CreateBuffer implements Driver.
func (r *Recorder) CreateBuffer() BufferID {
	r.nextBuffer++
	r.record("CreateBuffer", r.nextBuffer)
	return r.nextBuffer
}

// DeleteBuffer implements Driver.
func (r *Recorder) DeleteBuffer(id BufferID) { r.record("DeleteBuffer", id) }

// BindBuffer implements Driver.
func (r *Recorder) BindBuffer(target BufferTarget, id BufferID) {
	r.record("BindBuffer", target, id)
}

// BufferData implements Driver.
func (r *Recorder) BufferData(target BufferTarget, data []byte, usage Usage) {
	r.record("BufferData", target, len(data), usage)
}

// CompileProgram implements Driver. It never fails.
func (r *Recorder) CompileProgram(vertexSrc, fragmentSrc string) (ProgramID, error) {
	r.nextProgram++
	r.record("CompileProgram", r.nextProgram)
	r.AttribCounts[r.nextProgram] = DefaultAttribCount
	r.uniformNames[r.nextProgram] = make(map[string]UniformLoc)
	return r.nextProgram, nil
}

// DeleteProgram implements Driver.
func (r *Recorder) DeleteProgram(id ProgramID) { r.record("DeleteProgram", id) }

// UseProgram implements Driver.
func (r *Recorder) UseProgram(id ProgramID) { r.record("UseProgram", id) }

// UniformLocation implements Driver. Locations are stable per
// (program, name) pair.
func (r *Recorder) UniformLocation(id ProgramID, name string) UniformLoc {
	locs := r.uniformNames[id]
	if locs == nil {
		locs = make(map[string]UniformLoc)
		r.uniformNames[id] = locs
	}
	loc, ok := locs[name]
	if !ok {
		r.nextUniform++
		loc = r.nextUniform
		locs[name] = loc
	}
	return loc
}

// ActiveAttribCount implements Driver.
func (r *Recorder) ActiveAttribCount(id ProgramID) int {
	if n, ok := r.AttribCounts[id]; ok {
		return n
	}
	return DefaultAttribCount
}

// Uniform1i implements Driver.
func (r *Recorder) Uniform1i(loc UniformLoc, v int32) { r.record("Uniform1i", loc, v) }

// Uniform1f implements Driver.
func (r *Recorder) Uniform1f(loc UniformLoc, v float32) { r.record("Uniform1f", loc, v) }

// Uniform2f implements Driver.
func (r *Recorder) Uniform2f(loc UniformLoc, x, y float32) { r.record("Uniform2f", loc, x, y) }

// Uniform4f implements Driver.
func (r *Recorder) Uniform4f(loc UniformLoc, x, y, z, w float32) {
	r.record("Uniform4f", loc, x, y, z, w)
}

// UniformMatrix4 implements Driver.
func (r *Recorder) UniformMatrix4(loc UniformLoc, m [16]float32) {
	r.record("UniformMatrix4", loc, m)
}

// EnableVertexAttrib implements Driver.
func (r *Recorder) EnableVertexAttrib(index int) { r.record("EnableVertexAttrib", index) }

// DisableVertexAttrib implements Driver.
func (r *Recorder) DisableVertexAttrib(index int) { r.record("DisableVertexAttrib", index) }

// VertexAttribPointer implements Driver.
func (r *Recorder) VertexAttribPointer(index, size int, typ AttribType, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
}

// DrawTriangles implements Driver.
func (r *Recorder) DrawTriangles(count int) { r.record("DrawTriangles", count) }

// Ensure Recorder implements Driver.
var _ Driver = (*Recorder)(nil)
