package draw

import (
	"github.com/gogpu/gputypes"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/batch"
	"github.com/vexelgl/vexel/internal/gldriver"
	"github.com/vexelgl/vexel/texture"
)

// neutralBounds samples the corner of whatever neutral texture is bound
// on the mask unit.
var neutralBounds = [4]float32{0, 0, 1, 1}

// Differ turns consecutive batch states into the minimal set of GPU
// calls. ApplyAll seeds absolute state at frame start; ApplyChange
// afterwards touches only the categories that differ from the previous
// batch. GL state is sticky, so anything left alone stays valid.
type Differ struct {
	drv     gldriver.Driver
	shaders *ShaderSet
	cache   *texture.Cache
	atlas   *Atlas
	winW    int
	winH    int

	seeded  bool
	current Params
	kind    batch.UVKind
	enabled int
}

// NewDiffer creates a differ over the given context pieces. winW and
// winH are the main render target size, restored when mask accumulation
// ends.
func NewDiffer(d gldriver.Driver, shaders *ShaderSet, cache *texture.Cache, atlas *Atlas, winW, winH int) *Differ {
	return &Differ{
		drv:     d,
		shaders: shaders,
		cache:   cache,
		atlas:   atlas,
		winW:    winW,
		winH:    winH,
	}
}

// SetViewport updates the main render target size.
func (df *Differ) SetViewport(w, h int) {
	df.winW, df.winH = w, h
}

// Reset forgets the seeded state, forcing the next apply to seed
// absolutely. Called at frame start.
func (df *Differ) Reset() { df.seeded = false }

// CurrentShader returns the program the last applied state selected.
func (df *Differ) CurrentShader() *Shader {
	return df.shaders.For(df.current.Shader)
}

// ApplyAll seeds every piece of GPU state from p, with no diffing.
func (df *Differ) ApplyAll(p Params, kind batch.UVKind) {
	sh := df.shaders.For(p.Shader)
	df.drv.UseProgram(sh.Program)
	df.setAttribArrays(sh.AttribCount)
	df.drv.Uniform1i(sh.TexID, 0)
	df.drv.Uniform1i(sh.MaskID, 1)

	df.uploadTransform(sh, p)
	df.uploadTint(sh, p)
	df.bindTexture(p.Texture)
	df.uploadTexTransform(sh, p.Texture, kind)
	if p.Shader == ShaderSDF {
		df.uploadSDF(sh, p)
	}
	df.seedMask(sh, p)

	df.current = p
	df.kind = kind
	df.seeded = true
}

// ApplyChange applies the difference between the previously applied
// state and p. Identical states produce zero GPU calls.
func (df *Differ) ApplyChange(p Params, kind batch.UVKind) {
	if !df.seeded {
		df.ApplyAll(p, kind)
		return
	}
	prev := df.current
	sh := df.shaders.For(p.Shader)
	switched := p.Shader != prev.Shader

	if switched {
		// Uniforms live per program, so everything uploaded this frame
		// is stale in the one being switched to.
		df.drv.UseProgram(sh.Program)
		df.setAttribArrays(sh.AttribCount)
		df.drv.Uniform1i(sh.TexID, 0)
		df.drv.Uniform1i(sh.MaskID, 1)
		df.uploadTransform(sh, p)
		df.uploadTint(sh, p)
		df.uploadMaskBounds(sh, p)
		if p.Shader == ShaderSDF {
			df.uploadSDF(sh, p)
		}
	} else {
		if p.Transform != prev.Transform {
			df.uploadTransform(sh, p)
		}
		if p.TintColor != prev.TintColor {
			df.uploadTint(sh, p)
		}
		if p.Shader == ShaderSDF {
			df.uploadSDFDiff(sh, prev, p)
		}
	}

	if p.Texture != prev.Texture {
		df.bindTexture(p.Texture)
	}
	if switched || p.Texture != prev.Texture || kind != df.kind {
		df.uploadTexTransform(sh, p.Texture, kind)
	}

	df.maskChange(sh, prev, p)

	df.current = p
	df.kind = kind
}

// setAttribArrays enables or disables vertex attribute arrays so that
// exactly n are active.
func (df *Differ) setAttribArrays(n int) {
	for i := df.enabled; i < n; i++ {
		df.drv.EnableVertexAttrib(i)
	}
	for i := n; i < df.enabled; i++ {
		df.drv.DisableVertexAttrib(i)
	}
	df.enabled = n
}

func (df *Differ) uploadTransform(sh *Shader, p Params) {
	df.drv.UniformMatrix4(sh.Transform, [16]float32(p.Transform))
}

func (df *Differ) uploadTint(sh *Shader, p Params) {
	c := p.TintColor.Floats()
	df.drv.Uniform4f(sh.TintColor, c[0], c[1], c[2], c[3])
}

// bindTexture binds the texture for a key on unit 0, substituting the
// built-in default for anything not Ready.
func (df *Differ) bindTexture(key vexel.TextureKey) {
	id, _, ok := df.cache.Lookup(key)
	if !ok {
		id, _, _ = df.cache.Lookup(texture.DefaultKey)
	}
	df.drv.ActiveTexture(0)
	df.drv.BindTexture(id)
}

// uploadTexTransform sets the UV mapping for the bound texture:
// pixel-space 16-bit UVs are scaled by the reciprocal texture extent,
// float UVs pass through already normalized.
func (df *Differ) uploadTexTransform(sh *Shader, key vexel.TextureKey, kind batch.UVKind) {
	if kind == batch.UVFloat32 {
		df.drv.Uniform4f(sh.TexTransform, 0, 0, 1, 1)
		return
	}
	_, size, ok := df.cache.Lookup(key)
	if !ok || size.TextureWidth == 0 || size.TextureHeight == 0 {
		df.drv.Uniform4f(sh.TexTransform, 0, 0, 1, 1)
		return
	}
	df.drv.Uniform4f(sh.TexTransform, 0, 0,
		1/float32(size.TextureWidth), 1/float32(size.TextureHeight))
}

func (df *Differ) uploadSDF(sh *Shader, p Params) {
	t := p.TextColor.Floats()
	df.drv.Uniform4f(sh.TextColor, t[0], t[1], t[2], t[3])
	o := p.OutlineColor.Floats()
	df.drv.Uniform4f(sh.OutlineColor, o[0], o[1], o[2], o[3])
	e := p.DistanceEdges
	df.drv.Uniform4f(sh.DistanceEdges, e[0], e[1], e[2], e[3])
	m := p.ChanMask
	df.drv.Uniform4f(sh.TexChanMask, m[0], m[1], m[2], m[3])
}

func (df *Differ) uploadSDFDiff(sh *Shader, prev, p Params) {
	if p.TextColor != prev.TextColor {
		t := p.TextColor.Floats()
		df.drv.Uniform4f(sh.TextColor, t[0], t[1], t[2], t[3])
	}
	if p.OutlineColor != prev.OutlineColor {
		o := p.OutlineColor.Floats()
		df.drv.Uniform4f(sh.OutlineColor, o[0], o[1], o[2], o[3])
	}
	if p.DistanceEdges != prev.DistanceEdges {
		e := p.DistanceEdges
		df.drv.Uniform4f(sh.DistanceEdges, e[0], e[1], e[2], e[3])
	}
	if p.ChanMask != prev.ChanMask {
		m := p.ChanMask
		df.drv.Uniform4f(sh.TexChanMask, m[0], m[1], m[2], m[3])
	}
}

// uploadMaskBounds sets the mask sampling window for the current mask
// state: the strip below the active level when masked, the neutral
// window otherwise.
func (df *Differ) uploadMaskBounds(sh *Shader, p Params) {
	if p.mode == batch.ModeMasked && p.level > 0 {
		b := df.atlas.StripBounds(p.level - 1)
		df.drv.Uniform4f(sh.MaskBounds, b[0], b[1], b[2], b[3])
		return
	}
	b := neutralBounds
	df.drv.Uniform4f(sh.MaskBounds, b[0], b[1], b[2], b[3])
}

// bindMaskSampling points unit 1 at the mask atlas strip below level,
// or at the neutral white texture when level is zero.
func (df *Differ) bindMaskSampling(sh *Shader, level int) {
	df.drv.ActiveTexture(1)
	if level > 0 {
		df.drv.BindTexture(df.atlas.Texture())
		b := df.atlas.StripBounds(level - 1)
		df.drv.Uniform4f(sh.MaskBounds, b[0], b[1], b[2], b[3])
	} else {
		id, _, _ := df.cache.Lookup(texture.DefaultKey)
		df.drv.BindTexture(id)
		b := neutralBounds
		df.drv.Uniform4f(sh.MaskBounds, b[0], b[1], b[2], b[3])
	}
	df.drv.ActiveTexture(0)
}

// seedMask sets the full mask-related state for p with no diffing.
func (df *Differ) seedMask(sh *Shader, p Params) {
	if p.mode == batch.ModeMasked {
		df.drv.BindFramebuffer(0)
		df.drv.Viewport(0, 0, df.winW, df.winH)
		df.drv.BlendEquation(gputypes.BlendOperationAdd)
		df.drv.BlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha)
		df.bindMaskSampling(sh, p.level)
		return
	}
	df.bindMaskSampling(sh, 0)
	df.beginAccumulation(p)
}

// WriteStrip returns the atlas strip a mask-writing batch accumulates
// into: a push writes the strip for its new level, a pop unwinds the
// strip it was just sampling. Both come out one below the push-time
// level.
func WriteStrip(mode batch.MaskMode, level int) int {
	if mode == batch.ModePush {
		return level - 1
	}
	return level
}

// beginAccumulation retargets drawing into the written mask strip with
// the accumulation blend state.
func (df *Differ) beginAccumulation(p Params) {
	df.drv.BindFramebuffer(df.atlas.Framebuffer())
	x, y, w, h := df.atlas.StripViewport(WriteStrip(p.mode, p.level))
	df.drv.Viewport(x, y, w, h)
	c := 1 / float32(MaskLevels)
	df.drv.BlendColor(c, c, c, c)
	df.drv.BlendFunc(gputypes.BlendFactorConstant, gputypes.BlendFactorOne)
	df.drv.BlendEquation(accumulationEquation(p.mode))
}

func accumulationEquation(m batch.MaskMode) gputypes.BlendOperation {
	if m == batch.ModePop {
		return gputypes.BlendOperationReverseSubtract
	}
	return gputypes.BlendOperationAdd
}

// maskChange applies the mask state transition between two consecutive
// batches.
func (df *Differ) maskChange(sh *Shader, prev, p Params) {
	if prev.mode == p.mode && prev.level == p.level {
		return
	}
	switch {
	case p.mode == batch.ModeMasked:
		// Leaving accumulation, or a masked level change.
		if prev.mode != batch.ModeMasked {
			df.drv.BindFramebuffer(0)
			df.drv.Viewport(0, 0, df.winW, df.winH)
			df.drv.BlendEquation(gputypes.BlendOperationAdd)
			df.drv.BlendFunc(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha)
		}
		df.bindMaskSampling(sh, p.level)

	case prev.mode == batch.ModeMasked:
		// Entering accumulation: stop sampling the atlas before
		// drawing into it.
		df.bindMaskSampling(sh, 0)
		df.beginAccumulation(p)

	default:
		// Push/Pop flips and level moves within accumulation.
		if WriteStrip(prev.mode, prev.level) != WriteStrip(p.mode, p.level) {
			x, y, w, h := df.atlas.StripViewport(WriteStrip(p.mode, p.level))
			df.drv.Viewport(x, y, w, h)
		}
		if prev.mode != p.mode {
			df.drv.BlendEquation(accumulationEquation(p.mode))
		}
	}
}
