package draw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/batch"
)

// Params is the visual state accumulated while walking the scene. The
// widget layer mutates a Params as it descends; every batch records a
// snapshot of the state it was drawn under, and the differ later turns
// snapshot-to-snapshot deltas into GPU calls.
type Params struct {
	// Transform is the accumulated logical-pixel to clip-space matrix.
	Transform mgl32.Mat4
	// TintColor multiplies every fragment.
	TintColor vexel.Color
	// Texture is the key of the texture sampled on unit 0.
	Texture vexel.TextureKey

	// Shader is the active program.
	Shader ShaderMode
	// SDF-only parameters, applied through the setters below.
	TextColor     vexel.Color
	OutlineColor  vexel.Color
	DistanceEdges [4]float32
	ChanMask      [4]float32

	mode    batch.MaskMode
	level   int
	newMask bool
}

// NewParams returns the frame-start state: identity transform, white
// tint, no texture, standard shader, no mask.
func NewParams() Params {
	return Params{
		Transform: mgl32.Ident4(),
		TintColor: vexel.White,
	}
}

// Mul accumulates a transform.
func (p *Params) Mul(m mgl32.Mat4) {
	p.Transform = p.Transform.Mul4(m)
}

// Tint multiplies the tint color channel-wise.
func (p *Params) Tint(c vexel.Color) {
	p.TintColor = p.TintColor.Tint(c)
}

// UseTexture selects the texture sampled on unit 0.
func (p *Params) UseTexture(key vexel.TextureKey) {
	p.Texture = key
}

// StandardMode selects the plain textured program.
func (p *Params) StandardMode() {
	p.Shader = ShaderStandard
}

// SDFMode selects the signed-distance-field program.
func (p *Params) SDFMode() {
	p.Shader = ShaderSDF
}

// SDFTextColor sets the fill color for distance-field text. Outside SDF
// mode this is a no-op in release builds and an assertion failure under
// the debug build tag.
func (p *Params) SDFTextColor(c vexel.Color) {
	if p.Shader != ShaderSDF {
		debugSDFMisuse("SDFTextColor")
		return
	}
	p.TextColor = c
}

// SDFOutlineColor sets the outline color for distance-field text.
// Outside SDF mode this is a no-op in release builds.
func (p *Params) SDFOutlineColor(c vexel.Color) {
	if p.Shader != ShaderSDF {
		debugSDFMisuse("SDFOutlineColor")
		return
	}
	p.OutlineColor = c
}

// SDFEdges sets the body edge thresholds from an edge distance and a
// smoothing width. Outside SDF mode this is a no-op in release builds.
func (p *Params) SDFEdges(edge, smoothing float32) {
	if p.Shader != ShaderSDF {
		debugSDFMisuse("SDFEdges")
		return
	}
	half := max(smoothing, 0) / 2
	p.DistanceEdges[0] = max(edge-half, 0)
	p.DistanceEdges[1] = edge + half
}

// SDFOutlineEdges sets the outline edge thresholds. Outside SDF mode
// this is a no-op in release builds.
func (p *Params) SDFOutlineEdges(edge, smoothing float32) {
	if p.Shader != ShaderSDF {
		debugSDFMisuse("SDFOutlineEdges")
		return
	}
	half := max(smoothing, 0) / 2
	p.DistanceEdges[2] = max(edge-half, 0)
	p.DistanceEdges[3] = edge + half
}

// SDFChanMask selects which texture channels carry the distance field.
// Outside SDF mode this is a no-op in release builds.
func (p *Params) SDFChanMask(r, g, b, a uint8) {
	if p.Shader != ShaderSDF {
		debugSDFMisuse("SDFChanMask")
		return
	}
	p.ChanMask = [4]float32{
		float32(r) / 255,
		float32(g) / 255,
		float32(b) / 255,
		float32(a) / 255,
	}
}

// PushMask starts accumulating a new clip mask one nesting level
// deeper. Drawing now adds coverage to that level's strip; the first
// batch recorded afterwards is classified NewMask and triggers a strip
// clear. Pushing past MaskLevels is ignored with a warning.
func (p *Params) PushMask() {
	if p.level >= MaskLevels {
		vexel.Logger().Warn("mask depth exceeded", "levels", MaskLevels)
		return
	}
	p.mode = batch.ModePush
	p.level++
	p.newMask = true
}

// PopMask leaves the innermost mask level: drawing now subtracts
// coverage from the strip that level was sampling. A pop directly after
// a push nets out to no mask at all. Popping with no mask active is
// ignored with a warning.
func (p *Params) PopMask() {
	if p.level == 0 {
		vexel.Logger().Warn("mask pop with no mask active")
		return
	}
	p.mode = batch.ModePop
	p.level--
	p.newMask = false
}

// CommitMask finishes the current mask operation and returns to
// ordinary drawing. After a push commit, draws sample the newly
// accumulated strip; after a pop commit, the enclosing strip (or none).
func (p *Params) CommitMask() {
	p.mode = batch.ModeMasked
	p.newMask = false
}

// MaskMode returns the compositor cursor mode.
func (p *Params) MaskMode() batch.MaskMode { return p.mode }

// MaskLevel returns the current nesting depth.
func (p *Params) MaskLevel() int { return p.level }

// Class returns the mask classification the next batch will carry.
func (p *Params) Class() batch.MaskClass {
	switch p.mode {
	case batch.ModePush:
		if p.newMask {
			return batch.NewMask
		}
		return batch.AddToMask
	case batch.ModePop:
		return batch.AddToMask
	default:
		if p.level > 0 {
			return batch.Masked
		}
		return batch.Unmasked
	}
}

// state returns the batch state the next find call records.
func (p *Params) state() batch.State {
	return batch.State{
		Texture: p.Texture,
		Class:   p.Class(),
		Mode:    p.mode,
		Level:   p.level,
	}
}
