// Package draw holds the per-frame draw state: shader programs, the
// clip-mask compositor and the state differ that turns consecutive
// batch states into a minimal set of GPU calls.
package draw

import (
	"fmt"

	"github.com/vexelgl/vexel/internal/gldriver"
)

// ShaderMode selects which of the two exclusive programs a batch draws
// with.
type ShaderMode uint8

const (
	// ShaderStandard is the plain textured-quad program.
	ShaderStandard ShaderMode = iota
	// ShaderSDF renders signed-distance-field text and outlines.
	ShaderSDF
)

// String returns the string representation of the mode.
func (m ShaderMode) String() string {
	switch m {
	case ShaderStandard:
		return "Standard"
	case ShaderSDF:
		return "SDF"
	default:
		return "Unknown"
	}
}

const vertexSrc = `#version 330 core
layout(location = 0) in vec2 in_pos;
layout(location = 1) in vec2 in_uv;
layout(location = 2) in vec4 in_color;
layout(location = 3) in vec4 in_config;
layout(location = 4) in float in_smoothing;

uniform mat4 TRANSFORM;
uniform vec4 TEX_TRANSFORM;

out vec2 v_uv;
out vec4 v_color;
out vec4 v_config;
out float v_smoothing;
out vec2 v_mask_uv;

void main() {
    gl_Position = TRANSFORM * vec4(in_pos, 0.0, 1.0);
    v_uv = TEX_TRANSFORM.xy + in_uv * TEX_TRANSFORM.zw;
    v_color = in_color;
    v_config = in_config;
    v_smoothing = in_smoothing;
    v_mask_uv = gl_Position.xy * 0.5 + 0.5;
}
`

const standardFragSrc = `#version 330 core
uniform sampler2D TEX_ID;
uniform sampler2D MASK_ID;
uniform vec4 MASK_BOUNDS;
uniform vec4 TINT_COLOR;

in vec2 v_uv;
in vec4 v_color;
in vec4 v_config;
in float v_smoothing;
in vec2 v_mask_uv;

out vec4 frag_color;

void main() {
    vec4 tex = texture(TEX_ID, v_uv);
    float mask = texture(MASK_ID, MASK_BOUNDS.xy + v_mask_uv * MASK_BOUNDS.zw).a;
    vec4 color = tex * v_color * TINT_COLOR;
    float inside = smoothstep(v_config.x, v_config.y, 1.0 - length(v_config.zw) * v_smoothing);
    frag_color = vec4(color.rgb, color.a * inside * mask);
}
`

const sdfFragSrc = `#version 330 core
uniform sampler2D TEX_ID;
uniform sampler2D MASK_ID;
uniform vec4 MASK_BOUNDS;
uniform vec4 TINT_COLOR;
uniform vec4 TEXT_COLOR;
uniform vec4 OUTLINE_COLOR;
uniform vec4 DISTANCE_EDGES;
uniform vec4 TEX_CHAN_MASK;

in vec2 v_uv;
in vec4 v_color;
in vec4 v_config;
in float v_smoothing;
in vec2 v_mask_uv;

out vec4 frag_color;

void main() {
    float dist = dot(texture(TEX_ID, v_uv), TEX_CHAN_MASK);
    float mask = texture(MASK_ID, MASK_BOUNDS.xy + v_mask_uv * MASK_BOUNDS.zw).a;
    float body = smoothstep(DISTANCE_EDGES.x, DISTANCE_EDGES.y, dist);
    float outline = smoothstep(DISTANCE_EDGES.z, DISTANCE_EDGES.w, dist);
    vec4 color = mix(OUTLINE_COLOR, TEXT_COLOR, body) * TINT_COLOR;
    frag_color = vec4(color.rgb, color.a * outline * mask);
}
`

// Shader is one compiled program with its uniform locations resolved.
// The SDF-only locations are invalid (-1) on the standard program.
type Shader struct {
	Program     gldriver.ProgramID
	AttribCount int

	Transform    gldriver.UniformLoc
	TexTransform gldriver.UniformLoc
	TexID        gldriver.UniformLoc
	MaskID       gldriver.UniformLoc
	MaskBounds   gldriver.UniformLoc
	TintColor    gldriver.UniformLoc

	TextColor     gldriver.UniformLoc
	OutlineColor  gldriver.UniformLoc
	DistanceEdges gldriver.UniformLoc
	TexChanMask   gldriver.UniformLoc
}

// ShaderSet holds the two programs every frame draws with.
type ShaderSet struct {
	Standard *Shader
	SDF      *Shader
}

// NewShaderSet compiles both programs and resolves their uniforms.
func NewShaderSet(d gldriver.Driver) (*ShaderSet, error) {
	std, err := newShader(d, standardFragSrc)
	if err != nil {
		return nil, fmt.Errorf("draw: standard shader: %w", err)
	}
	sdf, err := newShader(d, sdfFragSrc)
	if err != nil {
		d.DeleteProgram(std.Program)
		return nil, fmt.Errorf("draw: sdf shader: %w", err)
	}
	return &ShaderSet{Standard: std, SDF: sdf}, nil
}

func newShader(d gldriver.Driver, fragSrc string) (*Shader, error) {
	p, err := d.CompileProgram(vertexSrc, fragSrc)
	if err != nil {
		return nil, err
	}
	return &Shader{
		Program:       p,
		AttribCount:   d.ActiveAttribCount(p),
		Transform:     d.UniformLocation(p, "TRANSFORM"),
		TexTransform:  d.UniformLocation(p, "TEX_TRANSFORM"),
		TexID:         d.UniformLocation(p, "TEX_ID"),
		MaskID:        d.UniformLocation(p, "MASK_ID"),
		MaskBounds:    d.UniformLocation(p, "MASK_BOUNDS"),
		TintColor:     d.UniformLocation(p, "TINT_COLOR"),
		TextColor:     d.UniformLocation(p, "TEXT_COLOR"),
		OutlineColor:  d.UniformLocation(p, "OUTLINE_COLOR"),
		DistanceEdges: d.UniformLocation(p, "DISTANCE_EDGES"),
		TexChanMask:   d.UniformLocation(p, "TEX_CHAN_MASK"),
	}, nil
}

// For returns the program for a shader mode.
func (s *ShaderSet) For(m ShaderMode) *Shader {
	if m == ShaderSDF {
		return s.SDF
	}
	return s.Standard
}

// Close deletes both programs.
func (s *ShaderSet) Close(d gldriver.Driver) {
	if s.Standard != nil {
		d.DeleteProgram(s.Standard.Program)
		s.Standard = nil
	}
	if s.SDF != nil {
		d.DeleteProgram(s.SDF.Program)
		s.SDF = nil
	}
}
