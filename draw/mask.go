package draw

import (
	"github.com/gogpu/gputypes"

	"github.com/vexelgl/vexel/internal/gldriver"
)

// MaskLevels is how many independently nested clip regions the mask
// atlas supports. Each level owns one horizontal strip of the atlas.
const MaskLevels = 4

// Atlas is the shared offscreen mask-accumulation target. One texture
// the size of the window, split into MaskLevels horizontal strips, with
// a framebuffer for drawing into it. The strip for nesting level L
// holds the accumulated clip alpha for that level; each strip is
// cleared when a new mask starts at its level, so strips are reused
// freely across the frame.
type Atlas struct {
	drv gldriver.Driver
	tex gldriver.TextureID
	fbo gldriver.FramebufferID
	w   int
	h   int
}

// NewAtlas allocates the mask texture and framebuffer at the given
// window size.
func NewAtlas(d gldriver.Driver, width, height int) *Atlas {
	a := &Atlas{
		drv: d,
		tex: d.CreateTexture(),
		fbo: d.CreateFramebuffer(),
	}
	a.Resize(width, height)
	d.BindFramebuffer(a.fbo)
	d.FramebufferTexture(a.tex)
	d.BindFramebuffer(0)
	return a
}

// Resize reallocates the atlas storage for a new window size. Contents
// are discarded; strips are rebuilt as masks are pushed.
func (a *Atlas) Resize(width, height int) {
	a.w, a.h = width, height
	a.drv.ActiveTexture(0)
	a.drv.BindTexture(a.tex)
	a.drv.TexImage2D(gputypes.TextureFormatRGBA8Unorm, width, height, nil)
	a.drv.TexFilter(gldriver.FilterNearest, gldriver.FilterNearest)
	a.drv.TexWrap(gldriver.WrapClampToEdge, gldriver.WrapClampToEdge)
}

// Texture returns the atlas texture, sampled on unit 1 by masked draws.
func (a *Atlas) Texture() gldriver.TextureID { return a.tex }

// Framebuffer returns the accumulation target.
func (a *Atlas) Framebuffer() gldriver.FramebufferID { return a.fbo }

// StripBounds returns the MASK_BOUNDS uniform value for sampling strip
// level: an offset and scale mapping normalized screen coordinates into
// the strip.
func (a *Atlas) StripBounds(level int) [4]float32 {
	n := float32(MaskLevels)
	return [4]float32{0, float32(level) / n, 1, 1 / n}
}

// StripViewport returns the pixel rectangle of strip level, used as the
// viewport and scissor while accumulating into it.
func (a *Atlas) StripViewport(level int) (x, y, w, h int) {
	sh := a.h / MaskLevels
	return 0, level * sh, a.w, sh
}

// ClearStrip clears one strip to transparent. The caller is expected to
// have bound the atlas framebuffer and set a transparent clear color.
func (a *Atlas) ClearStrip(level int) {
	x, y, w, h := a.StripViewport(level)
	a.drv.Scissor(x, y, w, h)
	a.drv.SetScissorEnabled(true)
	a.drv.Clear()
	a.drv.SetScissorEnabled(false)
}

// Close releases the atlas texture and framebuffer.
func (a *Atlas) Close() {
	if a.tex != 0 {
		a.drv.DeleteTexture(a.tex)
		a.tex = 0
	}
	if a.fbo != 0 {
		a.drv.DeleteFramebuffer(a.fbo)
		a.fbo = 0
	}
}
