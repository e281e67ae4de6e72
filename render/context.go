// Package render owns the GPU-facing side of a frame: the rendering
// context that holds every GPU resource, and the renderer that turns a
// finished frame of batches into buffer uploads and draw calls.
package render

import (
	"fmt"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/draw"
	"github.com/vexelgl/vexel/internal/gldriver"
	"github.com/vexelgl/vexel/texture"
)

// ContextConfig configures a rendering context.
type ContextConfig struct {
	// Width and Height are the render target size in pixels.
	// Defaults: 800x600.
	Width  int
	Height int

	// ClearColor is the ambient background color. Default: opaque black.
	ClearColor vexel.Color
}

func (c *ContextConfig) setDefaults() {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.ClearColor == 0 {
		c.ClearColor = vexel.Black
	}
}

// bufferPair is one reusable vertex/index buffer slot. Pairs are
// created on demand as frames need more concurrent batches and are
// never released until the context closes.
type bufferPair struct {
	vertex gldriver.BufferID
	index  gldriver.BufferID
}

// Context owns every GPU resource the renderer touches: the shader
// set, the texture cache, the mask atlas and the buffer pool. It is
// torn down as one unit by Close; loss of the underlying GPU context is
// fatal and recovered only by recreating the whole Context.
type Context struct {
	drv     gldriver.Driver
	shaders *draw.ShaderSet
	cache   *texture.Cache
	atlas   *draw.Atlas
	differ  *draw.Differ

	config  ContextConfig
	buffers []bufferPair
}

// NewContext creates a rendering context on the given driver. The
// driver's GL context must already be current.
func NewContext(d gldriver.Driver, cfg ContextConfig) (*Context, error) {
	cfg.setDefaults()

	shaders, err := draw.NewShaderSet(d)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	c := &Context{
		drv:     d,
		shaders: shaders,
		cache:   texture.NewCache(d),
		atlas:   draw.NewAtlas(d, cfg.Width, cfg.Height),
		config:  cfg,
	}
	c.differ = draw.NewDiffer(d, shaders, c.cache, c.atlas, cfg.Width, cfg.Height)

	d.Viewport(0, 0, cfg.Width, cfg.Height)
	cc := cfg.ClearColor.Floats()
	d.ClearColor(cc[0], cc[1], cc[2], cc[3])
	return c, nil
}

// Textures returns the context's texture cache.
func (c *Context) Textures() *texture.Cache { return c.cache }

// Size returns the render target size.
func (c *Context) Size() (w, h int) {
	return c.config.Width, c.config.Height
}

// Resize adjusts the render target and mask atlas for a new window
// size. Atlas contents are discarded.
func (c *Context) Resize(w, h int) {
	c.config.Width, c.config.Height = w, h
	c.drv.Viewport(0, 0, w, h)
	c.atlas.Resize(w, h)
	c.differ.SetViewport(w, h)
}

// SetClearColor changes the ambient background color.
func (c *Context) SetClearColor(col vexel.Color) {
	c.config.ClearColor = col
	cc := col.Floats()
	c.drv.ClearColor(cc[0], cc[1], cc[2], cc[3])
}

// buffer returns buffer pair i, growing the pool by exactly the
// shortfall. The pool never shrinks.
func (c *Context) buffer(i int) bufferPair {
	for len(c.buffers) <= i {
		c.buffers = append(c.buffers, bufferPair{
			vertex: c.drv.CreateBuffer(),
			index:  c.drv.CreateBuffer(),
		})
	}
	return c.buffers[i]
}

// Close releases every GPU resource the context owns. The context is
// unusable afterwards.
func (c *Context) Close() {
	if c.shaders != nil {
		c.shaders.Close(c.drv)
		c.shaders = nil
	}
	if c.cache != nil {
		c.cache.Close()
		c.cache = nil
	}
	if c.atlas != nil {
		c.atlas.Close()
		c.atlas = nil
	}
	for _, b := range c.buffers {
		c.drv.DeleteBuffer(b.vertex)
		c.drv.DeleteBuffer(b.index)
	}
	c.buffers = nil
}
