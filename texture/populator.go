// Package texture maps population strategies to lazily-created GPU
// textures. The cache is the single owner of every GPU texture handle;
// everything else holds keys.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/internal/gldriver"
)

// ErrEmptyImage is returned when a populator produces no pixels.
var ErrEmptyImage = errors.New("texture: empty image")

// Populator describes how a texture gets its pixels. It is a closed
// variant set: SolidColor, Image or Generated. Two populators with the
// same Key are the same cache entry, so keys must be stable over the
// content they describe.
type Populator interface {
	// Key is the content identity used for cache deduplication.
	Key() vexel.TextureKey

	// populate uploads pixel data for the texture bound on unit 0 and
	// returns its size metadata.
	populate(d gldriver.Driver) (Size, error)
}

// SolidColor populates a 2x2 texture of one color. Sampling it anywhere
// yields that color, so callers may use all-zero UVs.
type SolidColor struct {
	Color vexel.Color
}

// Key implements Populator.
func (s SolidColor) Key() vexel.TextureKey {
	return vexel.TextureKey(fmt.Sprintf("solid:%08x", uint32(s.Color)))
}

func (s SolidColor) populate(d gldriver.Driver) (Size, error) {
	c := s.Color.Bytes()
	pixels := make([]byte, 0, 16)
	for i := 0; i < 4; i++ {
		pixels = append(pixels, c[0], c[1], c[2], c[3])
	}
	d.TexImage2D(gputypes.TextureFormatRGBA8Unorm, 2, 2, pixels)
	d.TexFilter(gldriver.FilterNearest, gldriver.FilterNearest)
	d.TexWrap(gldriver.WrapClampToEdge, gldriver.WrapClampToEdge)
	return Size{ImageWidth: 2, ImageHeight: 2, TextureWidth: 2, TextureHeight: 2}, nil
}

// Image populates a texture from encoded image bytes (PNG, JPEG or
// BMP). Name must be stable for the byte content, e.g. an asset path.
type Image struct {
	Name string
	Data []byte

	// SDF marks the image as a signed-distance-field atlas.
	SDF *SDFInfo
}

// Key implements Populator.
func (i Image) Key() vexel.TextureKey {
	return vexel.TextureKey("image:" + i.Name)
}

func (i Image) populate(d gldriver.Driver) (Size, error) {
	src, _, err := image.Decode(bytes.NewReader(i.Data))
	if err != nil {
		return Size{}, fmt.Errorf("texture: decoding %q: %w", i.Name, err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return Size{}, fmt.Errorf("texture: %q: %w", i.Name, ErrEmptyImage)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Src)

	size := upload(d, rgba.Pix, b.Dx(), b.Dy())
	d.TexFilter(gldriver.FilterLinear, gldriver.FilterLinear)
	d.TexWrap(gldriver.WrapClampToEdge, gldriver.WrapClampToEdge)
	size.SDF = i.SDF
	return size, nil
}

// Generated populates a texture from procedurally generated RGBA
// pixels. Name must be stable for the generation parameters.
type Generated struct {
	Name   string
	Width  int
	Height int

	// At returns the color of pixel (x, y). Called once per pixel at
	// population time.
	At func(x, y int) vexel.Color
}

// Key implements Populator.
func (g Generated) Key() vexel.TextureKey {
	return vexel.TextureKey("gen:" + g.Name)
}

func (g Generated) populate(d gldriver.Driver) (Size, error) {
	if g.Width <= 0 || g.Height <= 0 || g.At == nil {
		return Size{}, fmt.Errorf("texture: generated %q: %w", g.Name, ErrEmptyImage)
	}
	pixels := make([]byte, 0, g.Width*g.Height*4)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y).Bytes()
			pixels = append(pixels, c[0], c[1], c[2], c[3])
		}
	}
	size := upload(d, pixels, g.Width, g.Height)
	d.TexFilter(gldriver.FilterNearest, gldriver.FilterNearest)
	d.TexWrap(gldriver.WrapRepeat, gldriver.WrapRepeat)
	return size, nil
}

// upload stores w x h RGBA pixels in the bound texture. Non-power-of-two
// data gets a power-of-two allocation with the image sub-uploaded into
// its lower-left corner, so pixel-space UVs stay valid.
func upload(d gldriver.Driver, pixels []byte, w, h int) Size {
	tw, th := nextPow2(w), nextPow2(h)
	if tw == w && th == h {
		d.TexImage2D(gputypes.TextureFormatRGBA8Unorm, w, h, pixels)
	} else {
		d.TexImage2D(gputypes.TextureFormatRGBA8Unorm, tw, th, nil)
		d.TexSubImage2D(0, 0, w, h, gputypes.TextureFormatRGBA8Unorm, pixels)
	}
	return Size{ImageWidth: w, ImageHeight: h, TextureWidth: tw, TextureHeight: th}
}
