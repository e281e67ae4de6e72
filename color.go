package vexel

import "image/color"

// Color is a packed 8-bit-per-channel RGBA color, stored as 0xRRGGBBAA.
// This is the representation attached to every vertex; it is compact,
// comparable, and uploads to the GPU without conversion.
type Color uint32

// Common colors.
const (
	White       Color = 0xffffffff
	Black       Color = 0x000000ff
	Transparent Color = 0x00000000
)

// RGBA8 packs four 8-bit channels into a Color.
func RGBA8(r, g, b, a uint8) Color {
	return Color(r)<<24 | Color(g)<<16 | Color(b)<<8 | Color(a)
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 24) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 16) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c >> 8) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c) }

// Bytes returns the channels in upload order (r, g, b, a).
func (c Color) Bytes() [4]uint8 {
	return [4]uint8{c.R(), c.G(), c.B(), c.A()}
}

// Floats returns the channels scaled to [0, 1], the form uniform
// uploads expect.
func (c Color) Floats() [4]float32 {
	return [4]float32{
		float32(c.R()) / 255,
		float32(c.G()) / 255,
		float32(c.B()) / 255,
		float32(c.A()) / 255,
	}
}

// Tint multiplies c channel-wise by t. Tinting by White is the identity;
// tinting by a translucent color fades the result.
func (c Color) Tint(t Color) Color {
	mul := func(a, b uint8) uint8 {
		return uint8((uint16(a)*uint16(b) + 127) / 255)
	}
	return RGBA8(
		mul(c.R(), t.R()),
		mul(c.G(), t.G()),
		mul(c.B(), t.B()),
		mul(c.A(), t.A()),
	)
}

// Color converts to the standard library color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// FromColor converts a standard color.Color to a packed Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return RGBA8(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}
