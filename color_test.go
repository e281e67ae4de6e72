package vexel

import (
	"image/color"
	"testing"
)

func TestColorChannels(t *testing.T) {
	tests := []struct {
		name       string
		c          Color
		r, g, b, a uint8
	}{
		{"white", White, 255, 255, 255, 255},
		{"black", Black, 0, 0, 0, 255},
		{"transparent", Transparent, 0, 0, 0, 0},
		{"packed", RGBA8(0x12, 0x34, 0x56, 0x78), 0x12, 0x34, 0x56, 0x78},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.c.R() != tt.r || tt.c.G() != tt.g || tt.c.B() != tt.b || tt.c.A() != tt.a {
				t.Errorf("channels = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					tt.c.R(), tt.c.G(), tt.c.B(), tt.c.A(), tt.r, tt.g, tt.b, tt.a)
			}
			if got := tt.c.Bytes(); got != [4]uint8{tt.r, tt.g, tt.b, tt.a} {
				t.Errorf("Bytes() = %v", got)
			}
		})
	}
}

func TestColorFloats(t *testing.T) {
	f := RGBA8(255, 0, 51, 255).Floats()
	want := [4]float32{1, 0, 0.2, 1}
	if f != want {
		t.Errorf("Floats() = %v, want %v", f, want)
	}
}

func TestColorTint(t *testing.T) {
	tests := []struct {
		name string
		c, t Color
		want Color
	}{
		{"white identity", RGBA8(10, 20, 30, 40), White, RGBA8(10, 20, 30, 40)},
		{"black kills rgb", White, Black, Black},
		{"half alpha", White, RGBA8(255, 255, 255, 128), RGBA8(255, 255, 255, 128)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Tint(tt.t); got != tt.want {
				t.Errorf("Tint() = %08x, want %08x", uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestColorRoundtrip(t *testing.T) {
	original := RGBA8(0x80, 0x40, 0xc0, 0xff)
	roundtripped := FromColor(original.Color())
	if roundtripped != original {
		t.Errorf("roundtrip: %08x != %08x", uint32(roundtripped), uint32(original))
	}
}

func TestFromColorStdColors(t *testing.T) {
	if got := FromColor(color.White); got != White {
		t.Errorf("FromColor(color.White) = %08x, want white", uint32(got))
	}
	if got := FromColor(color.NRGBA{R: 255, A: 255}); got != RGBA8(255, 0, 0, 255) {
		t.Errorf("FromColor(red) = %08x", uint32(got))
	}
}
