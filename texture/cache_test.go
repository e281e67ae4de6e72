package texture

import (
	"testing"

	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/internal/gldriver"
)

func solidGray(name string, w, h int) Generated {
	return Generated{
		Name:   name,
		Width:  w,
		Height: h,
		At:     func(x, y int) vexel.Color { return vexel.RGBA8(128, 128, 128, 255) },
	}
}

// broken produces a populator that always fails.
func broken(name string) Generated {
	return Generated{Name: name}
}

func TestCacheBuiltins(t *testing.T) {
	rec := gldriver.NewRecorder()
	c := NewCache(rec)
	defer c.Close()

	id, size, ok := c.Lookup(vexel.NoTexture)
	if !ok {
		t.Fatal("default texture not ready")
	}
	if id == 0 {
		t.Error("default texture id = 0")
	}
	if size.ImageWidth != 2 || size.ImageHeight != 2 {
		t.Errorf("default size = %dx%d, want 2x2", size.ImageWidth, size.ImageHeight)
	}
	if _, _, ok := c.Lookup(ErrorKey); !ok {
		t.Error("error texture not ready")
	}
}

func TestCacheRegisterDedupe(t *testing.T) {
	rec := gldriver.NewRecorder()
	c := NewCache(rec)
	defer c.Close()

	k1 := c.Register(solidGray("gray", 4, 4))
	k2 := c.Register(solidGray("gray", 4, 4))
	if k1 != k2 {
		t.Fatalf("keys differ: %q vs %q", k1, k2)
	}
	c.RunPopulators()

	id1, _, _ := c.Lookup(k1)
	id2, _, _ := c.Lookup(k2)
	if id1 != id2 || id1 == 0 {
		t.Errorf("ids = %d, %d; want one shared nonzero id", id1, id2)
	}
}

func TestCacheLifecycle(t *testing.T) {
	rec := gldriver.NewRecorder()
	c := NewCache(rec)
	defer c.Close()

	key := c.Register(solidGray("gray", 4, 4))
	if got := c.State(key); got != Loading {
		t.Fatalf("state after register = %v, want Loading", got)
	}
	if _, _, ok := c.Lookup(key); ok {
		t.Error("Lookup succeeded for a Loading entry")
	}

	c.RunPopulators()
	if got := c.State(key); got != Ready {
		t.Fatalf("state after populate = %v, want Ready", got)
	}
	if _, _, ok := c.Lookup(key); !ok {
		t.Error("Lookup failed for a Ready entry")
	}
}

func TestCacheFailureIsPermanent(t *testing.T) {
	rec := gldriver.NewRecorder()
	c := NewCache(rec)
	defer c.Close()

	key := c.Register(broken("bad"))
	c.RunPopulators()
	if got := c.State(key); got != Failed {
		t.Fatalf("state = %v, want Failed", got)
	}

	// Re-registering the same identity must not revive it.
	c.Register(broken("bad"))
	c.RunPopulators()
	if got := c.State(key); got != Failed {
		t.Errorf("state after re-register = %v, want Failed", got)
	}
	if _, _, ok := c.Lookup(key); ok {
		t.Error("Lookup succeeded for a Failed entry")
	}
}

func TestCacheSpareIDReuse(t *testing.T) {
	rec := gldriver.NewRecorder()
	c := NewCache(rec)
	defer c.Close()

	c.Register(broken("bad1"))
	c.Register(broken("bad2"))
	good := c.Register(solidGray("gray", 4, 4))
	c.RunPopulators()

	// Two builtin textures plus exactly one name shared by both
	// failures and the success.
	if got := rec.Count("CreateTexture"); got != 3 {
		t.Errorf("CreateTexture calls = %d, want 3", got)
	}
	if id, _, ok := c.Lookup(good); !ok || id != 3 {
		t.Errorf("good texture id = %d (ok=%v), want 3", id, ok)
	}
}

func TestCachePow2Padding(t *testing.T) {
	rec := gldriver.NewRecorder()
	c := NewCache(rec)
	defer c.Close()

	key := c.Register(solidGray("odd", 10, 6))
	c.RunPopulators()

	_, size, ok := c.Lookup(key)
	if !ok {
		t.Fatal("texture not ready")
	}
	if size.TextureWidth != 16 || size.TextureHeight != 8 {
		t.Errorf("texture extent = %dx%d, want 16x8", size.TextureWidth, size.TextureHeight)
	}
	if !size.Padded() {
		t.Error("Padded() = false for a padded texture")
	}
	if got := rec.Count("TexSubImage2D"); got != 1 {
		t.Errorf("TexSubImage2D calls = %d, want 1", got)
	}
}

func TestUvRectPrecision(t *testing.T) {
	rec := gldriver.NewRecorder()
	c := NewCache(rec)
	defer c.Close()

	key := c.Register(solidGray("atlas", 16, 16))
	c.RunPopulators()

	tests := []struct {
		name string
		crop vexel.Rect
		want UvRect
	}{
		{"whole texture", vexel.Rect{}, UvUint16{Left: 0, Bottom: 0, Right: 16, Top: 16}},
		{"whole-texel crop", vexel.NewRect(4, 8, 8, 8), UvUint16{Left: 4, Bottom: 8, Right: 12, Top: 16}},
		{"fractional crop", vexel.NewRect(0.5, 0, 8, 8), UvFloat32{Left: 0.03125, Bottom: 0, Right: 0.53125, Top: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.UvRect(key, tt.crop); got != tt.want {
				t.Errorf("UvRect = %#v, want %#v", got, tt.want)
			}
		})
	}

	t.Run("solid sentinel", func(t *testing.T) {
		if got := c.UvRect(vexel.NoTexture, vexel.Rect{}); got != (UvSolid{}) {
			t.Errorf("UvRect = %#v, want UvSolid", got)
		}
	})
	t.Run("explicit float", func(t *testing.T) {
		got := c.FloatUvRect(key, vexel.NewRect(0, 0, 8, 8))
		want := UvFloat32{Left: 0, Bottom: 0, Right: 0.5, Top: 0.5}
		if got != want {
			t.Errorf("FloatUvRect = %#v, want %#v", got, want)
		}
	})
}

func TestCacheClose(t *testing.T) {
	rec := gldriver.NewRecorder()
	c := NewCache(rec)
	key := c.Register(solidGray("gray", 4, 4))
	c.Register(broken("bad"))
	c.RunPopulators()
	_ = key

	c.Close()
	created := rec.Count("CreateTexture")
	if got := rec.Count("DeleteTexture"); got != created {
		t.Errorf("DeleteTexture calls = %d, want %d (every created name freed)", got, created)
	}
}
