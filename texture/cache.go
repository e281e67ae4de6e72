package texture

import (
	"github.com/vexelgl/vexel"
	"github.com/vexelgl/vexel/internal/gldriver"
)

// State is a cache entry's lifecycle state.
type State uint8

const (
	// Loading means the entry is registered but not yet populated.
	Loading State = iota
	// Ready means the entry has a live GPU texture and size metadata.
	Ready
	// Failed means population failed. Failed is permanent; the entry is
	// never retried for the life of the process.
	Failed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Reserved keys, populated when the cache is created.
const (
	// DefaultKey is the 2x2 fully-opaque white texture that untextured
	// drawing samples. Lookup resolves vexel.NoTexture to it.
	DefaultKey vexel.TextureKey = "builtin:default"
	// ErrorKey is a fully transparent texture available as a stand-in
	// for content that could not be produced.
	ErrorKey vexel.TextureKey = "builtin:error"
)

type entry struct {
	state State
	pop   Populator
	id    gldriver.TextureID
	size  Size
}

// Cache maps populator content keys to GPU textures. Entries are
// created on first Register, populated by the next RunPopulators call,
// and destroyed only by Close. Not safe for concurrent use.
type Cache struct {
	drv     gldriver.Driver
	entries map[vexel.TextureKey]*entry
	pending []vexel.TextureKey

	// spare is a texture name reused across consecutive population
	// failures so failed entries do not leak GPU names.
	spare gldriver.TextureID
}

// NewCache creates a cache bound to the driver and populates the
// reserved default and error textures immediately.
func NewCache(d gldriver.Driver) *Cache {
	c := &Cache{
		drv:     d,
		entries: make(map[vexel.TextureKey]*entry),
	}
	c.install(DefaultKey, SolidColor{Color: vexel.White})
	c.install(ErrorKey, SolidColor{Color: vexel.Transparent})
	return c
}

// install populates a reserved entry eagerly. The built-in populators
// cannot fail.
func (c *Cache) install(key vexel.TextureKey, pop Populator) {
	id := c.drv.CreateTexture()
	c.drv.ActiveTexture(0)
	c.drv.BindTexture(id)
	size, _ := pop.populate(c.drv)
	c.entries[key] = &entry{state: Ready, pop: pop, id: id, size: size}
}

// Register notes a texture for population and returns its key. A key
// already seen, in any state, is left untouched.
func (c *Cache) Register(pop Populator) vexel.TextureKey {
	key := pop.Key()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = &entry{state: Loading, pop: pop}
		c.pending = append(c.pending, key)
	}
	return key
}

// RunPopulators populates every Loading entry, transitioning each to
// Ready or Failed. Called once per frame, before rendering. Failures
// are logged and permanent; one spare texture name is reused across
// consecutive failures instead of being leaked.
func (c *Cache) RunPopulators() {
	if len(c.pending) == 0 {
		return
	}
	c.drv.ActiveTexture(0)
	for _, key := range c.pending {
		e := c.entries[key]
		if e == nil || e.state != Loading {
			continue
		}
		if c.spare == 0 {
			c.spare = c.drv.CreateTexture()
		}
		c.drv.BindTexture(c.spare)
		size, err := e.pop.populate(c.drv)
		if err != nil {
			e.state = Failed
			vexel.Logger().Warn("texture population failed",
				"key", string(key), "error", err)
			continue
		}
		e.id = c.spare
		e.size = size
		e.state = Ready
		c.spare = 0
	}
	c.pending = nil
}

// Lookup returns the GPU texture and size for a Ready entry.
// vexel.NoTexture resolves to the reserved default texture. Loading,
// Failed and unknown keys report ok false.
func (c *Cache) Lookup(key vexel.TextureKey) (id gldriver.TextureID, size Size, ok bool) {
	if key == vexel.NoTexture {
		key = DefaultKey
	}
	e := c.entries[key]
	if e == nil || e.state != Ready {
		return 0, Size{}, false
	}
	return e.id, e.size, true
}

// State reports the lifecycle state of a key. Unknown keys report
// Loading, since a Register would create them in that state.
func (c *Cache) State(key vexel.TextureKey) State {
	if key == vexel.NoTexture {
		key = DefaultKey
	}
	if e := c.entries[key]; e != nil {
		return e.state
	}
	return Loading
}

// UvRect returns the crop rectangle for a texture at the best precision
// its size permits: the solid sentinel for uniform textures, whole-texel
// 16-bit bounds when the crop lands on texel edges within 16-bit range,
// and normalized float bounds otherwise. An empty crop selects the whole
// populated image. Callers that need fractional coordinates the integer
// rect cannot express use FloatUvRect instead.
func (c *Cache) UvRect(key vexel.TextureKey, crop vexel.Rect) UvRect {
	if key == vexel.NoTexture {
		key = DefaultKey
	}
	e := c.entries[key]
	if e == nil || e.state != Ready {
		return UvSolid{}
	}
	if _, solid := e.pop.(SolidColor); solid {
		return UvSolid{}
	}
	if crop.Empty() {
		crop = vexel.NewRect(0, 0, float32(e.size.ImageWidth), float32(e.size.ImageHeight))
	}
	l, b := crop.X, crop.Y
	r, t := crop.MaxX(), crop.MaxY()
	if wholeTexel(l) && wholeTexel(b) && wholeTexel(r) && wholeTexel(t) {
		return UvUint16{
			Left:   uint16(l),
			Bottom: uint16(b),
			Right:  uint16(r),
			Top:    uint16(t),
		}
	}
	return c.normalized(e, crop)
}

// FloatUvRect returns the crop at float precision unconditionally, for
// callers that need fractional coordinates such as a circle center.
func (c *Cache) FloatUvRect(key vexel.TextureKey, crop vexel.Rect) UvFloat32 {
	if key == vexel.NoTexture {
		key = DefaultKey
	}
	e := c.entries[key]
	if e == nil || e.state != Ready {
		return UvFloat32{Right: 1, Top: 1}
	}
	if crop.Empty() {
		crop = vexel.NewRect(0, 0, float32(e.size.ImageWidth), float32(e.size.ImageHeight))
	}
	return c.normalized(e, crop)
}

func (c *Cache) normalized(e *entry, crop vexel.Rect) UvFloat32 {
	tw := float32(e.size.TextureWidth)
	th := float32(e.size.TextureHeight)
	if tw == 0 || th == 0 {
		return UvFloat32{Right: 1, Top: 1}
	}
	return UvFloat32{
		Left:   crop.X / tw,
		Bottom: crop.Y / th,
		Right:  crop.MaxX() / tw,
		Top:    crop.MaxY() / th,
	}
}

// wholeTexel reports whether v lands exactly on a texel edge within
// 16-bit range.
func wholeTexel(v float32) bool {
	return v >= 0 && v <= 65535 && v == float32(uint16(v))
}

// Close deletes every GPU texture the cache owns, including the spare
// name held across failures. The cache is unusable afterwards.
func (c *Cache) Close() {
	for _, e := range c.entries {
		if e.state == Ready && e.id != 0 {
			c.drv.DeleteTexture(e.id)
		}
	}
	if c.spare != 0 {
		c.drv.DeleteTexture(c.spare)
		c.spare = 0
	}
	c.entries = nil
	c.pending = nil
}
