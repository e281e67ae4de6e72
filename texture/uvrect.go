package texture

// UvRect is the crop rectangle the cache offers for a texture, at the
// best precision its true size permits. It is a closed variant set:
// UvSolid, UvUint16 or UvFloat32.
type UvRect interface {
	uvRect()
}

// UvSolid marks a texture whose content is uniform, so any coordinate
// samples the same value. Callers may push all-zero UVs.
type UvSolid struct{}

func (UvSolid) uvRect() {}

// UvUint16 is a crop with whole-texel bounds in pixel space, the cheap
// representation for integer atlas coordinates.
type UvUint16 struct {
	Left, Bottom, Right, Top uint16
}

func (UvUint16) uvRect() {}

// UvFloat32 is a crop with normalized float bounds, required whenever a
// coordinate is fractional or out of 16-bit range.
type UvFloat32 struct {
	Left, Bottom, Right, Top float32
}

func (UvFloat32) uvRect() {}
