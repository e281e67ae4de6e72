package texture

// SDFInfo carries signed-distance-field metadata for textures produced
// by the offline atlas tool. Spread is the distance range encoded
// around each edge, in texels.
type SDFInfo struct {
	Spread float32
}

// Size describes a populated texture. Image extent is the populated
// region; texture extent is the allocated storage, padded up to powers
// of two when the driver requires it. SDF is nil for plain textures.
type Size struct {
	ImageWidth  int
	ImageHeight int

	TextureWidth  int
	TextureHeight int

	SDF *SDFInfo
}

// Padded reports whether the allocated texture is larger than the
// populated image.
func (s Size) Padded() bool {
	return s.TextureWidth != s.ImageWidth || s.TextureHeight != s.ImageHeight
}

// nextPow2 returns the smallest power of two >= n, minimum 1.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
