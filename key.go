package vexel

// TextureKey identifies a texture by the content of its population
// strategy, not by GPU handle. Two textures with the same key are the
// same cache entry; batches and draw state carry keys only, and the
// texture cache remains the single owner of every GPU handle.
type TextureKey string

// NoTexture is the zero key. Batches tagged with it draw untextured
// geometry through the cache's built-in default texture.
const NoTexture TextureKey = ""
