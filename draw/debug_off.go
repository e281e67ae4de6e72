//go:build !vexeldebug

package draw

// debugSDFMisuse is a no-op in release builds: a misused SDF setter
// yields incorrect visuals rather than crashing the UI layer.
func debugSDFMisuse(string) {}
