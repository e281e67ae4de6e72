//go:build vexeldebug

package draw

import "fmt"

// debugSDFMisuse panics when an SDF-only setter is invoked while the
// standard shader mode is active.
func debugSDFMisuse(setter string) {
	panic(fmt.Sprintf("draw: %s called outside SDF mode", setter))
}
