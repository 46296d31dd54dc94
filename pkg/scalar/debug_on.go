//go:build mldebug

package scalar

import "fmt"

// Debug reports whether saturation panics instead of clamping.
const Debug = true

func saturated(op string) {
	panic(fmt.Sprintf("scalar: %s saturated", op))
}
