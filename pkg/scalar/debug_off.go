//go:build !mldebug

package scalar

// Debug reports whether saturation panics instead of clamping.
const Debug = false

func saturated(op string) {}
