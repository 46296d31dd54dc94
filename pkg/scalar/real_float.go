//go:build !mlfixed && !mlfixed12

package scalar

// Real is the representation selected for this build.
type Real = Float

// Backend names the active representation.
const Backend = "float32"
