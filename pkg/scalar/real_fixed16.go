//go:build mlfixed && !mlfixed12

package scalar

// Real is the representation selected for this build.
type Real = Fixed16

// Backend names the active representation.
const Backend = "fixed 16.16"
