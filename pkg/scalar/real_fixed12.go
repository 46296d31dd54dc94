//go:build mlfixed12

package scalar

// Real is the representation selected for this build.
type Real = Fixed12

// Backend names the active representation.
const Backend = "fixed 20.12"
