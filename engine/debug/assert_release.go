//go:build !debug

// Package debug provides assertions that are active when building with the
// debug tag and compile to no-ops otherwise.
//
// The pixel buffers use it to validate typed element access during
// development without paying for the checks in release builds.
package debug

// Assert is a no-op without the debug tag. Keep its arguments free of side
// effects.
func Assert(cond bool, message string) {}
