//go:build debug

package debug

// Assert panics with message when cond does not hold.
func Assert(cond bool, message string) {
	if cond {
		return
	}
	panic("assertion failed: " + message)
}
