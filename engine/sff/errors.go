package sff

import "fmt"

// FormatError is returned by Load when the data is not a usable atlas. No
// partially loaded atlas is ever returned together with it.
type FormatError struct {
	Reason string
	Size   int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("sff: invalid atlas (%d bytes): %s", e.Size, e.Reason)
}
