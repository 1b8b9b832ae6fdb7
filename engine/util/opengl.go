package util

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// CheckForGLError logs and returns the pending GL error, if any. op names the
// operation that was just issued.
func CheckForGLError(op string) error {
	errorCodeOfGL := gl.GetError()

	if errorCodeOfGL != gl.NO_ERROR {
		LogGlError(fmt.Sprintf("%s: GL error 0x%04x", op, errorCodeOfGL))
		return errors.Errorf("%s: gl error 0x%04x", op, errorCodeOfGL)
	}
	return nil
}
