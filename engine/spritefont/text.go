package spritefont

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/memmaker/spritefont/engine/util"
)

// DecodeText converts encoded text to code points. A nil enc means UTF-8, in
// which case invalid sequences are an error instead of being replaced.
func DecodeText(data []byte, enc encoding.Encoding) ([]rune, error) {
	var (
		decoded []byte
		err     error
	)
	if enc == nil {
		decoded, _, err = transform.Bytes(encoding.UTF8Validator, data)
	} else {
		decoded, err = enc.NewDecoder().Bytes(data)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode text")
	}
	return []rune(string(decoded)), nil
}

// AddBytes decodes data with enc and adds it like AddText. Text that cannot
// be decoded is logged and dropped.
func (r *Renderer) AddBytes(x, y float32, data []byte, enc encoding.Encoding) mgl32.Vec2 {
	text, err := DecodeText(data, enc)
	if err != nil {
		util.LogTextError(fmt.Sprintf("dropping %d bytes of text: %v", len(data), err))
		return mgl32.Vec2{x, y}
	}
	return r.AddText(x, y, text)
}
