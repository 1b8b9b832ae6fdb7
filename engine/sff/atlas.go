package sff

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// Atlas is a loaded sprite font atlas. It keeps the source bytes and reads
// index entries and glyph records from them on demand. An Atlas is read-only
// and may be shared by any number of layout calls.
type Atlas struct {
	data    []byte
	header  Header
	records int
}

// Load validates data and returns an atlas referencing it. The caller must not
// modify data afterwards.
func Load(data []byte) (*Atlas, error) {
	if len(data) < len(Signature) || !bytes.Equal(data[:len(Signature)], Signature[:]) {
		return nil, &FormatError{Reason: "missing FFS signature", Size: len(data)}
	}
	if len(data) < HeaderSize {
		return nil, &FormatError{Reason: "truncated header", Size: len(data)}
	}
	a := &Atlas{
		data:    data,
		header:  parseHeader(data),
		records: (len(data) - HeaderSize) / RecordSize,
	}
	if a.header.FontSize <= 0 {
		return nil, &FormatError{Reason: "font size must be positive", Size: len(data)}
	}
	return a, nil
}

// LoadReader reads r to the end and loads the result.
func LoadReader(r io.Reader) (*Atlas, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "sff: read atlas")
	}
	return Load(data)
}

// Header returns a copy of the scalar header fields.
func (a *Atlas) Header() Header {
	return a.header
}

// NominalFontSize is the pixel size the sheet was rendered at.
func (a *Atlas) NominalFontSize() float32 {
	return float32(a.header.FontSize)
}

func (a *Atlas) IsVertical() bool {
	return a.header.IsVertical()
}

// GlyphCount returns the number of complete glyph records in the data.
func (a *Atlas) GlyphCount() int {
	return a.records
}

// SheetName decodes the UTF-16 sheet name up to the first NUL.
func (a *Atlas) SheetName() string {
	raw := a.data[offSheetName : offSheetName+SheetNameLen*2]
	n := 0
	for n < SheetNameLen && le.Uint16(raw[n*2:]) != 0 {
		n++
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	name, err := dec.Bytes(raw[:n*2])
	if err != nil {
		return ""
	}
	return string(name)
}

// index returns the record index for cp or NoGlyph.
func (a *Atlas) index(cp rune) int {
	if cp < 0 || cp >= CodePointCount {
		return NoGlyph
	}
	di := int(le.Uint16(a.data[offIndex+int(cp)*2:]))
	if di == NoGlyph || di >= a.records {
		return NoGlyph
	}
	return di
}

// Glyph looks up the record for cp. Code points without an entry, outside
// the UCS-2 range or pointing past the record table report false.
func (a *Atlas) Glyph(cp rune) (Glyph, bool) {
	di := a.index(cp)
	if di == NoGlyph {
		return Glyph{}, false
	}
	off := HeaderSize + di*RecordSize
	return parseGlyph(a.data[off : off+RecordSize]), true
}

// EachGlyph calls fn for every mapped code point in ascending order until fn
// returns false.
func (a *Atlas) EachGlyph(fn func(cp rune, g Glyph) bool) {
	for cp := rune(0); cp < CodePointCount; cp++ {
		g, ok := a.Glyph(cp)
		if !ok {
			continue
		}
		if !fn(cp, g) {
			return
		}
	}
}
