// Package sff reads sprite font atlases: a fixed header with one glyph index
// entry per UCS-2 code point followed by packed glyph records that locate each
// glyph on a pre-rendered font sheet.
package sff

import (
	"encoding/binary"
)

const (
	// CodePointCount is the number of entries in the index table.
	CodePointCount = 1 << 16
	// NoGlyph marks code points without a glyph in the index table.
	NoGlyph = 0xFFFF

	SheetNameLen = 64

	offGuid       = 0
	offVersion    = 4
	offFontSize   = 8
	offFontWidth  = 12
	offFontHeight = 16
	offSheetMax   = 20
	offFontMax    = 24
	offSheetName  = 28
	offFlags      = offSheetName + SheetNameLen*2
	offIndex      = offFlags + 4

	// HeaderSize is the size of the fixed header including the index table.
	HeaderSize = offIndex + CodePointCount*2
	// RecordSize is the stride of the glyph records. Records are 9 bytes of
	// payload padded to 16 bit alignment.
	RecordSize = 10

	flagVertical = 1 << 0
)

// Signature is stored in the first three bytes of every atlas.
var Signature = [3]byte{'F', 'F', 'S'}

var le = binary.LittleEndian

// Header holds the scalar fields of the atlas header. The index table is not
// copied, see Atlas.Glyph.
type Header struct {
	Guid       uint32
	Version    uint32
	FontSize   int32
	FontWidth  int32
	FontHeight int32
	SheetMax   int32
	FontMax    int32
	SheetName  [SheetNameLen]uint16
	Flags      uint32
}

// IsVertical reports the vertical text flag. Layout ignores it.
func (h *Header) IsVertical() bool {
	return h.Flags&flagVertical != 0
}

func parseHeader(data []byte) Header {
	h := Header{
		Guid:       le.Uint32(data[offGuid:]),
		Version:    le.Uint32(data[offVersion:]),
		FontSize:   int32(le.Uint32(data[offFontSize:])),
		FontWidth:  int32(le.Uint32(data[offFontWidth:])),
		FontHeight: int32(le.Uint32(data[offFontHeight:])),
		SheetMax:   int32(le.Uint32(data[offSheetMax:])),
		FontMax:    int32(le.Uint32(data[offFontMax:])),
		Flags:      le.Uint32(data[offFlags:]),
	}
	for i := range h.SheetName {
		h.SheetName[i] = le.Uint16(data[offSheetName+i*2:])
	}
	return h
}

func putHeader(data []byte, h *Header) {
	le.PutUint32(data[offGuid:], h.Guid)
	le.PutUint32(data[offVersion:], h.Version)
	le.PutUint32(data[offFontSize:], uint32(h.FontSize))
	le.PutUint32(data[offFontWidth:], uint32(h.FontWidth))
	le.PutUint32(data[offFontHeight:], uint32(h.FontHeight))
	le.PutUint32(data[offSheetMax:], uint32(h.SheetMax))
	le.PutUint32(data[offFontMax:], uint32(h.FontMax))
	for i, c := range h.SheetName {
		le.PutUint16(data[offSheetName+i*2:], c)
	}
	le.PutUint32(data[offFlags:], h.Flags)
}

// Glyph is a single glyph record. U, V, W and H locate the glyph on the sheet
// in pixels, Offset is the horizontal pen offset applied before drawing.
type Glyph struct {
	U, V   uint16
	W, H   uint8
	Sheet  uint8
	Offset uint8
	// Width is carried by the format but not used for layout.
	Width uint8
}

func parseGlyph(rec []byte) Glyph {
	return Glyph{
		U:      le.Uint16(rec[0:]),
		V:      le.Uint16(rec[2:]),
		W:      rec[4],
		H:      rec[5],
		Sheet:  rec[6],
		Offset: rec[7],
		Width:  rec[8],
	}
}

func putGlyph(rec []byte, g Glyph) {
	le.PutUint16(rec[0:], g.U)
	le.PutUint16(rec[2:], g.V)
	rec[4] = g.W
	rec[5] = g.H
	rec[6] = g.Sheet
	rec[7] = g.Offset
	rec[8] = g.Width
	rec[9] = 0
}
