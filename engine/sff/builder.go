package sff

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// Builder assembles an atlas in memory. It writes the same layout Load reads
// and is meant for test fixtures and small hand made atlases; it does not
// render anything.
type Builder struct {
	header Header
	cps    []rune
	glyphs []Glyph
	index  map[rune]int
}

// NewBuilder returns a builder for a font rendered at fontSize pixels.
func NewBuilder(fontSize int) *Builder {
	b := &Builder{index: map[rune]int{}}
	b.header.Guid = uint32(Signature[0]) | uint32(Signature[1])<<8 | uint32(Signature[2])<<16
	b.header.Version = 1
	b.header.FontSize = int32(fontSize)
	b.header.FontWidth = int32(fontSize)
	b.header.FontHeight = int32(fontSize)
	return b
}

func (b *Builder) SetVersion(v uint32) *Builder {
	b.header.Version = v
	return b
}

func (b *Builder) SetCellSize(w, h int) *Builder {
	b.header.FontWidth = int32(w)
	b.header.FontHeight = int32(h)
	return b
}

func (b *Builder) SetVertical(v bool) *Builder {
	if v {
		b.header.Flags |= flagVertical
	} else {
		b.header.Flags &^= flagVertical
	}
	return b
}

// SetSheetName stores name as UTF-16. Names longer than 63 code units are
// rejected so the stored name stays NUL terminated.
func (b *Builder) SetSheetName(name string) error {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	raw, err := enc.Bytes([]byte(name))
	if err != nil {
		return errors.Wrap(err, "sff: encode sheet name")
	}
	if len(raw)/2 >= SheetNameLen {
		return errors.Errorf("sff: sheet name %q too long", name)
	}
	b.header.SheetName = [SheetNameLen]uint16{}
	for i := 0; i < len(raw)/2; i++ {
		b.header.SheetName[i] = le.Uint16(raw[i*2:])
	}
	return nil
}

// Add maps cp to g, replacing an earlier glyph for the same code point.
func (b *Builder) Add(cp rune, g Glyph) error {
	if cp < 0 || cp >= CodePointCount {
		return errors.Errorf("sff: code point %U outside the index table", cp)
	}
	if i, ok := b.index[cp]; ok {
		b.glyphs[i] = g
		return nil
	}
	if len(b.glyphs) >= NoGlyph {
		return errors.New("sff: glyph table full")
	}
	b.index[cp] = len(b.glyphs)
	b.cps = append(b.cps, cp)
	b.glyphs = append(b.glyphs, g)
	if s := int32(g.Sheet) + 1; s > b.header.SheetMax {
		b.header.SheetMax = s
	}
	return nil
}

// Bytes encodes the atlas.
func (b *Builder) Bytes() []byte {
	h := b.header
	h.FontMax = int32(len(b.glyphs))
	data := make([]byte, HeaderSize+len(b.glyphs)*RecordSize)
	putHeader(data, &h)
	for cp := 0; cp < CodePointCount; cp++ {
		le.PutUint16(data[offIndex+cp*2:], NoGlyph)
	}
	for i, g := range b.glyphs {
		le.PutUint16(data[offIndex+int(b.cps[i])*2:], uint16(i))
		putGlyph(data[HeaderSize+i*RecordSize:], g)
	}
	return data
}
