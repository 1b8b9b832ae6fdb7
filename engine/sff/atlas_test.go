package sff

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
)

func testAtlas(t *testing.T) (*Atlas, []byte) {
	t.Helper()
	b := NewBuilder(16).SetCellSize(8, 16).SetVersion(3)
	if err := b.SetSheetName("sheet_0.png"); err != nil {
		t.Fatal(err)
	}
	glyphs := map[rune]Glyph{
		'A':  {U: 0, V: 0, W: 10, H: 12, Offset: 1, Width: 11},
		'B':  {U: 10, V: 0, W: 9, H: 12, Offset: 0, Width: 9},
		'あ': {U: 300, V: 16, W: 15, H: 15, Sheet: 1, Offset: 2, Width: 16},
	}
	for _, cp := range []rune{'A', 'B', 'あ'} {
		if err := b.Add(cp, glyphs[cp]); err != nil {
			t.Fatal(err)
		}
	}
	data := b.Bytes()
	a, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return a, data
}

func TestLoadHeader(t *testing.T) {
	a, data := testAtlas(t)

	if len(data) != HeaderSize+3*RecordSize {
		t.Errorf("encoded size = %d, want %d", len(data), HeaderSize+3*RecordSize)
	}
	if !bytes.Equal(data[:3], []byte("FFS")) {
		t.Errorf("signature = %q", data[:3])
	}
	h := a.Header()
	if h.Version != 3 || h.FontSize != 16 || h.FontWidth != 8 || h.FontHeight != 16 {
		t.Errorf("header = %+v", h)
	}
	if h.FontMax != 3 || h.SheetMax != 2 {
		t.Errorf("FontMax = %d, SheetMax = %d, want 3 and 2", h.FontMax, h.SheetMax)
	}
	if a.NominalFontSize() != 16 {
		t.Errorf("NominalFontSize = %v", a.NominalFontSize())
	}
	if a.GlyphCount() != 3 {
		t.Errorf("GlyphCount = %d", a.GlyphCount())
	}
	if got := a.SheetName(); got != "sheet_0.png" {
		t.Errorf("SheetName = %q", got)
	}
	if a.IsVertical() {
		t.Error("IsVertical set")
	}
}

func TestGlyphLookup(t *testing.T) {
	a, _ := testAtlas(t)

	g, ok := a.Glyph('A')
	if !ok {
		t.Fatal("'A' missing")
	}
	if g != (Glyph{U: 0, V: 0, W: 10, H: 12, Offset: 1, Width: 11}) {
		t.Errorf("'A' = %+v", g)
	}
	g, ok = a.Glyph('あ')
	if !ok || g.U != 300 || g.V != 16 || g.Sheet != 1 || g.Offset != 2 {
		t.Errorf("'あ' = %+v, %v", g, ok)
	}
}

func TestAbsentGlyphsDoNotAlias(t *testing.T) {
	a, _ := testAtlas(t)

	for _, cp := range []rune{0, '@', 'C', 'a', 'ぃ', 0xFFFF, 0x10000, -1, 0x1F600} {
		if g, ok := a.Glyph(cp); ok {
			t.Errorf("Glyph(%U) = %+v, want absent", cp, g)
		}
	}
	count := 0
	a.EachGlyph(func(cp rune, g Glyph) bool {
		count++
		return true
	})
	if count != 3 {
		t.Errorf("EachGlyph visited %d glyphs, want 3", count)
	}
}

func TestIndexPastRecordTableIsAbsent(t *testing.T) {
	_, data := testAtlas(t)
	// drop the last record, 'あ' now points past the end
	short := data[:len(data)-RecordSize]
	a, err := Load(short)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := a.Glyph('あ'); ok {
		t.Error("glyph with out of range record index resolved")
	}
	if _, ok := a.Glyph('A'); !ok {
		t.Error("'A' lost")
	}
}

func TestLoadFormatErrors(t *testing.T) {
	_, good := testAtlas(t)

	bad := append([]byte(nil), good...)
	bad[1] = 'X'

	zeroSize := append([]byte(nil), good...)
	le.PutUint32(zeroSize[offFontSize:], 0)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short for signature", []byte("FF")},
		{"wrong signature", bad},
		{"truncated header", good[:HeaderSize-1]},
		{"zero font size", zeroSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Load(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if a != nil {
				t.Error("atlas returned together with error")
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("error %v is not a *FormatError", err)
			}
		})
	}
}

func TestLoadReader(t *testing.T) {
	_, data := testAtlas(t)
	a, err := LoadReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := a.Glyph('B'); !ok {
		t.Error("'B' missing")
	}
}

func TestBuilderRejects(t *testing.T) {
	b := NewBuilder(12)
	if err := b.Add(0x10000, Glyph{}); err == nil {
		t.Error("accepted code point outside the table")
	}
	long := string(bytes.Repeat([]byte{'x'}, SheetNameLen))
	if err := b.SetSheetName(long); err == nil {
		t.Error("accepted sheet name without room for NUL")
	}
}

func TestBuilderReplacesGlyph(t *testing.T) {
	b := NewBuilder(12)
	_ = b.Add('x', Glyph{W: 1})
	_ = b.Add('x', Glyph{W: 2})
	a, err := Load(b.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if g, _ := a.Glyph('x'); g.W != 2 || a.GlyphCount() != 1 {
		t.Errorf("got %+v with %d records", g, a.GlyphCount())
	}
}

func TestVerticalFlag(t *testing.T) {
	a, err := Load(NewBuilder(8).SetVertical(true).Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsVertical() {
		t.Error("vertical flag lost")
	}
}

func BenchmarkGlyph(b *testing.B) {
	builder := NewBuilder(16)
	for cp := rune(0x20); cp < 0x7F; cp++ {
		_ = builder.Add(cp, Glyph{W: 8, H: 16})
	}
	a, err := Load(builder.Bytes())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = a.Glyph(rune(0x20 + i%0x5F))
	}
}

// TestLoadHandEncoded reads an atlas written byte by byte at the documented
// file offsets, independent of Builder.
func TestLoadHandEncoded(t *testing.T) {
	const (
		indexAt   = 160
		recordsAt = 131232
	)
	data := make([]byte, recordsAt+2*10)
	copy(data, "FFS")
	binary.LittleEndian.PutUint32(data[4:], 7)
	binary.LittleEndian.PutUint32(data[8:], 16)
	binary.LittleEndian.PutUint16(data[28:], 'x')
	binary.LittleEndian.PutUint32(data[156:], 1)
	for cp := 0; cp < 65536; cp++ {
		binary.LittleEndian.PutUint16(data[indexAt+cp*2:], 0xFFFF)
	}
	binary.LittleEndian.PutUint16(data[indexAt+'A'*2:], 1)
	binary.LittleEndian.PutUint16(data[indexAt+'B'*2:], 0)

	// record 0: 'B'
	binary.LittleEndian.PutUint16(data[recordsAt:], 10)
	binary.LittleEndian.PutUint16(data[recordsAt+2:], 0)
	data[recordsAt+4] = 9
	data[recordsAt+5] = 12
	data[recordsAt+8] = 9
	// record 1: 'A'
	binary.LittleEndian.PutUint16(data[recordsAt+10:], 300)
	binary.LittleEndian.PutUint16(data[recordsAt+12:], 16)
	data[recordsAt+14] = 10
	data[recordsAt+15] = 12
	data[recordsAt+16] = 1
	data[recordsAt+17] = 2
	data[recordsAt+18] = 11

	a, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.NominalFontSize() != 16 {
		t.Errorf("nominal size = %v, want 16", a.NominalFontSize())
	}
	if a.Header().Version != 7 {
		t.Errorf("version = %d, want 7", a.Header().Version)
	}
	if !a.IsVertical() {
		t.Error("vertical flag at offset 156 not read")
	}
	if a.SheetName() != "x" {
		t.Errorf("sheet name = %q, want %q", a.SheetName(), "x")
	}
	if a.GlyphCount() != 2 {
		t.Errorf("glyph count = %d, want 2", a.GlyphCount())
	}

	want := map[rune]Glyph{
		'A': {U: 300, V: 16, W: 10, H: 12, Sheet: 1, Offset: 2, Width: 11},
		'B': {U: 10, V: 0, W: 9, H: 12, Width: 9},
	}
	for cp, w := range want {
		g, ok := a.Glyph(cp)
		if !ok {
			t.Errorf("glyph %q missing", cp)
			continue
		}
		if g != w {
			t.Errorf("glyph %q = %+v, want %+v", cp, g, w)
		}
	}
	if _, ok := a.Glyph('C'); ok {
		t.Error("glyph 'C' found behind 0xFFFF index entry")
	}
}
