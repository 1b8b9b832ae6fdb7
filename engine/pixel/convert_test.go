package pixel

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func TestGlyphMaskUsesAlphaOfRGBA(t *testing.T) {
	src := NewBuffer(RGBA8U, 2, 1)
	Set(src, 0, 0, RGBA8UPixel{10, 20, 30, 40})
	Set(src, 1, 0, RGBA8UPixel{50, 60, 70, 80})

	mask, ok := GlyphMask(src)
	if !ok {
		t.Fatal("GlyphMask failed")
	}
	if mask.Format() != R8U || mask.Width() != 2 || mask.Height() != 1 {
		t.Fatalf("mask is %v %dx%d", mask.Format(), mask.Width(), mask.Height())
	}
	if !bytes.Equal(mask.Pix(), []byte{40, 80}) {
		t.Errorf("mask = %v, want alpha channel [40 80]", mask.Pix())
	}
}

func TestGlyphMaskFallsBackToRed(t *testing.T) {
	src := NewBuffer(RGB8U, 2, 1)
	Set(src, 0, 0, RGB8UPixel{11, 22, 33})
	Set(src, 1, 0, RGB8UPixel{44, 55, 66})

	if _, ok := ExtractAlpha(src); ok {
		t.Fatal("ExtractAlpha succeeded on a 3 channel buffer")
	}
	mask, ok := GlyphMask(src)
	if !ok {
		t.Fatal("GlyphMask failed")
	}
	if !bytes.Equal(mask.Pix(), []byte{11, 44}) {
		t.Errorf("mask = %v, want red channel [11 44]", mask.Pix())
	}
}

func TestExtractChannelRanges(t *testing.T) {
	f := NewBuffer(RGBA32F, 3, 1)
	Set(f, 0, 0, RGBA32FPixel{0, 0, 0, -0.5})
	Set(f, 1, 0, RGBA32FPixel{0, 0, 0, 0.5})
	Set(f, 2, 0, RGBA32FPixel{0, 0, 0, 2})
	mask, ok := ExtractAlpha(f)
	if !ok {
		t.Fatal("ExtractAlpha failed on RGBA32F")
	}
	if !bytes.Equal(mask.Pix(), []byte{0, 128, 255}) {
		t.Errorf("float alpha = %v, want [0 128 255]", mask.Pix())
	}

	s := NewBuffer(R8I, 3, 1)
	Set(s, 0, 0, R8IPixel{-5})
	Set(s, 1, 0, R8IPixel{0})
	Set(s, 2, 0, R8IPixel{127})
	red, _ := ExtractRed(s)
	if !bytes.Equal(red.Pix(), []byte{0, 0, 255}) {
		t.Errorf("signed red = %v, want [0 0 255]", red.Pix())
	}

	if _, ok := ExtractRed(&Buffer{}); ok {
		t.Error("ExtractRed succeeded on an Unknown buffer")
	}
}

func TestConvertIsPerPixel(t *testing.T) {
	src := NewBuffer(RG8U, 2, 2)
	for i := range src.Pix() {
		src.Pix()[i] = byte(i)
	}
	swapped := src.Convert(RG8U, func(dst, src []byte) {
		dst[0], dst[1] = src[1], src[0]
	})
	want := []byte{1, 0, 3, 2, 5, 4, 7, 6}
	if !bytes.Equal(swapped.Pix(), want) {
		t.Errorf("Convert = %v, want %v", swapped.Pix(), want)
	}
	if src.Pix()[0] != 0 {
		t.Error("Convert modified the source")
	}
}

func TestFromImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(1, 0, color.Gray{Y: 99})
	if b := FromImage(gray); b.Format() != R8U || b.Pix()[1] != 99 {
		t.Errorf("gray import = %v %v", b.Format(), b.Pix())
	}

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.NRGBA{R: 255, A: 128})
	b := FromImage(rgba)
	if b.Format() != RGBA8U {
		t.Fatalf("rgba import format = %v", b.Format())
	}
	if px := At[RGBA8UPixel](b, 0, 0); px[3] != 128 || px[0] < 254 {
		t.Errorf("rgba import = %v, want non-premultiplied red with alpha 128", px)
	}
}

func TestDecodePNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(2, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 200})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	b, name, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if name != "png" {
		t.Errorf("format name = %q, want png", name)
	}
	mask, _ := GlyphMask(b)
	if got := mask.Pix()[mask.PixOffset(2, 1)]; got != 200 {
		t.Errorf("mask at (2,1) = %d, want 200", got)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestToImageRoundTrip(t *testing.T) {
	b := NewBuffer(R8U, 2, 2)
	b.Pix()[3] = 77
	img, ok := b.ToImage().(*image.Gray)
	if !ok {
		t.Fatal("R8U did not become *image.Gray")
	}
	if img.GrayAt(1, 1).Y != 77 {
		t.Errorf("GrayAt(1,1) = %d, want 77", img.GrayAt(1, 1).Y)
	}
}

// opaqueSheet is a 2x1 sheet without transparency: a white glyph pixel on a
// black background.
func opaqueSheet() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{A: 255})
	return img
}

func TestDecodeOpaqueUsesRedForMask(t *testing.T) {
	tests := []struct {
		name   string
		encode func(*bytes.Buffer) error
	}{
		{"png", func(w *bytes.Buffer) error { return png.Encode(w, opaqueSheet()) }},
		{"bmp", func(w *bytes.Buffer) error { return bmp.Encode(w, opaqueSheet()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf); err != nil {
				t.Fatal(err)
			}
			b, name, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if name != tt.name {
				t.Errorf("format name = %q", name)
			}
			if b.Format() != RGB8U {
				t.Errorf("opaque %s imported as %v, want RGB8U", tt.name, b.Format())
			}
			mask, ok := GlyphMask(b)
			if !ok {
				t.Fatal("GlyphMask failed")
			}
			if got := mask.Pix(); len(got) != 2 || got[0] != 255 || got[1] != 0 {
				t.Errorf("mask = %v, want [255 0]", got)
			}
		})
	}
}

func TestFromImageOpaqueTypes(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.Black, color.RGBA{R: 200, G: 10, B: 20, A: 255}})
	pal.SetColorIndex(1, 0, 1)
	b := FromImage(pal)
	if b.Format() != RGB8U {
		t.Fatalf("opaque paletted import format = %v", b.Format())
	}
	if px := At[RGB8UPixel](b, 1, 0); px != (RGB8UPixel{200, 10, 20}) {
		t.Errorf("paletted pixel = %v", px)
	}

	transparent := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Transparent})
	if b := FromImage(transparent); b.Format() != RGBA8U {
		t.Errorf("transparent paletted import format = %v, want RGBA8U", b.Format())
	}

	gray16 := image.NewGray16(image.Rect(0, 0, 2, 1))
	gray16.SetGray16(1, 0, color.Gray16{Y: 0xABCD})
	if b := FromImage(gray16); b.Format() != R8U || b.Pix()[1] != 0xAB {
		t.Errorf("gray16 import = %v %v", b.Format(), b.Pix())
	}
}
