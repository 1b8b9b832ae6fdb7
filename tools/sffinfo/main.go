// Command sffinfo prints the header and glyph table of a sprite font atlas.
//
//	sffinfo [-glyphs] [-image font.png] [-preview A] font.sff
//
// With -image and -preview the coverage mask of one glyph is drawn as ASCII
// art when stdout is a terminal.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/memmaker/spritefont/engine/pixel"
	"github.com/memmaker/spritefont/engine/sff"
)

const shades = " .:-=+*#%@"

type options struct {
	atlasPath string
	imagePath string
	preview   string
	glyphs    bool
	// columns limits the preview width, 0 disables the preview
	columns int
}

func main() {
	var opts options
	flag.BoolVar(&opts.glyphs, "glyphs", false, "list every glyph record")
	flag.StringVar(&opts.imagePath, "image", "", "glyph sheet used for -preview")
	flag.StringVar(&opts.preview, "preview", "", "code point to preview, a character or U+XXXX")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] font.sff\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.atlasPath = flag.Arg(0)

	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		opts.columns = 80
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			opts.columns = w
		}
	}

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, "sffinfo:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options) error {
	data, err := os.ReadFile(opts.atlasPath)
	if err != nil {
		return err
	}
	atlas, err := sff.Load(data)
	if err != nil {
		return err
	}
	printHeader(w, atlas, len(data))

	if opts.glyphs {
		printGlyphs(w, atlas)
	}
	if opts.preview == "" {
		return nil
	}

	cp, err := parseCodePoint(opts.preview)
	if err != nil {
		return err
	}
	g, ok := atlas.Glyph(cp)
	if !ok {
		return errors.Errorf("no glyph for %U", cp)
	}
	if opts.imagePath == "" {
		return errors.New("-preview needs -image")
	}
	if opts.columns == 0 {
		fmt.Fprintln(w, "preview skipped, stdout is not a terminal")
		return nil
	}
	imageData, err := os.ReadFile(opts.imagePath)
	if err != nil {
		return err
	}
	img, _, err := pixel.Decode(bytes.NewReader(imageData))
	if err != nil {
		return err
	}
	mask, ok := pixel.GlyphMask(img)
	if !ok {
		return errors.Errorf("image format %v has no usable channel", img.Format())
	}
	fmt.Fprintf(w, "\n%U %q\n", cp, cp)
	printPreview(w, mask, g, opts.columns)
	return nil
}

func printHeader(w io.Writer, atlas *sff.Atlas, size int) {
	h := atlas.Header()
	fmt.Fprintf(w, "size        %d bytes\n", size)
	fmt.Fprintf(w, "version     %d\n", h.Version)
	fmt.Fprintf(w, "font size   %d\n", h.FontSize)
	fmt.Fprintf(w, "cell        %dx%d\n", h.FontWidth, h.FontHeight)
	fmt.Fprintf(w, "sheets      %d\n", h.SheetMax)
	fmt.Fprintf(w, "glyphs      %d (header says %d)\n", atlas.GlyphCount(), h.FontMax)
	fmt.Fprintf(w, "sheet name  %q\n", atlas.SheetName())
	fmt.Fprintf(w, "vertical    %v\n", atlas.IsVertical())
}

func printGlyphs(w io.Writer, atlas *sff.Atlas) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-8s %-4s %5s %5s %3s %3s %5s %6s %5s\n", "cp", "char", "u", "v", "w", "h", "sheet", "offset", "width")
	atlas.EachGlyph(func(cp rune, g sff.Glyph) bool {
		char := string(cp)
		if cp < 0x20 || !utf8.ValidRune(cp) {
			char = "."
		}
		fmt.Fprintf(w, "%-8s %-4s %5d %5d %3d %3d %5d %6d %5d\n",
			fmt.Sprintf("%U", cp), char, g.U, g.V, g.W, g.H, g.Sheet, g.Offset, g.Width)
		return true
	})
}

// parseCodePoint accepts a single character, U+XXXX or a decimal number.
func parseCodePoint(s string) (rune, error) {
	if r, size := utf8.DecodeRuneInString(s); size == len(s) && r != utf8.RuneError {
		return r, nil
	}
	if hex := strings.TrimPrefix(strings.ToUpper(s), "U+"); hex != strings.ToUpper(s) {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, errors.Wrapf(err, "code point %q", s)
		}
		return rune(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "code point %q", s)
	}
	return rune(v), nil
}

func printPreview(w io.Writer, mask *pixel.Buffer, g sff.Glyph, columns int) {
	var line strings.Builder
	for y := int(g.V); y < int(g.V)+int(g.H) && y < mask.Height(); y++ {
		line.Reset()
		for x := int(g.U); x < int(g.U)+int(g.W) && x < mask.Width() && line.Len() < columns; x++ {
			coverage := pixel.At[pixel.R8UPixel](mask, x, y)[0]
			line.WriteByte(shades[int(coverage)*(len(shades)-1)/255])
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}
