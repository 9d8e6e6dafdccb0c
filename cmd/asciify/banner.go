package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	_ "image/png"
	"io"

	"github.com/fatih/color"
	"github.com/qeesung/image2ascii/convert"

	"asciify/internal/appinfo"
)

//go:embed logo.png
var logoData []byte

const (
	logoWidth  = 35
	logoHeight = 17
)

func printBanner(w io.Writer) {
	fmt.Fprintln(w)
	printLogo(w, logoData)

	color.New(color.FgHiCyan, color.Bold).Fprint(w, "ASCII")
	color.New(color.FgHiMagenta, color.Bold).Fprint(w, "FY")
	color.New(color.FgHiBlack).Fprintf(w, " v%s\n", appinfo.Version)

	color.New(color.FgHiBlack).Fprintln(w, "pixels -> glyphs -> pixels")

	fmt.Fprintln(w)
}

// printLogo draws the embedded logo; undecodable data prints nothing and the
// text lines of the banner stand alone.
func printLogo(w io.Writer, data []byte) bool {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return false
	}

	opts := convert.DefaultOptions
	opts.FixedWidth = logoWidth
	opts.FixedHeight = logoHeight
	opts.FitScreen = false
	opts.Colored = !color.NoColor

	converter := convert.NewImageConverter()
	fmt.Fprint(w, converter.Image2ASCIIString(img, &opts))
	return true
}
