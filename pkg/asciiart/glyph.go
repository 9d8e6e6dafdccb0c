package asciiart

import (
	"fmt"
	"image"
	"strings"
)

// Palette is an ordered glyph set: index 0 stands for the darkest samples,
// the last index for the lightest.
type Palette []rune

// DefaultPalette returns a fresh copy of the 11-glyph default palette.
func DefaultPalette() Palette {
	return Palette(DefaultPaletteString)
}

// ParsePalette turns a string into a palette, one glyph per rune.
// Line breaks are rejected since they would split rows of the text block.
func ParsePalette(s string) (Palette, error) {
	if s == "" {
		return nil, ErrEmptyPalette
	}
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("palette %q contains a line break", s)
	}
	return Palette(s), nil
}

func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	return append(Palette(nil), p...)
}

func (p Palette) String() string {
	return string(p)
}

// GlyphIndex buckets a luminance sample for a palette of the given length:
// v / (255/length + 1), clamped to [0, length-1]. length must be positive.
func GlyphIndex(v uint8, length int) int {
	idx := int(v) / (255/length + 1)
	if idx < 0 {
		return 0
	}
	if idx > length-1 {
		return length - 1
	}
	return idx
}

// Glyph returns the palette rune for sample v.
func (p Palette) Glyph(v uint8) rune {
	return p[GlyphIndex(v, len(p))]
}

// MapGlyphs quantizes every sample of gray into p, scanning row by row.
// The block has one row per image row and one rune per image column.
func MapGlyphs(gray *image.Gray, p Palette) (TextBlock, error) {
	if len(p) == 0 {
		return TextBlock{}, ErrEmptyPalette
	}

	b := gray.Bounds()
	rows := make([]string, 0, b.Dy())
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y++ {
		sb.Reset()
		sb.Grow(b.Dx())
		i := gray.PixOffset(b.Min.X, y)
		for _, v := range gray.Pix[i : i+b.Dx()] {
			sb.WriteRune(p.Glyph(v))
		}
		rows = append(rows, sb.String())
	}
	return TextBlock{Rows: rows}, nil
}
