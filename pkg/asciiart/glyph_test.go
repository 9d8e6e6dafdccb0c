package asciiart

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestGlyphIndexInRange(t *testing.T) {
	for l := 1; l <= 300; l++ {
		for v := 0; v <= 255; v++ {
			idx := GlyphIndex(uint8(v), l)
			if idx < 0 || idx > l-1 {
				t.Fatalf("GlyphIndex(%d, %d) = %d out of range", v, l, idx)
			}
		}
	}
}

func TestGlyphIndexPartition(t *testing.T) {
	for l := 1; l <= 64; l++ {
		prev := GlyphIndex(0, l)
		if prev != 0 {
			t.Fatalf("L=%d: GlyphIndex(0) = %d, want 0", l, prev)
		}
		for v := 1; v <= 255; v++ {
			cur := GlyphIndex(uint8(v), l)
			if cur != prev && cur != prev+1 {
				t.Fatalf("L=%d: bucket jumps from %d to %d at v=%d", l, prev, cur, v)
			}
			prev = cur
		}
	}
}

func TestGlyphIndexDefaultPalette(t *testing.T) {
	// 255/11 + 1 = 24
	cases := map[uint8]int{0: 0, 23: 0, 24: 1, 47: 1, 48: 2, 239: 9, 240: 10, 255: 10}
	for v, want := range cases {
		if got := GlyphIndex(v, 11); got != want {
			t.Errorf("GlyphIndex(%d, 11) = %d, want %d", v, got, want)
		}
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if p.String() != "@#%S?*+;:,." || len(p) != 11 {
		t.Fatalf("DefaultPalette = %q", p.String())
	}
	p[0] = 'X'
	if DefaultPalette()[0] != '@' {
		t.Error("DefaultPalette shares storage between calls")
	}
}

func TestParsePalette(t *testing.T) {
	if _, err := ParsePalette(""); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("empty: err = %v", err)
	}
	if _, err := ParsePalette("ab\ncd"); err == nil {
		t.Error("line break accepted")
	}
	p, err := ParsePalette("█▓▒░ ")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 5 {
		t.Errorf("len = %d, want 5 runes", len(p))
	}
}

func grayImage(w, h int, fill func(x, y int) uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.SetGray(x, y, color.Gray{Y: fill(x, y)})
		}
	}
	return g
}

func TestMapGlyphsWhite2x2(t *testing.T) {
	tb, err := MapGlyphs(grayImage(2, 2, func(int, int) uint8 { return 255 }), DefaultPalette())
	if err != nil {
		t.Fatal(err)
	}
	if got := tb.String(); got != "..\n..\n" {
		t.Errorf("block = %q, want %q", got, "..\n..\n")
	}
}

func TestMapGlyphsShape(t *testing.T) {
	cases := []struct{ w, h int }{{1, 1}, {7, 3}, {3, 7}, {64, 1}, {1, 64}}
	for _, tc := range cases {
		g := grayImage(tc.w, tc.h, func(x, y int) uint8 { return uint8((x*31 + y*17) % 256) })
		tb, err := MapGlyphs(g, DefaultPalette())
		if err != nil {
			t.Fatal(err)
		}
		if len(tb.Rows) != tc.h {
			t.Errorf("%dx%d: rows = %d", tc.w, tc.h, len(tb.Rows))
		}
		for i, row := range tb.Rows {
			if n := len([]rune(row)); n != tc.w {
				t.Errorf("%dx%d: row %d has %d glyphs", tc.w, tc.h, i, n)
			}
		}
	}
}

func TestMapGlyphsRowMajor(t *testing.T) {
	// Left column black, right column white, bottom row mid gray.
	g := grayImage(2, 2, func(x, y int) uint8 {
		if y == 1 {
			return 120
		}
		if x == 0 {
			return 0
		}
		return 255
	})
	tb, err := MapGlyphs(g, DefaultPalette())
	if err != nil {
		t.Fatal(err)
	}
	// 120 / 24 = 5 -> '*'
	if got := tb.String(); got != "@.\n**\n" {
		t.Errorf("block = %q", got)
	}
}

func TestMapGlyphsSubImage(t *testing.T) {
	g := grayImage(4, 4, func(x, y int) uint8 {
		if x >= 2 && y >= 2 {
			return 255
		}
		return 0
	})
	sub := g.SubImage(image.Rect(2, 2, 4, 4)).(*image.Gray)
	tb, err := MapGlyphs(sub, DefaultPalette())
	if err != nil {
		t.Fatal(err)
	}
	if got := tb.String(); got != "..\n..\n" {
		t.Errorf("block = %q", got)
	}
}

func TestMapGlyphsEmptyPalette(t *testing.T) {
	_, err := MapGlyphs(grayImage(1, 1, func(int, int) uint8 { return 0 }), nil)
	if !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("err = %v, want ErrEmptyPalette", err)
	}
}

func TestMapGlyphsCustomPalette(t *testing.T) {
	g := grayImage(4, 1, func(x, _ int) uint8 { return uint8(x * 85) })
	tb, err := MapGlyphs(g, Palette("#-"))
	if err != nil {
		t.Fatal(err)
	}
	// divisor 255/2 + 1 = 128: 0,85 -> '#', 170,255 -> '-'
	if got := strings.TrimSuffix(tb.String(), "\n"); got != "##--" {
		t.Errorf("row = %q", got)
	}
}
