// Package raster provides the monospace glyph sources used to draw
// character grids into bitmaps.
package raster

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

const (
	// FaceBasic selects the built-in 7x13 bitmap face. Its glyph bitmaps are
	// 6 px wide, which matches the default 6x15 cell.
	FaceBasic = "basic"
	// FaceMono selects Go Mono, scaled to fit the cell.
	FaceMono = "mono"
)

var (
	parsedMono *opentype.Font
	initMu     sync.Mutex
)

// LoadFace resolves a face name for the given cell size.
// Anything other than FaceBasic or FaceMono is treated as a path to a TTF/OTF file.
func LoadFace(name string, cellWidth, cellHeight int) (font.Face, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("invalid cell size %dx%d", cellWidth, cellHeight)
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FaceBasic:
		return basicfont.Face7x13, nil
	case FaceMono:
		f, err := monoFont()
		if err != nil {
			return nil, err
		}
		return fitFace(f, cellWidth, cellHeight)
	}

	fontBytes, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font file: %w", err)
	}
	return fitFace(f, cellWidth, cellHeight)
}

func monoFont() (*opentype.Font, error) {
	initMu.Lock()
	defer initMu.Unlock()
	if parsedMono != nil {
		return parsedMono, nil
	}
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go Mono: %w", err)
	}
	parsedMono = f
	return f, nil
}

// fitFace picks the largest size whose advance fits the cell width and whose
// line height fits the cell height.
func fitFace(f *opentype.Font, cellWidth, cellHeight int) (font.Face, error) {
	probeSize := float64(cellHeight)
	probe, err := newFace(f, probeSize)
	if err != nil {
		return nil, err
	}
	adv, ok := probe.GlyphAdvance('M')
	metrics := probe.Metrics()
	probe.Close()
	if !ok || adv <= 0 {
		return nil, fmt.Errorf("font has no advance for 'M'")
	}

	size := probeSize * float64(cellWidth) / (float64(adv) / 64)
	lineHeight := float64(metrics.Ascent+metrics.Descent) / 64 * size / probeSize
	if lineHeight > float64(cellHeight) {
		size *= float64(cellHeight) / lineHeight
	}

	// Hinting rounds advances and metrics to whole pixels, which can push a
	// face one pixel past the cell. Shrink until it fits.
	for i := 0; ; i++ {
		face, err := newFace(f, size)
		if err != nil {
			return nil, err
		}
		if fits(face, cellWidth, cellHeight) || i >= 20 {
			return face, nil
		}
		face.Close()
		size *= 0.95
	}
}

func fits(face font.Face, cellWidth, cellHeight int) bool {
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return false
	}
	m := face.Metrics()
	return adv.Ceil() <= cellWidth && (m.Ascent+m.Descent).Ceil() <= cellHeight
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face for size %.2f: %w", size, err)
	}
	return face, nil
}
