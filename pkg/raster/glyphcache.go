package raster

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DefaultMaxGlyphs bounds the number of cached masks. Palettes are tiny, so
// the limit only matters for text blocks fed in from outside.
const DefaultMaxGlyphs = 512

// GlyphCache renders each rune once into a cell-sized alpha mask and hands
// the same mask back on later lookups. Masks must be treated as read-only.
type GlyphCache struct {
	sync.RWMutex
	face       font.Face
	cell       image.Rectangle
	baseline   int
	masks      map[rune]*image.Alpha
	maxEntries int
}

// NewGlyphCache creates a cache for face drawn into cellWidth x cellHeight cells.
// The baseline sits at the face ascent, clamped to the cell height.
func NewGlyphCache(face font.Face, cellWidth, cellHeight int) *GlyphCache {
	baseline := face.Metrics().Ascent.Ceil()
	if baseline > cellHeight {
		baseline = cellHeight
	}
	return &GlyphCache{
		face:       face,
		cell:       image.Rect(0, 0, cellWidth, cellHeight),
		baseline:   baseline,
		masks:      make(map[rune]*image.Alpha),
		maxEntries: DefaultMaxGlyphs,
	}
}

// Mask returns the alpha mask for r. Pixels outside the cell are clipped.
func (c *GlyphCache) Mask(r rune) *image.Alpha {
	c.RLock()
	m, found := c.masks[r]
	c.RUnlock()
	if found {
		return m
	}

	// font.Face implementations are not safe for concurrent use, so render
	// under the write lock.
	c.Lock()
	defer c.Unlock()
	if m, found := c.masks[r]; found {
		return m
	}
	m = c.render(r)
	if len(c.masks) >= c.maxEntries {
		c.masks = make(map[rune]*image.Alpha)
	}
	c.masks[r] = m
	return m
}

// Len reports how many masks are cached.
func (c *GlyphCache) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.masks)
}

// Cell returns the cell rectangle anchored at the origin.
func (c *GlyphCache) Cell() image.Rectangle {
	return c.cell
}

func (c *GlyphCache) render(r rune) *image.Alpha {
	img := image.NewAlpha(c.cell)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: c.face,
		Dot:  fixed.P(0, c.baseline),
	}
	d.DrawString(string(r))
	return img
}
