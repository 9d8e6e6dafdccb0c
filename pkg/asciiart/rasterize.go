package asciiart

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"asciify/pkg/raster"
)

const (
	Background uint8 = 255
	Foreground uint8 = 0
)

// Rasterizer draws text blocks onto white grayscale bitmaps, one glyph per cell.
type Rasterizer struct {
	cell   Cell
	face   font.Face
	glyphs *raster.GlyphCache
}

// NewRasterizer prepares a rasterizer for cell using face. A nil face
// selects the built-in 7x13 bitmap face.
func NewRasterizer(cell Cell, face font.Face) (*Rasterizer, error) {
	if err := cell.Validate(); err != nil {
		return nil, err
	}
	if face == nil {
		face = basicfont.Face7x13
	}
	return &Rasterizer{
		cell:   cell,
		face:   face,
		glyphs: raster.NewGlyphCache(face, cell.Width, cell.Height),
	}, nil
}

// Cell returns the cell size the rasterizer draws with.
func (r *Rasterizer) Cell() Cell {
	return r.cell
}

// CheckPalette fails with ErrMissingGlyph when the face has no glyph for
// some palette rune. Such runes would all be drawn as the same fallback box.
func (r *Rasterizer) CheckPalette(p Palette) error {
	var missing []rune
	for _, g := range p {
		if _, ok := r.face.GlyphAdvance(g); !ok {
			missing = append(missing, g)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %q", ErrMissingGlyph, string(missing))
	}
	return nil
}

// Size returns the bitmap size for a block of cols x rows glyphs.
func (r *Rasterizer) Size(cols, rows int) image.Point {
	return image.Pt(r.cell.Width*cols, r.cell.Height*rows)
}

// Rasterize renders tb starting at the top-left corner. The bitmap is
// exactly cell.Width*columns by cell.Height*rows.
func (r *Rasterizer) Rasterize(tb TextBlock) (*image.Gray, error) {
	if err := tb.Validate(); err != nil {
		return nil, err
	}
	cols, rows := tb.Columns(), len(tb.Rows)
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: empty text block (%d columns, %d rows)", ErrInvalidDimension, cols, rows)
	}

	size := r.Size(cols, rows)
	dst := image.NewGray(image.Rect(0, 0, size.X, size.Y))
	for i := range dst.Pix {
		dst.Pix[i] = Background
	}

	ink := image.NewUniform(color.Gray{Y: Foreground})
	for y, row := range tb.Rows {
		x := 0
		for _, g := range row {
			cell := image.Rect(x*r.cell.Width, y*r.cell.Height, (x+1)*r.cell.Width, (y+1)*r.cell.Height)
			draw.DrawMask(dst, cell, ink, image.Point{}, r.glyphs.Mask(g), image.Point{}, draw.Over)
			x++
		}
	}
	return dst, nil
}
