// Package asciiart turns images into ASCII art and renders that art back
// into grayscale bitmaps.
//
// The work is a strict forward pipeline:
//
//	Resize -> Luminance -> MapGlyphs -> Rasterize
//
// Every stage returns a newly allocated value and never mutates its input,
// so the output of one stage is owned by the next. Palette, cell size and
// column count are carried by Options, which lets pipelines with different
// settings coexist in one process.
package asciiart

import (
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
)

// Result is the outcome of one conversion.
type Result struct {
	// Width and Height are the resized pixel dimensions, which are also the
	// character grid dimensions.
	Width  int
	Height int
	Text   TextBlock
	Raster *image.Gray
}

// Pipeline composes the four stages with a fixed configuration.
type Pipeline struct {
	opts       Options
	rasterizer *Rasterizer
}

// New builds a pipeline. Unset options take their defaults:
// DefaultPalette, DefaultCell, DefaultColumns, CatmullRom and the bitmap face.
func New(opts ...Option) (*Pipeline, error) {
	o := Options{
		Palette: DefaultPalette(),
		Cell:    DefaultCell,
		Columns: DefaultColumns,
		Filter:  imaging.CatmullRom,
		Logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	if len(o.Palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if o.Columns <= 0 {
		return nil, fmt.Errorf("%w: columns %d", ErrInvalidDimension, o.Columns)
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}

	r, err := NewRasterizer(o.Cell, o.Face)
	if err != nil {
		return nil, err
	}
	if err := r.CheckPalette(o.Palette); err != nil {
		return nil, err
	}
	return &Pipeline{opts: o, rasterizer: r}, nil
}

// Options returns a copy of the pipeline configuration.
func (p *Pipeline) Options() Options {
	o := p.opts
	o.Palette = o.Palette.Clone()
	return o
}

// Text runs the first three stages and returns the ASCII art without
// rendering it.
func (p *Pipeline) Text(src image.Image) (TextBlock, int, int, error) {
	start := time.Now()
	resized, w, h, err := Resize(src, p.opts.Columns, p.opts.Cell, p.opts.Filter)
	if err != nil {
		return TextBlock{}, 0, 0, err
	}
	p.opts.Logger.Debugf("resize: %dx%d -> %dx%d (factor %.6f) in %v",
		src.Bounds().Dx(), src.Bounds().Dy(), w, h, ResizeFactor(w), time.Since(start))

	start = time.Now()
	gray := Luminance(resized)
	p.opts.Logger.Debugf("luminance: %dx%d in %v", gray.Rect.Dx(), gray.Rect.Dy(), time.Since(start))

	start = time.Now()
	tb, err := MapGlyphs(gray, p.opts.Palette)
	if err != nil {
		return TextBlock{}, 0, 0, err
	}
	p.opts.Logger.Debugf("glyphs: %d rows x %d columns, palette %q in %v",
		len(tb.Rows), tb.Columns(), p.opts.Palette.String(), time.Since(start))

	return tb, w, h, nil
}

// Convert runs the whole pipeline on src.
func (p *Pipeline) Convert(src image.Image) (*Result, error) {
	tb, w, h, err := p.Text(src)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	bmp, err := p.rasterizer.Rasterize(tb)
	if err != nil {
		return nil, err
	}
	p.opts.Logger.Debugf("raster: %dx%d in %v", bmp.Rect.Dx(), bmp.Rect.Dy(), time.Since(start))

	return &Result{Width: w, Height: h, Text: tb, Raster: bmp}, nil
}
