package asciiart

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
)

// DefaultPaletteString runs from the densest glyph (darkest samples) to the
// sparsest (lightest samples).
const DefaultPaletteString = "@#%S?*+;:,."

const (
	DefaultCellWidth  = 6
	DefaultCellHeight = 15
	DefaultColumns    = 100
	DefaultFilter     = "catmullrom"
)

// Cell is the pixel footprint of one rendered character.
type Cell struct {
	Width  int
	Height int
}

var DefaultCell = Cell{Width: DefaultCellWidth, Height: DefaultCellHeight}

// Validate reports ErrInvalidDimension for non-positive sides.
func (c Cell) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: cell %dx%d", ErrInvalidDimension, c.Width, c.Height)
	}
	return nil
}

// Aspect is width over height.
func (c Cell) Aspect() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Logger receives stage diagnostics. logger.Std satisfies it.
type Logger interface {
	Debugf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// Options configures a Pipeline. Zero fields fall back to the defaults.
type Options struct {
	Palette Palette
	Cell    Cell
	Columns int
	Filter  imaging.ResampleFilter
	Face    font.Face
	Logger  Logger
}

// Option mutates Options.
type Option func(*Options)

func WithPalette(p Palette) Option {
	return func(o *Options) {
		o.Palette = p.Clone()
	}
}

func WithCell(c Cell) Option {
	return func(o *Options) {
		o.Cell = c
	}
}

// WithColumns sets the target character-column count, which is also the
// resized pixel width.
func WithColumns(n int) Option {
	return func(o *Options) {
		o.Columns = n
	}
}

func WithFilter(f imaging.ResampleFilter) Option {
	return func(o *Options) {
		o.Filter = f
	}
}

// WithFace sets the glyph source for the rasterizer. See raster.LoadFace.
func WithFace(f font.Face) Option {
	return func(o *Options) {
		o.Face = f
	}
}

func WithLogger(l Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

var filters = map[string]imaging.ResampleFilter{
	"nearest":           imaging.NearestNeighbor,
	"box":               imaging.Box,
	"linear":            imaging.Linear,
	"bilinear":          imaging.Linear,
	"catmullrom":        imaging.CatmullRom,
	"bicubic":           imaging.CatmullRom,
	"mitchellnetravali": imaging.MitchellNetravali,
	"lanczos":           imaging.Lanczos,
}

// ParseFilter maps a filter name (case-insensitive) to an imaging filter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	f, ok := filters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q", name)
	}
	return f, nil
}
