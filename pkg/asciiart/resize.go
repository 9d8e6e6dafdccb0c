package asciiart

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Anchor points of the aspect-correction curve.
const (
	lowWidth   = 100
	highWidth  = 750
	lowFactor  = 1.0666666666666667
	highFactor = 0.95
)

// ResizeFactor returns the vertical correction applied on top of the cell
// aspect. It is flat below 100 and above 750 columns and linear in between.
func ResizeFactor(newWidth int) float64 {
	switch {
	case newWidth < lowWidth:
		return lowFactor
	case newWidth > highWidth:
		return highFactor
	}
	// float64 variables rather than constants: the interpolation must round
	// like plain float64 arithmetic so that 750 lands exactly on highFactor.
	x0, y0 := float64(lowWidth), float64(lowFactor)
	x1, y1 := float64(highWidth), float64(highFactor)
	slope := (y0 - y1) / (x0 - x1)
	// The conversion keeps the product from being fused into the add.
	return y0 + float64(slope*(float64(newWidth)-x0))
}

// TargetHeight computes the resized pixel height for a w0 x h0 source drawn
// newWidth characters wide in cells of the given shape.
func TargetHeight(w0, h0, newWidth int, cell Cell) (int, error) {
	if newWidth <= 0 {
		return 0, fmt.Errorf("%w: target width %d", ErrInvalidDimension, newWidth)
	}
	if w0 <= 0 || h0 <= 0 {
		return 0, fmt.Errorf("%w: source image %dx%d", ErrInvalidDimension, w0, h0)
	}
	if err := cell.Validate(); err != nil {
		return 0, err
	}

	ratio := float64(h0) / float64(w0)
	h := math.Floor(float64(newWidth) * ratio * cell.Aspect() * ResizeFactor(newWidth))
	if h < 0 {
		h = 0
	}
	return int(h), nil
}

// Resize scales src to newWidth x TargetHeight. The source is not modified.
// A computed height of zero yields an empty newWidth x 0 image.
func Resize(src image.Image, newWidth int, cell Cell, filter imaging.ResampleFilter) (*image.NRGBA, int, int, error) {
	b := src.Bounds()
	newHeight, err := TargetHeight(b.Dx(), b.Dy(), newWidth, cell)
	if err != nil {
		return nil, 0, 0, err
	}
	if newHeight == 0 {
		return image.NewNRGBA(image.Rect(0, 0, newWidth, 0)), newWidth, 0, nil
	}

	// imaging.Resize treats a zero side as "keep aspect", so both sides are
	// always passed explicitly.
	resized := imaging.Resize(src, newWidth, newHeight, filter)
	return resized, newWidth, newHeight, nil
}
