package asciiart

import (
	"image"

	"github.com/disintegration/imaging"
)

// Luminance reduces img to a single channel of Rec. 601 luma
// (0.299 R + 0.587 G + 0.114 B, rounded). Gray input is copied as is.
// The result is a new image anchored at the origin; img is left untouched.
func Luminance(img image.Image) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			i := g.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], g.Pix[i:i+w])
		}
		return dst
	}

	gray := imaging.Grayscale(img)
	for y := 0; y < h; y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+w*4]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range row {
			row[x] = src[x*4]
		}
	}
	return dst
}
