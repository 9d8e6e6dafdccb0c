// Package imageio reads source images and writes conversion results.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"asciify/pkg/asciiart"
	"asciify/pkg/logger"
)

// DefaultMaxFileSize caps how much the decoder is willing to read.
const DefaultMaxFileSize = 64 << 20

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
	"image/tiff": true,
}

// Source is a decoded input image.
type Source struct {
	Image       image.Image
	Format      string
	ContentType string
	// Orientation is the EXIF orientation tag that was applied, 1 when absent.
	Orientation int
	Size        int64
}

// Open decodes the image at path. Every failure, including a missing or
// oversized file, wraps asciiart.ErrDecode.
func Open(path string, maxBytes int64) (*Source, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", asciiart.ErrDecode, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", asciiart.ErrDecode, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", asciiart.ErrDecode, path)
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", asciiart.ErrDecode, path, info.Size(), maxBytes)
	}

	src, err := Decode(io.LimitReader(f, maxBytes))
	if err != nil {
		return nil, err
	}
	src.Size = info.Size()
	return src, nil
}

// Decode sniffs, decodes and orients an image from r.
func Decode(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", asciiart.ErrDecode, err)
	}

	contentType := DetectContentType(data)
	if !allowedTypes[contentType] {
		return nil, fmt.Errorf("%w: unsupported content type %q", asciiart.ErrDecode, contentType)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", asciiart.ErrDecode, err)
	}

	orient := 1
	if contentType == "image/jpeg" {
		orient = exifOrient(bytes.NewReader(data))
		if orient != 1 {
			logger.LogDebug("Applying EXIF orientation %d", orient)
			img = orientImage(orient, img)
		}
	}

	return &Source{
		Image:       img,
		Format:      format,
		ContentType: contentType,
		Orientation: orient,
		Size:        int64(len(data)),
	}, nil
}

// DetectContentType extends http.DetectContentType with TIFF, which the
// standard sniffer reports as application/octet-stream.
func DetectContentType(head []byte) string {
	if bytes.HasPrefix(head, []byte("II*\x00")) || bytes.HasPrefix(head, []byte("MM\x00*")) {
		return "image/tiff"
	}
	return http.DetectContentType(head)
}

func exifOrient(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil || x == nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil || tag.Count == 0 {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return 1
	}
	return v
}

// orientImage undoes the camera orientation. imaging rotates counter-clockwise.
func orientImage(orient int, img image.Image) image.Image {
	switch orient {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
