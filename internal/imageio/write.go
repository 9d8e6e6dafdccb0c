package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"asciify/pkg/asciiart"
	"asciify/pkg/logger"
)

// WriteImage encodes img as PNG at path. The parent directory is created if
// missing (one level only). Nothing appears at path unless the whole image
// was encoded and synced. Failures wrap asciiart.ErrIO.
func WriteImage(path string, img image.Image) error {
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	return writeAtomic(path, func(w io.Writer) error {
		return enc.Encode(w, img)
	})
}

// WriteText stores text at path with the same guarantees as WriteImage.
func WriteText(path, text string) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

// ensureParent creates the parent of path when it is missing. Only a single
// level is created; a missing grandparent is an error.
func ensureParent(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", asciiart.ErrIO, dir)
		}
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", asciiart.ErrIO, err)
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create output directory: %w", asciiart.ErrIO, err)
	}
	logger.LogDebug("Created output directory %s", dir)
	return nil
}

func writeAtomic(path string, write func(io.Writer) error) (err error) {
	if err := ensureParent(path); err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", asciiart.ErrIO, err)
	}

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			f.Close()
		}
		os.Remove(tmp)
	}()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return fmt.Errorf("%w: write %s: %w", asciiart.ErrIO, path, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%w: write %s: %w", asciiart.ErrIO, path, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", asciiart.ErrIO, path, err)
	}
	closed = true
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", asciiart.ErrIO, path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: %w", asciiart.ErrIO, err)
	}
	return nil
}
