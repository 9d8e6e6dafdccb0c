package imageio

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	OutputDirSuffix = "_OUT"
	OutputSuffix    = "_ascii"
	OutputExt       = ".png"
	TextExt         = ".txt"
)

// BaseName is the file name of input without directory and extension.
func BaseName(input string) string {
	name := filepath.Base(input)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		return name
	}
	return base
}

// OutputPath builds {root}/{base}_OUT/{base}_{width}x{height}_ascii.png.
// An empty root means the directory of input.
func OutputPath(input, root string, width, height int) string {
	if root == "" {
		root = filepath.Dir(input)
	}
	base := BaseName(input)
	name := fmt.Sprintf("%s_%dx%d%s%s", base, width, height, OutputSuffix, OutputExt)
	return filepath.Join(root, base+OutputDirSuffix, name)
}

// TextPath is the sidecar path for the ASCII text next to an output image.
func TextPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + TextExt
}
