// Package utils provides small helpers shared by the CLI and configuration:
// size parsing, byte formatting and .env loading.
package utils

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"

	"asciify/pkg/logger"
)

// LoadEnv loads the given .env files (default ".env") into the process
// environment. Variables that are already set win. Missing files are ignored.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			logger.LogWarn("Could not load %s: %v", f, err)
		}
	}
}

func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
