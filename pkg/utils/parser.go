package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"asciify/pkg/logger"
)

// "<digits> <unit>", spaces optional.
var sizeRegex = regexp.MustCompile(`^(\d+)\s*([a-zA-Z]*)$`)

// Binary multipliers, up to TB.
var unitMultipliers = map[string]int64{
	"":   1,
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// ParseSize parses a human-readable size such as "5MB", "5 mb" or "512".
// Units are binary (1KB = 1024 bytes) and case-insensitive.
func ParseSize(sizeStr string) (int64, error) {
	rawStr := strings.TrimSpace(strings.ToUpper(sizeStr))
	if rawStr == "" {
		return 0, fmt.Errorf("empty size")
	}

	matches := sizeRegex.FindStringSubmatch(rawStr)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid size format %q", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid numeric value in %q", sizeStr)
	}

	multiplier, exists := unitMultipliers[matches[2]]
	if !exists {
		return 0, fmt.Errorf("unsupported unit %q in %q", matches[2], sizeStr)
	}

	if value > (1<<62)/multiplier {
		return 0, fmt.Errorf("size %q overflows", sizeStr)
	}
	return value * multiplier, nil
}

// SizeToBytes is ParseSize with a fallback: on error it logs a warning and
// returns defaultValue.
func SizeToBytes(sizeStr string, defaultValue int64) int64 {
	n, err := ParseSize(sizeStr)
	if err != nil {
		logger.LogWarn("Utils: %v, using default %s.", err, FormatBytes(defaultValue))
		return defaultValue
	}
	return n
}
