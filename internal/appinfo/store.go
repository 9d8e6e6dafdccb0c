package appinfo

import (
	"time"
)

// Name and Version are overridable at build time:
//
//	go build -ldflags "-X asciify/internal/appinfo.Version=1.2.0"
var (
	Name    = "asciify"
	Version = "0.1.0"
)

// StartTime is set by the CLI once flags are parsed.
var StartTime = time.Now()

// Elapsed reports the time since StartTime, rounded to milliseconds.
func Elapsed() time.Duration {
	return time.Since(StartTime).Round(time.Millisecond)
}
