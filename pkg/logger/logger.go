package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	cInf  = color.New(color.FgCyan, color.Bold).SprintFunc()
	cWarn = color.New(color.FgYellow, color.Bold).SprintFunc()
	cErr  = color.New(color.FgRed, color.Bold).SprintFunc()
	cSucc = color.New(color.FgGreen, color.Bold).SprintFunc()
	cFatl = color.New(color.BgRed, color.FgWhite, color.Bold).SprintFunc()
	cDbg  = color.New(color.FgMagenta).SprintFunc()
	cTime = color.New(color.FgHiBlack).SprintFunc()
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stdout
	errOut  io.Writer = os.Stderr
	quiet   bool
	verbose bool
)

// SetOutput redirects regular and error output. Passing nil keeps the current writer.
func SetOutput(stdout, stderr io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
}

// SetQuiet suppresses INFO, OK and DEBUG lines. Warnings and errors still print.
func SetQuiet(q bool) {
	mu.Lock()
	quiet = q
	mu.Unlock()
}

// SetVerbose enables DEBUG lines.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

func timeStamp() string {
	return cTime(time.Now().Format("2006-01-02 15:04"))
}

func emit(w io.Writer, tag string, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	fmt.Fprintf(w, "%s %s %s\n", timeStamp(), tag, msg)
}

func LogInfo(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return
	}
	emit(out, cInf("[INFO]"), format, v...)
}

func LogSuccess(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return
	}
	emit(out, cSucc("[OK]"), format, v...)
}

func LogDebug(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if quiet || !verbose {
		return
	}
	emit(out, cDbg("[DEBUG]"), format, v...)
}

func LogWarn(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	emit(out, cWarn("[WARN]"), format, v...)
}

func LogError(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	emit(errOut, cErr("[ERR]"), format, v...)
}

func LogFatal(format string, v ...interface{}) {
	mu.Lock()
	emit(errOut, cFatl("[FATAL]"), format, v...)
	mu.Unlock()
	os.Exit(1)
}

// Std adapts the package-level functions to the Debugf/Infof shape used by pipeline components.
type Std struct{}

func (Std) Debugf(format string, v ...interface{}) { LogDebug(format, v...) }
func (Std) Infof(format string, v ...interface{})  { LogInfo(format, v...) }
