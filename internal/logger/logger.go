// Package logger provides levelled logging for sitesmith on stderr.
//
// Warnings are always written. Info and debug messages appear only in
// verbose mode, enabled with the --verbose flag, and show what the editor
// and the stores are doing.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders messages by importance.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

// String returns the tag written before each message.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables info and debug messages.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether messages at level l are written.
func Enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return enabledLocked(l)
}

func enabledLocked(l Level) bool {
	return l >= LevelWarn || verbose
}

// Debug logs detail useful when tracing a problem.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info logs a state change: a site saved, a catalog reloaded.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn logs a recoverable failure. Always written.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// logf holds the lock while writing so lines from concurrent savers and
// watchers never interleave.
func logf(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabledLocked(l) {
		return
	}
	fmt.Fprintf(output, "["+l.String()+"] "+format+"\n", args...)
}
