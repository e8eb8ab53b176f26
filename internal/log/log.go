// Package log provides categorised file logging for rt.
//
// Until Init is called every call is a no-op, so commands that print JSON on
// stdout never interleave diagnostic output with their results.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category groups log lines by subsystem.
type Category string

const (
	CatConfig Category = "config"
	CatGamma  Category = "gamma"
	CatBatch  Category = "batch"
	CatSound  Category = "sound"
	CatCLI    Category = "cli"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the bracketed label used in log lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var (
	mu       sync.Mutex
	logger   = stdlog.New(io.Discard, "", 0)
	minLevel = LevelDebug
	enabled  bool
)

// Init opens (or creates) the log file at path and routes all subsequent log
// calls to it. The returned cleanup closes the file and disables logging again.
func Init(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path comes from CLI config
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	logger = stdlog.New(f, "", stdlog.LstdFlags)
	enabled = true
	mu.Unlock()

	return func() {
		mu.Lock()
		logger = stdlog.New(io.Discard, "", 0)
		enabled = false
		mu.Unlock()
		_ = f.Close()
	}, nil
}

// InitWriter routes log output to w. Used by tests.
func InitWriter(w io.Writer) func() {
	mu.Lock()
	logger = stdlog.New(w, "", 0)
	enabled = true
	mu.Unlock()

	return func() {
		mu.Lock()
		logger = stdlog.New(io.Discard, "", 0)
		enabled = false
		mu.Unlock()
	}
}

// SetLevel sets the minimum level written to the log.
func SetLevel(l Level) {
	mu.Lock()
	minLevel = l
	mu.Unlock()
}

// Enabled reports whether a log destination has been initialised.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Debug logs at debug level.
func Debug(cat Category, msg string, kv ...any) { write(LevelDebug, cat, msg, kv) }

// Info logs at info level.
func Info(cat Category, msg string, kv ...any) { write(LevelInfo, cat, msg, kv) }

// Warn logs at warn level.
func Warn(cat Category, msg string, kv ...any) { write(LevelWarn, cat, msg, kv) }

// Error logs at error level.
func Error(cat Category, msg string, kv ...any) { write(LevelError, cat, msg, kv) }

// ErrorErr logs err at error level under the "error" key.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	write(LevelError, cat, msg, append([]any{"error", err}, kv...))
}

func write(level Level, cat Category, msg string, kv []any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || level < minLevel {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] %s", level, cat, msg)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			fmt.Fprintf(&b, " %s=(MISSING)", key)
			break
		}
		fmt.Fprintf(&b, " %s=%v", key, kv[i+1])
	}
	logger.Println(b.String())
}
