// Package logger provides structured logging for the shardscout tools.
//
// Library packages log through the package-level functions; the CLI calls
// Init once the --debug/--quiet flags and config are known.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(newLogger(Options{}))
}

// Options configures the logger.
type Options struct {
	Debug  bool      // Enable debug level logging
	Quiet  bool      // Only show errors; wins over Debug
	JSON   bool      // Output as JSON
	Output io.Writer // Output destination (default: stderr)
}

// Init replaces the package logger according to opts.
func Init(opts Options) {
	current.Store(newLogger(opts))
}

func newLogger(opts Options) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case opts.Quiet:
		level = slog.LevelError
	case opts.Debug:
		level = slog.LevelDebug
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(output, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(output, handlerOpts))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	current.Load().Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	current.Load().Warn(msg, args...)
}
