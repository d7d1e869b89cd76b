// Package logger provides the process-wide structured logger.
//
// Packages log through the functions here rather than holding their own
// *slog.Logger, so the CLI can reconfigure every component with one Init call.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	current *slog.Logger
	mu      sync.RWMutex
)

func init() {
	current = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Options configures the logger.
type Options struct {
	Debug  bool         // Enable debug level logging
	Quiet  bool         // Only show errors
	JSON   bool         // Output as JSON
	Output io.Writer    // Output destination (default: stderr)
	File   io.Writer    // Optional second destination, e.g. a run log file
	Logger *slog.Logger // Custom logger (overrides all other options)
}

// Init replaces the logger according to opts.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	if opts.Logger != nil {
		current = opts.Logger
		return
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.Quiet {
		level = slog.LevelError
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.File != nil {
		out = io.MultiWriter(out, opts.File)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	current = slog.New(handler)
}

// SetLogger installs l as the process logger.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Debug logs a message at debug level.
func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }

// Info logs a message at info level.
func Info(msg string, args ...any) { Logger().Info(msg, args...) }

// Warn logs a message at warn level.
func Warn(msg string, args ...any) { Logger().Warn(msg, args...) }

// Error logs a message at error level.
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// DebugContext logs a message at debug level with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	Logger().DebugContext(ctx, msg, args...)
}

// InfoContext logs a message at info level with context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	Logger().InfoContext(ctx, msg, args...)
}

// WarnContext logs a message at warn level with context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	Logger().WarnContext(ctx, msg, args...)
}

// ErrorContext logs a message at error level with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Logger().ErrorContext(ctx, msg, args...)
}
