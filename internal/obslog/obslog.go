// Package obslog provides the structured logger shared by the runtime's
// packages: a slog.Logger configured to stay quiet about third-party noise
// unless running at debug level.
package obslog

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

const modulePrefix = "github.com/agenthub/runtime"

var defaultLogger = slog.New(newFilteringHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelWarn,
}), slog.LevelWarn))

// ParseLevel converts a level string to slog.Level, defaulting to warn for
// anything unrecognized.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetLevel replaces the default logger's minimum level.
func SetLevel(level slog.Level) {
	defaultLogger = slog.New(newFilteringHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}), level))
}

// Default returns the package-level logger.
func Default() *slog.Logger {
	return defaultLogger
}

// filteringHandler suppresses log records whose caller frame is outside the
// module, unless the configured level is debug.
type filteringHandler struct {
	handler  slog.Handler
	minLevel slog.Level
}

func newFilteringHandler(h slog.Handler, minLevel slog.Level) *filteringHandler {
	return &filteringHandler{handler: h, minLevel: minLevel}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.minLevel && h.handler.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.minLevel <= slog.LevelDebug {
		return h.handler.Handle(ctx, record)
	}
	if h.isOwnPackage(record.PC) {
		return h.handler.Handle(ctx, record)
	}
	return nil
}

func (h *filteringHandler) isOwnPackage(pc uintptr) bool {
	if pc == 0 {
		return true
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	return strings.HasPrefix(frame.Function, modulePrefix)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &filteringHandler{handler: h.handler.WithAttrs(attrs), minLevel: h.minLevel}
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return &filteringHandler{handler: h.handler.WithGroup(name), minLevel: h.minLevel}
}
