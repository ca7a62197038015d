// Package logging defines the structured-logging interface used across
// weighttracker and its slog and zerolog backends.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are key/value pairs:
//
//	log.Info(ctx, "weight added", "user", user, "weight", w)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

// Backend names accepted by New.
const (
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"
)

// Options selects and tunes a backend.
type Options struct {
	Backend string // "slog" (default) or "zerolog"
	Level   string // debug, info, warn, error
	JSON    bool   // slog only: JSON instead of text output
}

// New builds a Logger writing to w.
func New(w io.Writer, opts Options) (Logger, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendSlog:
		return NewSlogLoggerTo(w, opts.Level, opts.JSON), nil
	case BackendZerolog:
		return NewZerologLoggerTo(w, opts.Level), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}
