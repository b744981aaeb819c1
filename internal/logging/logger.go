// Package logging defines the structured-logging interface used across the
// project and an slog-backed implementation of it.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// interpreted as alternating keys and values, as in slog:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
