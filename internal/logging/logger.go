// Package logging defines a minimal structured-logging interface used across
// mediaup. The default implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "batch issued", "size", len(batch), "elapsed", d)
type Logger interface {
	// Debug logs high-volume diagnostic messages (per chunk, per slot).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Noop discards everything. Components fall back to it when no logger is configured.
var Noop Logger = noop{}

type noop struct{}

func (noop) Debug(context.Context, string, ...any) {}
func (noop) Info(context.Context, string, ...any)  {}
func (noop) Warn(context.Context, string, ...any)  {}
func (noop) Error(context.Context, string, ...any) {}
func (n noop) With(...any) Logger                  { return n }
