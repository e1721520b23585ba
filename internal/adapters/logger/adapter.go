// Package logger adapts the shared zap-backed logger to the narrow logging
// interface fwver components consume.
package logger

import (
	"context"

	golog "github.com/MyCarrier-DevOps/goLibMyCarrier/logger"
)

// ZapAdapter narrows the shared logger.Logger to the four methods the
// application components depend on. Components declare their own small
// Logger interfaces and this adapter satisfies all of them.
type ZapAdapter struct {
	log golog.Logger
}

// NewZapAdapter creates a new ZapAdapter wrapping the given shared logger.
func NewZapAdapter(log golog.Logger) *ZapAdapter {
	return &ZapAdapter{log: log}
}

// WithFields returns a new adapter with the given fields bound to every
// subsequent log entry.
func (a *ZapAdapter) WithFields(fields map[string]any) *ZapAdapter {
	return &ZapAdapter{log: a.log.WithFields(fields)}
}

// Info logs an info message.
func (a *ZapAdapter) Info(ctx context.Context, msg string, fields map[string]any) {
	a.log.Info(ctx, msg, fields)
}

// Debug logs a debug message.
func (a *ZapAdapter) Debug(ctx context.Context, msg string, fields map[string]any) {
	a.log.Debug(ctx, msg, fields)
}

// Warn logs a warning message.
func (a *ZapAdapter) Warn(ctx context.Context, msg string, fields map[string]any) {
	a.log.Warn(ctx, msg, fields)
}

// Error logs an error message.
func (a *ZapAdapter) Error(ctx context.Context, msg string, err error, fields map[string]any) {
	a.log.Error(ctx, msg, err, fields)
}
