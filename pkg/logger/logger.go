// Package logger provides a zap-based application logger that stamps every
// record with the service name and, when available, the request trace id.
package logger

import (
	"context"

	"go.uber.org/zap"
)

// Logger wraps a sugared zap logger with trace-id correlation.
type Logger struct {
	s       *zap.SugaredLogger
	traceID func(context.Context) string
}

// New configures a production-mode logger. traceID extracts the current
// trace id from a context; pass nil when tracing is disabled.
func New(service string, traceID func(context.Context) string) (*Logger, error) {
	z, err := zap.NewProduction(zap.Fields(zap.String("service", service)))
	if err != nil {
		return nil, err
	}
	return &Logger{s: z.Sugar(), traceID: traceID}, nil
}

// Info logs at info level with alternating key/value pairs.
func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.s.Infow(msg, l.with(ctx, kv)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.s.Warnw(msg, l.with(ctx, kv)...)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.s.Errorw(msg, l.with(ctx, kv)...)
}

// Sync flushes buffered records. Call on shutdown.
func (l *Logger) Sync() {
	_ = l.s.Sync()
}

func (l *Logger) with(ctx context.Context, kv []any) []any {
	if l.traceID == nil {
		return kv
	}
	if id := l.traceID(ctx); id != "" {
		return append(kv, "trace_id", id)
	}
	return kv
}
