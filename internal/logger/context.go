package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds call-scoped logging context threaded through a layer stack.
type LogContext struct {
	TraceID   string    // OpenTelemetry trace ID
	SpanID    string    // OpenTelemetry span ID
	Operation string    // Accessor operation name (read, write, stat, ...)
	Path      string    // Object path
	Scheme    string    // Backend scheme (azblob, memory, ...)
	Attempt   int       // Current retry attempt number, 0 on first try
	StartTime time.Time // For duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for an accessor operation.
func NewLogContext(operation, path string) *LogContext {
	return &LogContext{
		Operation: operation,
		Path:      path,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:   lc.TraceID,
		SpanID:    lc.SpanID,
		Operation: lc.Operation,
		Path:      lc.Path,
		Scheme:    lc.Scheme,
		Attempt:   lc.Attempt,
		StartTime: lc.StartTime,
	}
}

// WithScheme returns a copy with the backend scheme set
func (lc *LogContext) WithScheme(scheme string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Scheme = scheme
	}
	return clone
}

// WithAttempt returns a copy with the retry attempt number set
func (lc *LogContext) WithAttempt(attempt int) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Attempt = attempt
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
