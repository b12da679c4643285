package logger

import (
	"context"
	"time"
)

type contextKey struct{}

var logContextKey = contextKey{}

// LogContext holds invocation-scoped logging fields
type LogContext struct {
	Command   string    // labctl sub-command
	Server    string    // Server base URL
	Username  string    // Login of the session owner, when known
	StartTime time.Time // For duration calculation
}

// NewLogContext creates a LogContext for one sub-command invocation
func NewLogContext(command string) *LogContext {
	return &LogContext{
		Command:   command,
		StartTime: time.Now(),
	}
}

// WithContext returns a new context carrying lc
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

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	clone := *lc
	return &clone
}

// WithServer returns a copy with the server set
func (lc *LogContext) WithServer(server string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Server = server
	}
	return clone
}

// WithUsername returns a copy with the username set
func (lc *LogContext) WithUsername(username string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Username = username
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return Duration(lc.StartTime)
}
