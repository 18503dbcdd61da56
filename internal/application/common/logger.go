package common

import "context"

// Log levels used across the bot
const (
	LevelDebug   = "DEBUG"
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// ContainerLogger provides logging for a running operation (a fleet tick,
// a cycle, a CLI query)
type ContainerLogger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger ContainerLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) ContainerLogger {
	if logger, ok := ctx.Value(loggerKey).(ContainerLogger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// FleetScoper is implemented by loggers that can tag entries with a fleet
type FleetScoper interface {
	ForFleet(fleetName string) ContainerLogger
}

// WithFleetLogger scopes the context's logger to fleetName when the logger
// supports it, and leaves the context unchanged otherwise
func WithFleetLogger(ctx context.Context, fleetName string) context.Context {
	if scoper, ok := LoggerFromContext(ctx).(FleetScoper); ok {
		return WithLogger(ctx, scoper.ForFleet(fleetName))
	}
	return ctx
}
