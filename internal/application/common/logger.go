package common

import "context"

// GameLogger receives one structured line per game action. level is one of
// "DEBUG", "INFO", "WARN" or "ERROR".
type GameLogger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Discard is used when the context carries no logger
var Discard GameLogger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Log(string, string, map[string]interface{}) {}

type loggerKey struct{}

// WithLogger returns ctx carrying logger for every handler it reaches
func WithLogger(ctx context.Context, logger GameLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger stored by WithLogger, or Discard
func LoggerFromContext(ctx context.Context) GameLogger {
	if logger, ok := ctx.Value(loggerKey{}).(GameLogger); ok && logger != nil {
		return logger
	}
	return Discard
}
