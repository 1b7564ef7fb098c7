// Package logging builds the zap loggers used by the CLI and the API server.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when the configured level cannot be parsed.
const DefaultLevel = zapcore.WarnLevel

// ParseLevel maps a level name onto a zap level, falling back to DefaultLevel.
func ParseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return DefaultLevel
	}
	return zapLevel
}

// New creates a logger writing to stderr. Verbose mode switches to debug level with a
// human readable console encoding.
func New(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.CallerKey = "caller"

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.Sampling = nil
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}
