// Package logging constructs the structured loggers used throughout the
// library. Components accept a *zap.Logger explicitly; there is no ambient
// package-level logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewNopLogger returns a logger which discards all output. It is the default
// for components constructed without an explicit logger.
func NewNopLogger() *zap.Logger {
	return zap.NewNop()
}

// NewLogger returns a production logger at the given level
func NewLogger(level zapcore.Level) (*zap.Logger, error) {
	conf := zap.NewProductionConfig()
	conf.Level = zap.NewAtomicLevelAt(level)
	return conf.Build()
}

// NewDevelopmentLogger returns a human-readable logger suitable for tests and
// local debugging
func NewDevelopmentLogger() (*zap.Logger, error) {
	return zap.NewDevelopment()
}
