package logger

import (
	"io"

	"github.com/aleister1102/newswatch/internal/config"
	"github.com/rs/zerolog"
)

// Logger owns the configured zerolog instance and the log file behind it.
type Logger struct {
	zerolog zerolog.Logger
	closer  io.Closer
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// New creates a logger from the application log configuration
func New(cfg config.LogConfig) (*Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}
