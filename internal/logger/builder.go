package logger

import (
	"io"
	stdlog "log"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/aleister1102/newswatch/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	opts    Options
	factory *WriterFactory
	err     error
}

// NewLoggerBuilder creates a builder for an info-level console logger.
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		opts: Options{
			Level:      zerolog.InfoLevel,
			Format:     FormatConsole,
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
		},
		factory: NewWriterFactory(),
	}
}

// WithConfig applies the application log settings. A previously set console
// output is kept.
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		lb.err = err
	}
	opts.ConsoleOutput = lb.opts.ConsoleOutput
	lb.opts = opts
	return lb
}

// WithConsoleOutput redirects console output, mainly for tests
func (lb *LoggerBuilder) WithConsoleOutput(out io.Writer) *LoggerBuilder {
	lb.opts.ConsoleOutput = out
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (*Logger, error) {
	if lb.err != nil {
		return nil, lb.err
	}
	if lb.opts.MaxSizeMB <= 0 {
		return nil, common.NewValidationError("max_size_mb", lb.opts.MaxSizeMB, "max size must be positive")
	}

	writers := []io.Writer{lb.factory.CreateConsoleWriter(lb.opts.Format, lb.opts.ConsoleOutput)}
	var closer io.Closer
	if lb.opts.FilePath != "" {
		fileWriter, fileCloser, err := lb.factory.CreateFileWriter(lb.opts)
		if err != nil {
			return nil, common.WrapError(err, "failed to create log file writer")
		}
		writers = append(writers, fileWriter)
		closer = fileCloser
	}

	zerologInstance := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lb.opts.Level).
		With().
		Timestamp().
		Logger()

	// Library code that still uses the standard logger ends up in the same sink.
	stdlog.SetOutput(zerologInstance)
	stdlog.SetFlags(0)

	return &Logger{zerolog: zerologInstance, closer: closer}, nil
}
