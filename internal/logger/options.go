package logger

import (
	"io"
	"strings"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/aleister1102/newswatch/internal/config"
	"github.com/rs/zerolog"
)

// LogFormat selects how records are encoded.
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 3
)

// Options is the resolved logger setup. Console output is always on; a file
// is added when FilePath is set.
type Options struct {
	Level      zerolog.Level
	Format     LogFormat
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	// ConsoleOutput overrides stderr, mainly for tests.
	ConsoleOutput io.Writer
}

// OptionsFromConfig resolves the application log settings. An unparsable
// level falls back to info and is reported alongside the result.
func OptionsFromConfig(cfg config.LogConfig) (Options, error) {
	level, err := ParseLevel(cfg.LogLevel)

	opts := Options{
		Level:      level,
		Format:     ParseFormat(cfg.LogFormat),
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.MaxLogSizeMB,
		MaxBackups: cfg.MaxLogBackups,
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = defaultMaxSizeMB
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = defaultMaxBackups
	}
	return opts, err
}

// ParseLevel maps a level name to zerolog. Empty means info.
func ParseLevel(levelStr string) (zerolog.Level, error) {
	if strings.TrimSpace(levelStr) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, common.WrapError(err, "invalid log level")
	}
	return level, nil
}

// ParseFormat maps a format name to LogFormat, defaulting to console.
func ParseFormat(formatStr string) LogFormat {
	switch strings.ToLower(formatStr) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	}
	return FormatConsole
}
