package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/newswatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	log, err := New(config.NewDefaultLogConfig())
	require.NoError(t, err)
	require.NotNil(t, log)
	defer log.Close()

	assert.Equal(t, zerolog.InfoLevel, log.GetZerolog().GetLevel())
	assert.NoError(t, log.Close())
}

func TestLoggerBuilder_FileLogging(t *testing.T) {
	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "nested", "newswatch.log")

	log, err := NewLoggerBuilder().
		WithConsoleOutput(&console).
		WithConfig(config.LogConfig{LogLevel: "debug", LogFormat: "json", LogFile: logFile, MaxLogSizeMB: 1, MaxLogBackups: 1}).
		Build()
	require.NoError(t, err)
	defer log.Close()

	log.GetZerolog().Debug().Str("component", "Test").Msg("this is a test")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"level":"debug"`)
	assert.Contains(t, string(content), `"component":"Test"`)
	assert.Contains(t, string(content), `"message":"this is a test"`)
	assert.Contains(t, console.String(), `"message":"this is a test"`)
}

func TestLoggerBuilder_ConsoleFormatIsPlainInFile(t *testing.T) {
	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "newswatch.log")

	log, err := NewLoggerBuilder().
		WithConsoleOutput(&console).
		WithConfig(config.LogConfig{LogFormat: "console", LogFile: logFile}).
		Build()
	require.NoError(t, err)
	defer log.Close()

	log.GetZerolog().Info().Msg("plain")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "plain")
	assert.NotContains(t, string(content), "\x1b[")
}

func TestLoggerBuilder_WithConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LogConfig{LogLevel: "warn", LogFormat: "json"}

	log, err := NewLoggerBuilder().WithConsoleOutput(&buf).WithConfig(cfg).Build()
	require.NoError(t, err)

	log.GetZerolog().Info().Msg("filtered")
	log.GetZerolog().Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "filtered")
	assert.Contains(t, buf.String(), `"message":"kept"`)
}

func TestLoggerBuilder_InvalidLevel(t *testing.T) {
	_, err := NewLoggerBuilder().WithConfig(config.LogConfig{LogLevel: "loud"}).Build()
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := OptionsFromConfig(config.LogConfig{
		LogLevel:      "warn",
		LogFormat:     "json",
		LogFile:       "/tmp/test.log",
		MaxLogSizeMB:  50,
		MaxLogBackups: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, zerolog.WarnLevel, opts.Level)
	assert.Equal(t, FormatJSON, opts.Format)
	assert.Equal(t, "/tmp/test.log", opts.FilePath)
	assert.Equal(t, 50, opts.MaxSizeMB)
	assert.Equal(t, 5, opts.MaxBackups)

	fallback, err := OptionsFromConfig(config.LogConfig{})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, fallback.Level)
	assert.Equal(t, FormatConsole, fallback.Format)
	assert.Empty(t, fallback.FilePath)
	assert.Equal(t, 100, fallback.MaxSizeMB)
	assert.Equal(t, 3, fallback.MaxBackups)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	assert.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	_, err = ParseLevel("invalid-level")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatConsole, ParseFormat("console"))
	assert.Equal(t, FormatText, ParseFormat("Text"))
	assert.Equal(t, FormatConsole, ParseFormat("unknown-format"))
}
