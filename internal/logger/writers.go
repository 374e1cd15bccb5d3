package logger

import (
	"io"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/rs/zerolog"
)

// writerFunc wraps a raw output in the encoding of one LogFormat.
type writerFunc func(output io.Writer) io.Writer

func jsonWriter(output io.Writer) io.Writer {
	return output
}

func colorConsoleWriter(output io.Writer) io.Writer {
	return newConsoleWriter(output, false)
}

func plainConsoleWriter(output io.Writer) io.Writer {
	return newConsoleWriter(output, true)
}

// newConsoleWriter prints timestamps in the same layout the change log uses.
func newConsoleWriter(output io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: common.LayoutDateTime,
		NoColor:    noColor,
	}
}
