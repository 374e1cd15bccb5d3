package logger

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// WriterFactory creates writers based on format
type WriterFactory struct {
	writers map[LogFormat]writerFunc
}

// NewWriterFactory creates a new writer factory
func NewWriterFactory() *WriterFactory {
	return &WriterFactory{
		writers: map[LogFormat]writerFunc{
			FormatJSON:    jsonWriter,
			FormatConsole: colorConsoleWriter,
			FormatText:    plainConsoleWriter,
		},
	}
}

// CreateConsoleWriter creates a console writer on out, or stderr when out is nil
func (wf *WriterFactory) CreateConsoleWriter(format LogFormat, out io.Writer) io.Writer {
	if out == nil {
		out = os.Stderr
	}
	create, exists := wf.writers[format]
	if !exists {
		create = colorConsoleWriter
	}
	return create(out)
}

// CreateFileWriter creates a rotating file writer. The returned closer
// releases the underlying file.
func (wf *WriterFactory) CreateFileWriter(opts Options) (io.Writer, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
		return nil, nil, err
	}

	lumberjackLogger := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		LocalTime:  true,
		MaxBackups: opts.MaxBackups,
	}

	// Colour codes never go to files.
	if opts.Format == FormatConsole {
		return plainConsoleWriter(lumberjackLogger), lumberjackLogger, nil
	}

	create, exists := wf.writers[opts.Format]
	if !exists {
		create = jsonWriter
	}
	return create(lumberjackLogger), lumberjackLogger, nil
}
