package extractor

import (
	"errors"
	"fmt"
)

// ErrNotFound is the single failure signal of the extractor. Every error
// returned by Extract matches it with errors.Is.
var ErrNotFound = errors.New("content not found")

// ErrorKind classifies why extraction failed
type ErrorKind string

const (
	// KindTransport covers non-2xx statuses, timeouts and connection errors.
	KindTransport ErrorKind = "transport"
	// KindParse covers selectors, patterns or payloads that matched nothing.
	KindParse ErrorKind = "parse"
)

// ExtractionError describes a failed extraction for one target
type ExtractionError struct {
	Kind       ErrorKind
	TargetName string
	URL        string
	Reason     string
	Err        error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("%s failure for target '%s' (%s): %s", e.Kind, e.TargetName, e.URL, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is makes every ExtractionError match ErrNotFound
func (e *ExtractionError) Is(target error) bool {
	return target == ErrNotFound
}

func newTransportError(targetName, url string, err error) *ExtractionError {
	return &ExtractionError{
		Kind:       KindTransport,
		TargetName: targetName,
		URL:        url,
		Reason:     "fetch failed",
		Err:        err,
	}
}

func newParseError(targetName, url, reason string) *ExtractionError {
	return &ExtractionError{
		Kind:       KindParse,
		TargetName: targetName,
		URL:        url,
		Reason:     reason,
	}
}
