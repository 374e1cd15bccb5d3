package httpclient

import (
	"context"
	"io"
)

// HTTPRequest represents an outbound request
type HTTPRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    io.Reader
	Context context.Context
}

// HTTPResponse represents a fully read response
type HTTPResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	// Truncated is set when the body exceeded MaxContentSize.
	Truncated bool
}

// IsSuccess reports whether the status code is 2xx
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the Content-Type header value
func (r *HTTPResponse) ContentType() string {
	return r.Headers["Content-Type"]
}
