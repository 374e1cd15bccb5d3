package httpclient

import (
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// minDetectorConfidence is the chardet score (0-100) below which a guess is ignored.
const minDetectorConfidence = 30

// html/charset reports this name when it found nothing better than the default.
const whatwgDefaultCharset = "windows-1252"

// DeclaredCharset returns the charset parameter of a Content-Type value, or "".
func DeclaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}

// ApparentEncoding guesses the body's encoding from its bytes rather than the
// Content-Type header. Order: valid UTF-8, BOM or <meta> declaration,
// statistical detection, then the header and the HTML default.
func (r *HTTPResponse) ApparentEncoding() (encoding.Encoding, string) {
	body := r.Body

	if utf8.Valid(body) {
		return unicode.UTF8, "utf-8"
	}

	if enc, name, _ := charset.DetermineEncoding(body, ""); name != whatwgDefaultCharset {
		return canonicalEncoding(enc, name)
	}

	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest(body); err == nil && result.Confidence >= minDetectorConfidence {
		if enc, name := charset.Lookup(result.Charset); enc != nil {
			return canonicalEncoding(enc, name)
		}
	}

	enc, name, _ := charset.DetermineEncoding(body, r.ContentType())
	return canonicalEncoding(enc, name)
}

// canonicalEncoding maps every UTF-8 result to unicode.UTF8. html/charset
// reports UTF-8 as encoding.Nop, which would pass invalid bytes through.
func canonicalEncoding(enc encoding.Encoding, name string) (encoding.Encoding, string) {
	if strings.EqualFold(name, "utf-8") || enc == encoding.Nop {
		return unicode.UTF8, "utf-8"
	}
	return enc, name
}

// ApparentText decodes the body with ApparentEncoding.
func (r *HTTPResponse) ApparentText() (string, error) {
	enc, _ := r.ApparentEncoding()
	return DecodeBody(r.Body, enc)
}

// DeclaredEncoding resolves the encoding announced by the server. Text types
// without a charset default to ISO-8859-1, JSON to UTF-8; anything else falls
// back to the apparent encoding.
func (r *HTTPResponse) DeclaredEncoding() (encoding.Encoding, string) {
	contentType := r.ContentType()

	if declared := DeclaredCharset(contentType); declared != "" {
		// WHATWG maps latin-1 labels to windows-1252; keep the real ISO-8859-1.
		if isLatin1Label(declared) {
			return charmap.ISO8859_1, "iso-8859-1"
		}
		if enc, name := charset.Lookup(declared); enc != nil {
			return canonicalEncoding(enc, name)
		}
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return charmap.ISO8859_1, "iso-8859-1"
	case mediaType == "application/json":
		return unicode.UTF8, "utf-8"
	}
	return r.ApparentEncoding()
}

func isLatin1Label(label string) bool {
	switch strings.ToLower(label) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1", "l1":
		return true
	}
	return false
}

// DeclaredText decodes the body with DeclaredEncoding.
func (r *HTTPResponse) DeclaredText() (string, error) {
	enc, _ := r.DeclaredEncoding()
	return DecodeBody(r.Body, enc)
}

// DecodeBody converts body to a UTF-8 string. Undecodable bytes become U+FFFD.
func DecodeBody(body []byte, enc encoding.Encoding) (string, error) {
	if enc == nil || enc == unicode.UTF8 || enc == encoding.Nop {
		return strings.ToValidUTF8(string(body), "�"), nil
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
