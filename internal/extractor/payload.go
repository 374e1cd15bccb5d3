package extractor

import (
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// newsLiteralRegex matches the embedded news object literal. The match is the
// shortest one, so a nested closing brace ends it early.
var newsLiteralRegex = regexp.MustCompile(`(?s)news:\{.*?\}`)

// DefaultAssetPathPattern finds a versioned script bundle in a loader page.
const DefaultAssetPathPattern = `/assets/js/[\w.-]+\.js`

// FindNewsLiteral returns the first news literal in body, key included.
func FindNewsLiteral(body string) (string, bool) {
	loc := newsLiteralRegex.FindStringIndex(body)
	if loc == nil {
		return "", false
	}
	return body[loc[0]:loc[1]], true
}

// RepairMojibake undoes UTF-8 text that was decoded as ISO-8859-1. When the
// span cannot be re-encoded or the bytes are not UTF-8, it is returned as is.
func RepairMojibake(span string) string {
	raw, err := charmap.ISO8859_1.NewEncoder().String(span)
	if err != nil {
		return span
	}
	if !utf8.ValidString(raw) {
		return span
	}
	return raw
}
