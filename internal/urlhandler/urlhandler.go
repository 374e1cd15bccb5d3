package urlhandler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// unsafeKeyCharsRegex matches every rune that is not safe in a file name on
// common filesystems. Letters and digits of any script are kept.
var unsafeKeyCharsRegex = regexp.MustCompile(`[^\p{L}\p{N}_.-]`)

// KeyPlaceholder replaces each unsafe rune in a storage key.
const KeyPlaceholder = "_"

// SanitizeKey turns a target name into a storage key. Each unsafe rune maps to
// exactly one placeholder, so the mapping is deterministic and idempotent.
func SanitizeKey(name string) string {
	key := unsafeKeyCharsRegex.ReplaceAllString(name, KeyPlaceholder)

	// "", "." and ".." would resolve to directories.
	if strings.Trim(key, ".") == "" {
		return KeyPlaceholder + key
	}
	return key
}

// ValidateAbsoluteURL checks that rawURL is an absolute http(s) URL with a host.
func ValidateAbsoluteURL(rawURL string) error {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return fmt.Errorf("URL is empty")
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return fmt.Errorf("invalid URL format '%s': %w", trimmedURL, err)
	}
	if !parsedURL.IsAbs() {
		return fmt.Errorf("URL '%s' is not absolute", trimmedURL)
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("URL '%s' has unsupported scheme '%s'", trimmedURL, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL '%s' lacks a hostname", trimmedURL)
	}
	return nil
}

// Origin returns scheme://host[:port] of rawURL.
func Origin(rawURL string) (string, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", rawURL, err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("URL '%s' has no origin", rawURL)
	}
	return parsedURL.Scheme + "://" + parsedURL.Host, nil
}

// ResolveAssetURL builds the absolute URL of an asset path discovered in pageURL.
// Root-relative paths are appended to the page origin; anything else is
// resolved as a reference against the page URL.
func ResolveAssetURL(pageURL, assetPath string) (string, error) {
	assetPath = strings.TrimSpace(assetPath)
	if assetPath == "" {
		return "", fmt.Errorf("asset path is empty")
	}

	if strings.HasPrefix(assetPath, "/") && !strings.HasPrefix(assetPath, "//") {
		origin, err := Origin(pageURL)
		if err != nil {
			return "", err
		}
		return origin + assetPath, nil
	}

	base, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", pageURL, err)
	}
	ref, err := url.Parse(assetPath)
	if err != nil {
		return "", fmt.Errorf("could not parse asset path '%s': %w", assetPath, err)
	}
	return base.ResolveReference(ref).String(), nil
}
