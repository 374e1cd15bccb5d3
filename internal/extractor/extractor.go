package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/newswatch/internal/httpclient"
	"github.com/aleister1102/newswatch/internal/models"
	"github.com/aleister1102/newswatch/internal/urlhandler"
	"github.com/rs/zerolog"
)

// Fetcher performs a GET and returns the fully read response. A non-2xx
// status must be reported as an error.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, headers map[string]string) (*httpclient.HTTPResponse, error)
}

// Extractor turns a target into its normalized text snapshot
type Extractor struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

// NewExtractor creates an Extractor that fetches through fetcher
func NewExtractor(fetcher Fetcher, logger zerolog.Logger) *Extractor {
	return &Extractor{
		fetcher: fetcher,
		logger:  logger.With().Str("component", "Extractor").Logger(),
	}
}

// Extract returns the normalized content of target. Every failure is an
// *ExtractionError matching ErrNotFound; Extract never panics.
func (e *Extractor) Extract(ctx context.Context, target models.Target) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{
				Kind:       KindParse,
				TargetName: target.Name,
				URL:        target.URL,
				Reason:     fmt.Sprintf("unexpected failure: %v", r),
			}
		}
	}()

	switch target.EffectiveMode() {
	case models.ModeScriptPayload:
		text, err = e.extractScriptPayload(ctx, target)
	default:
		text, err = e.extractHTMLElement(ctx, target)
	}
	if err != nil {
		return "", err
	}

	// An element or literal with no visible text is treated as missing.
	if text == "" {
		return "", newParseError(target.Name, target.URL, "extracted content is empty")
	}
	return text, nil
}

func (e *Extractor) extractHTMLElement(ctx context.Context, target models.Target) (string, error) {
	resp, err := e.fetcher.Get(ctx, target.URL, target.Headers)
	if err != nil {
		return "", newTransportError(target.Name, target.URL, err)
	}

	body, err := resp.ApparentText()
	if err != nil {
		return "", &ExtractionError{Kind: KindParse, TargetName: target.Name, URL: target.URL, Reason: "could not decode body", Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", &ExtractionError{Kind: KindParse, TargetName: target.Name, URL: target.URL, Reason: "could not parse HTML", Err: err}
	}

	element, found := FindElement(doc, target.Selector)
	if !found {
		return "", newParseError(target.Name, target.URL,
			fmt.Sprintf("no element matches tag=%q class=%q id=%q", target.Selector.Tag, target.Selector.Class, target.Selector.ID))
	}

	return NormalizeText(element), nil
}

func (e *Extractor) extractScriptPayload(ctx context.Context, target models.Target) (string, error) {
	payloadURL := target.URL
	if target.EffectiveSubtype() == models.PayloadIndirect {
		assetURL, err := e.discoverAsset(ctx, target)
		if err != nil {
			return "", err
		}
		payloadURL = assetURL
	}

	resp, err := e.fetcher.Get(ctx, payloadURL, target.Headers)
	if err != nil {
		return "", newTransportError(target.Name, payloadURL, err)
	}

	body, err := resp.DeclaredText()
	if err != nil {
		return "", &ExtractionError{Kind: KindParse, TargetName: target.Name, URL: payloadURL, Reason: "could not decode payload", Err: err}
	}

	literal, found := FindNewsLiteral(body)
	if !found {
		return "", newParseError(target.Name, payloadURL, "no news literal in payload")
	}

	repaired := RepairMojibake(literal)
	e.logger.Debug().
		Str("target", target.Name).
		Str("url", payloadURL).
		Int("literal_length", len(repaired)).
		Bool("repaired", repaired != literal).
		Msg("News literal extracted")

	text, err := NormalizeFragment(repaired)
	if err != nil {
		return "", &ExtractionError{Kind: KindParse, TargetName: target.Name, URL: payloadURL, Reason: "could not parse payload markup", Err: err}
	}
	return text, nil
}

// discoverAsset fetches the loader page and resolves the script asset it names.
func (e *Extractor) discoverAsset(ctx context.Context, target models.Target) (string, error) {
	pattern := target.AssetPattern
	if pattern == "" {
		pattern = DefaultAssetPathPattern
	}
	assetRegex, err := regexp.Compile(pattern)
	if err != nil {
		return "", &ExtractionError{Kind: KindParse, TargetName: target.Name, URL: target.URL, Reason: "invalid asset pattern", Err: err}
	}

	resp, err := e.fetcher.Get(ctx, target.URL, target.Headers)
	if err != nil {
		return "", newTransportError(target.Name, target.URL, err)
	}

	loader, err := resp.ApparentText()
	if err != nil {
		return "", &ExtractionError{Kind: KindParse, TargetName: target.Name, URL: target.URL, Reason: "could not decode loader page", Err: err}
	}

	assetPath := assetRegex.FindString(loader)
	if assetPath == "" {
		return "", newParseError(target.Name, target.URL, "no asset path matches "+pattern)
	}

	assetURL, err := urlhandler.ResolveAssetURL(target.URL, assetPath)
	if err != nil {
		return "", &ExtractionError{Kind: KindParse, TargetName: target.Name, URL: target.URL, Reason: "could not resolve asset URL", Err: err}
	}

	e.logger.Debug().Str("target", target.Name).Str("asset_url", assetURL).Msg("Discovered payload asset")
	return assetURL, nil
}
