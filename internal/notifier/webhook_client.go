package notifier

import (
	"context"
	"time"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/go-resty/resty/v2"
)

const maxErrorBodySnippet = 512

// Poster sends a JSON document to an endpoint and returns the response status.
// A non-2xx status is reported as *common.HTTPError.
type Poster interface {
	PostJSON(ctx context.Context, rawURL string, payload interface{}) (int, error)
}

// restyPoster delivers webhook payloads with a dedicated resty client.
type restyPoster struct {
	client *resty.Client
}

func newRestyPoster(timeout time.Duration) *restyPoster {
	client := resty.New()
	client.SetTimeout(timeout)
	// Webhook endpoints answer directly; a redirect means a wrong URL.
	client.SetRedirectPolicy(resty.NoRedirectPolicy())
	return &restyPoster{client: client}
}

func (p *restyPoster) PostJSON(ctx context.Context, rawURL string, payload interface{}) (int, error) {
	res, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(rawURL)
	if err != nil {
		return 0, common.NewNetworkError(rawURL, "webhook request failed", err)
	}

	if !res.IsSuccess() {
		body := res.Body()
		if len(body) > maxErrorBodySnippet {
			body = body[:maxErrorBodySnippet]
		}
		return res.StatusCode(), common.NewHTTPErrorWithURL(res.StatusCode(), string(body), rawURL)
	}
	return res.StatusCode(), nil
}
