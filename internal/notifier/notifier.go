package notifier

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/aleister1102/newswatch/internal/config"
	"github.com/aleister1102/newswatch/internal/differ"
	"github.com/rs/zerolog"
)

const redactedCredential = "***"

// WebhookNotifier posts change alerts to a chat webhook. The webhook address
// embeds a secret credential, so the credential never appears in logs or in
// returned errors.
type WebhookNotifier struct {
	cfg        config.NotificationConfig
	credential string
	poster     Poster
	logger     zerolog.Logger
}

// NewWebhookNotifier creates a notifier. An empty credential yields a disabled
// notifier whose Notify is a no-op.
func NewWebhookNotifier(cfg config.NotificationConfig, credential string, logger zerolog.Logger) *WebhookNotifier {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultNotificationTimeoutSecs * time.Second
	}
	return NewWebhookNotifierWithPoster(cfg, credential, newRestyPoster(timeout), logger)
}

// NewWebhookNotifierWithPoster creates a notifier that delivers through poster.
func NewWebhookNotifierWithPoster(cfg config.NotificationConfig, credential string, poster Poster, logger zerolog.Logger) *WebhookNotifier {
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = config.DefaultMaxMessageLength
	}

	moduleLogger := logger.With().Str("component", "WebhookNotifier").Logger()
	if credential == "" {
		moduleLogger.Info().Str("credential_env", cfg.CredentialEnv).Msg("Webhook credential not set, notifications disabled")
	}

	return &WebhookNotifier{
		cfg:        cfg,
		credential: credential,
		poster:     poster,
		logger:     moduleLogger,
	}
}

// Enabled reports whether Notify will actually send anything.
func (n *WebhookNotifier) Enabled() bool {
	return n.credential != "" && n.cfg.WebhookURL != ""
}

// Notify sends one message for a changed target. It returns nil without any
// request when the notifier is disabled.
func (n *WebhookNotifier) Notify(ctx context.Context, targetName, diffText string, stats differ.DiffStatistics) error {
	if !n.Enabled() {
		n.logger.Debug().Str("target", targetName).Msg("Notifications disabled, skipping")
		return nil
	}

	message := FormatMessage(targetName, diffText, stats, n.cfg.MaxMessageLength)
	payload := NewWebhookPayloadBuilder().
		WithContent(message.Body).
		WithUsername(n.cfg.Username).
		Build()

	endpoint := strings.ReplaceAll(n.cfg.WebhookURL, config.WebhookKeyPlaceholder, n.credential)

	statusCode, err := n.poster.PostJSON(ctx, endpoint, payload)
	if err != nil {
		redacted := n.redact(err)
		n.logger.Error().Err(redacted).Str("target", targetName).Msg("Failed to send notification")
		return redacted
	}

	n.logger.Info().
		Str("target", targetName).
		Int("status_code", statusCode).
		Int("message_length", len([]rune(message.Body))).
		Msg("Notification sent")
	return nil
}

// redact rewrites err so that neither the raw nor the URL-escaped credential
// survives in its text.
func (n *WebhookNotifier) redact(err error) error {
	msg := err.Error()
	for _, form := range []string{n.credential, url.PathEscape(n.credential), url.QueryEscape(n.credential)} {
		if form != "" {
			msg = strings.ReplaceAll(msg, form, redactedCredential)
		}
	}

	var httpErr *common.HTTPError
	if errors.As(err, &httpErr) {
		return &DeliveryError{StatusCode: httpErr.StatusCode, Message: msg}
	}
	return &DeliveryError{Message: msg}
}

// DeliveryError reports a failed webhook post with the credential removed.
// StatusCode is zero when no response was received.
type DeliveryError struct {
	StatusCode int
	Message    string
}

func (e *DeliveryError) Error() string {
	return "notification delivery failed: " + e.Message
}
