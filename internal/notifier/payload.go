package notifier

// WebhookPayload is the JSON body posted to the webhook endpoint.
type WebhookPayload struct {
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}

// WebhookPayloadBuilder helps in constructing WebhookPayload objects.
type WebhookPayloadBuilder struct {
	payload WebhookPayload
}

// NewWebhookPayloadBuilder creates a new instance of WebhookPayloadBuilder.
func NewWebhookPayloadBuilder() *WebhookPayloadBuilder {
	return &WebhookPayloadBuilder{}
}

// WithContent sets the message text.
func (b *WebhookPayloadBuilder) WithContent(content string) *WebhookPayloadBuilder {
	b.payload.Content = content
	return b
}

// WithUsername overrides the sender name shown by the receiving service.
func (b *WebhookPayloadBuilder) WithUsername(username string) *WebhookPayloadBuilder {
	b.payload.Username = username
	return b
}

// Build returns the constructed WebhookPayload.
func (b *WebhookPayloadBuilder) Build() WebhookPayload {
	return b.payload
}
