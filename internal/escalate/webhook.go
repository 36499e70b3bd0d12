package escalate

import (
	"context"
	"net/http"
	"time"
)

// WebhookPayload is the JSON body POSTed to generic webhook endpoints
type WebhookPayload struct {
	Source   string            `json:"source"`
	Severity Severity          `json:"severity"`
	Job      string            `json:"job,omitempty"`
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Context  map[string]string `json:"context,omitempty"`
	SentAt   time.Time         `json:"sent_at"`
}

// Webhook posts escalations to an HTTP endpoint as JSON
type Webhook struct {
	url    string
	client *http.Client
	now    func() time.Time
}

// NewWebhook creates a Webhook escalator with default HTTP client
func NewWebhook(url string) *Webhook {
	return NewWebhookWithClient(url, defaultHTTPClient())
}

// NewWebhookWithClient creates a Webhook escalator with custom HTTP client
func NewWebhookWithClient(url string, client *http.Client) *Webhook {
	return &Webhook{url: url, client: client, now: time.Now}
}

// Escalate posts the escalation as JSON to the webhook URL
func (w *Webhook) Escalate(ctx context.Context, e Escalation) error {
	return postJSON(ctx, w.client, w.url, BackendWebhook, WebhookPayload{
		Source:   userAgent,
		Severity: e.Severity,
		Job:      e.Job,
		Title:    e.Title,
		Message:  e.Message,
		Context:  e.Context,
		SentAt:   w.now().UTC(),
	})
}

// Name returns "webhook"
func (w *Webhook) Name() string {
	return BackendWebhook
}
