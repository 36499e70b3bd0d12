package escalate

import (
	"context"
	"fmt"
	"net/http"
)

// Slack posts escalations to a Slack incoming-webhook URL
type Slack struct {
	webhookURL string
	client     *http.Client
}

// NewSlack creates a Slack escalator with default HTTP client
func NewSlack(webhookURL string) *Slack {
	return NewSlackWithClient(webhookURL, defaultHTTPClient())
}

// NewSlackWithClient creates a Slack escalator with custom HTTP client
func NewSlackWithClient(webhookURL string, client *http.Client) *Slack {
	return &Slack{webhookURL: webhookURL, client: client}
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackMessage struct {
	Text   string       `json:"text"` // notification fallback
	Blocks []slackBlock `json:"blocks"`
}

var slackEmoji = map[Severity]string{
	SeverityInfo:     ":information_source:",
	SeverityWarning:  ":warning:",
	SeverityCritical: ":rotating_light:",
}

// slackMessageFor renders e as a section block plus an optional context block
func slackMessageFor(e Escalation) slackMessage {
	fallback := slackEmoji[e.Severity] + " " + e.Title
	section := fmt.Sprintf("*%s*\n%s", e.Title, e.Message)
	if e.Job != "" {
		fallback = fmt.Sprintf("%s *[%s]* %s", slackEmoji[e.Severity], e.Job, e.Title)
		section = fmt.Sprintf("*%s*\n%s\n<%s|open job>", e.Title, e.Message, e.Job)
	}

	msg := slackMessage{
		Text: fallback,
		Blocks: []slackBlock{{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: section},
		}},
	}

	if keys := e.contextKeys(); len(keys) > 0 {
		ctxBlock := slackBlock{Type: "context"}
		for _, k := range keys {
			ctxBlock.Elements = append(ctxBlock.Elements, slackText{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*%s:* %s", k, e.Context[k]),
			})
		}
		msg.Blocks = append(msg.Blocks, ctxBlock)
	}
	return msg
}

// Escalate posts the escalation to Slack
func (s *Slack) Escalate(ctx context.Context, e Escalation) error {
	return postJSON(ctx, s.client, s.webhookURL, "slack webhook", slackMessageFor(e))
}

// Name returns "slack"
func (s *Slack) Name() string {
	return BackendSlack
}
