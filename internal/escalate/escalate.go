// Package escalate delivers user-visible notifications about problems the
// monitor cannot fix itself, such as Jenkins being unreachable.
package escalate

import (
	"context"
	"sort"
)

// Severity indicates how urgent the escalation is
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Backend names accepted by FromConfig
const (
	BackendTerminal = "terminal"
	BackendSlack    = "slack"
	BackendWebhook  = "webhook"
)

// Escalation is one notification
type Escalation struct {
	Severity Severity
	Job      string            // job source URL, empty when not job specific
	Title    string            // one line
	Message  string
	Context  map[string]string // extra key/value detail, e.g. the fetch error
}

// contextKeys returns the context keys in a stable order
func (e Escalation) contextKeys() []string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Escalator delivers escalations. Implementations respect ctx cancellation.
type Escalator interface {
	Escalate(ctx context.Context, e Escalation) error

	// Name identifies the backend in logs and errors
	Name() string
}

// Func adapts a plain function to the Escalator interface
type Func func(ctx context.Context, e Escalation) error

// Escalate calls f
func (f Func) Escalate(ctx context.Context, e Escalation) error {
	return f(ctx, e)
}

// Name returns "func"
func (f Func) Name() string {
	return "func"
}
