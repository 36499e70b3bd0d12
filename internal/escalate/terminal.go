package escalate

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Terminal prints escalations as an indented block with a severity marker
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal creates a terminal escalator writing to stderr
func NewTerminal() *Terminal {
	return &Terminal{w: os.Stderr}
}

// NewTerminalWithWriter creates a terminal escalator writing to w
func NewTerminalWithWriter(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

var terminalMarker = map[Severity]string{
	SeverityCritical: "🚨",
	SeverityWarning:  "⚠️ ",
	SeverityInfo:     "ℹ️ ",
}

// Escalate writes the escalation
func (t *Terminal) Escalate(ctx context.Context, e Escalation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	marker, ok := terminalMarker[e.Severity]
	if !ok {
		marker = terminalMarker[SeverityInfo]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s [%s] %s\n", marker, e.Severity, e.Title)
	if e.Job != "" {
		fmt.Fprintf(&b, "   Job: %s\n", e.Job)
	}
	fmt.Fprintf(&b, "   %s\n", e.Message)
	for _, k := range e.contextKeys() {
		fmt.Fprintf(&b, "   %s: %s\n", k, e.Context[k])
	}

	// One write per escalation so concurrent output never interleaves
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.w, b.String())
	return err
}

// Name returns "terminal"
func (t *Terminal) Name() string {
	return BackendTerminal
}
