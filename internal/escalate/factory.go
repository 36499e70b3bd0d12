package escalate

import (
	"fmt"
	"io"
)

// Config selects and configures escalation backends
type Config struct {
	Backends     []string
	SlackWebhook string
	WebhookURL   string

	// TerminalWriter redirects the terminal backend (default: os.Stderr)
	TerminalWriter io.Writer
}

func (cfg Config) terminal() *Terminal {
	if cfg.TerminalWriter != nil {
		return NewTerminalWithWriter(cfg.TerminalWriter)
	}
	return NewTerminal()
}

func (cfg Config) backend(name string) (Escalator, error) {
	switch name {
	case BackendTerminal:
		return cfg.terminal(), nil
	case BackendSlack:
		if cfg.SlackWebhook == "" {
			return nil, fmt.Errorf("slack backend requires webhook URL")
		}
		return NewSlack(cfg.SlackWebhook), nil
	case BackendWebhook:
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("webhook backend requires URL")
		}
		return NewWebhook(cfg.WebhookURL), nil
	default:
		return nil, fmt.Errorf("unknown escalation backend: %s", name)
	}
}

// FromConfig builds the configured backends. No backends means terminal;
// a backend listed twice is created once.
func FromConfig(cfg Config) (Escalator, error) {
	var escalators []Escalator
	seen := make(map[string]bool, len(cfg.Backends))

	for _, name := range cfg.Backends {
		if seen[name] {
			continue
		}
		seen[name] = true

		esc, err := cfg.backend(name)
		if err != nil {
			return nil, err
		}
		escalators = append(escalators, esc)
	}

	switch len(escalators) {
	case 0:
		return cfg.terminal(), nil
	case 1:
		return escalators[0], nil
	default:
		return NewMulti(escalators...), nil
	}
}
