package cli

import (
	"fmt"
	"io"

	"github.com/RevCBH/buildlight/internal/config"
	"github.com/RevCBH/buildlight/internal/escalate"
	"github.com/RevCBH/buildlight/internal/events"
	"github.com/RevCBH/buildlight/internal/monitor"
)

// MonitorDeps are the runtime collaborators of a wired monitor
type MonitorDeps struct {
	// Presenter receives published updates (optional)
	Presenter monitor.Presenter

	// Bus receives lifecycle events (optional)
	Bus *events.Bus

	// NoticeWriter receives terminal notifications (default: os.Stderr)
	NoticeWriter io.Writer
}

// WireMonitor assembles a monitor from configuration
func (a *App) WireMonitor(cfg *config.Config, deps MonitorDeps) (*monitor.Monitor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	timeout, err := cfg.FetchTimeoutDuration()
	if err != nil {
		return nil, fmt.Errorf("invalid fetch timeout: %w", err)
	}

	escCfg := cfg.Escalation()
	escCfg.TerminalWriter = deps.NoticeWriter
	esc, err := escalate.FromConfig(escCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifier: %w", err)
	}

	return monitor.New(monitor.Config{
		Interval:     cfg.Interval,
		JobSource:    cfg.JobURL,
		FetchTimeout: timeout,
		Fetcher:      a.fetcher,
		Presenter:    deps.Presenter,
		Escalator:    esc,
		Bus:          deps.Bus,
	}), nil
}
