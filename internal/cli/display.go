package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/RevCBH/buildlight/internal/cli/tui"
	"github.com/RevCBH/buildlight/internal/monitor"
)

// DisplayConfig controls status output formatting
type DisplayConfig struct {
	UseColor bool             // Enable ANSI color codes
	Now      func() time.Time // Reference time for "ago" (default: time.Now)
}

func (cfg DisplayConfig) now() time.Time {
	if cfg.Now != nil {
		return cfg.Now()
	}
	return time.Now()
}

// FormatUpdate formats a full update: the aggregate line then one line per job
func FormatUpdate(u monitor.Update, cfg DisplayConfig) string {
	styles := tui.DefaultStyles()
	var b strings.Builder

	status := string(u.Status)
	if cfg.UseColor {
		status = styles.Light(u.Status, false).Padding(0, 1).Render(status)
	}
	fmt.Fprintf(&b, "%s  cycle #%d, checked %s\n", status, u.Cycle,
		humanize.RelTime(u.At, cfg.now(), "ago", "from now"))

	for _, r := range u.Results {
		b.WriteString(FormatJobLine(r, cfg))
		b.WriteString("\n")
	}

	if u.Attention {
		b.WriteString("  → failure is unclaimed\n")
	}

	return b.String()
}

// FormatJobLine formats a single job result
func FormatJobLine(r monitor.JobResult, cfg DisplayConfig) string {
	style, icon := tui.DefaultStyles().Job(r.Result())
	if cfg.UseColor {
		icon = style.Render(icon)
	}

	line := fmt.Sprintf("  %s %s", icon, r.Endpoint.SourceURL)
	if r.Data == nil {
		return line + " pending"
	}
	if r.Data.Number > 0 {
		line += fmt.Sprintf(" #%d", r.Data.Number)
	}
	line += " " + r.Result()
	if r.Data.Description != "" {
		line += "  " + r.Data.Description
	}
	return line
}

// FormatSummaryLine formats one update as a single log-style line
func FormatSummaryLine(u monitor.Update) string {
	line := fmt.Sprintf("%s %s cycle=#%d", u.At.Format("15:04:05"), u.Status, u.Cycle)
	if u.Changed {
		line += fmt.Sprintf(" (was %s)", u.Previous)
	}
	if u.Attention {
		line += " blink"
	}
	if targets := u.OpenTargets(); len(targets) > 0 && u.Status != monitor.StatusSuccess {
		line += " " + strings.Join(targets, " ")
	}
	return line
}

// linePresenter prints one summary line per published update
type linePresenter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLinePresenter creates a presenter writing summary lines to w
func NewLinePresenter(w io.Writer) monitor.Presenter {
	return &linePresenter{w: w}
}

func (p *linePresenter) Present(u monitor.Update) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, FormatSummaryLine(u))
}
