package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.Done || m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderLight())
	b.WriteString("\n\n")

	b.WriteString(m.renderJobs())

	if m.ShowLogs {
		b.WriteString(m.renderLogs())
	}

	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with interval and last check time
func (m *Model) renderHeader() string {
	interval := fmt.Sprintf("every %ds", m.Interval)

	checked := "waiting for first result"
	if !m.LastUpdate.IsZero() {
		checked = "checked " + humanize.RelTime(m.LastUpdate, m.now(), "ago", "from now")
	}
	if m.Checking {
		checked += " " + IconActive
	}

	return fmt.Sprintf("%s  %s  %s",
		m.Styles.Title.Render("Build Light"),
		m.Styles.Interval.Render(interval),
		m.Styles.Timer.Render(checked),
	)
}

// renderLight renders the colored status block
func (m *Model) renderLight() string {
	label := string(m.Status)
	if m.Loading {
		label = "LOADING"
	}
	if m.Attention {
		label += "  (unclaimed)"
	}

	dim := m.Attention && !m.BlinkOn
	width := 40
	if m.Width > 0 && m.Width-4 < width {
		width = max(m.Width-4, len(label)+8)
	}
	return m.Styles.Light(m.Status, dim).Width(width).Render(label)
}

// renderJobs renders one line per monitored job
func (m *Model) renderJobs() string {
	if len(m.Jobs) == 0 && len(m.Errors) == 0 {
		return "  No job results yet\n"
	}

	var b strings.Builder
	for _, job := range m.Jobs {
		style, icon := m.Styles.Job(job.Result())
		line := fmt.Sprintf("  %s %s", style.Render(icon), m.Styles.JobName.Render(job.Endpoint.SourceURL))
		if job.Data != nil {
			if job.Data.Number > 0 {
				line += fmt.Sprintf(" #%d", job.Data.Number)
			}
			line += " " + style.Render(job.Result())
			if job.Data.Description != "" {
				line += "  " + m.Styles.JobDetail.Render(job.Data.Description)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	failed := make([]string, 0, len(m.Errors))
	for job := range m.Errors {
		failed = append(failed, job)
	}
	sort.Strings(failed)
	for _, job := range failed {
		fmt.Fprintf(&b, "  %s %s %s\n",
			m.Styles.JobError.Render(IconFailed),
			m.Styles.JobName.Render(job),
			m.Styles.JobError.Render(m.Errors[job]),
		)
	}

	return b.String()
}

// renderLogs renders the tail of captured log output
func (m *Model) renderLogs() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.Styles.LogTitle.Render("  Logs"))
	b.WriteString("\n")

	lines := m.LogLines
	limit := 10
	if m.Height > 20 {
		limit = m.Height - 16
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	for _, line := range lines {
		b.WriteString("  ")
		b.WriteString(m.Styles.LogLine.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// renderFooter renders the notice and help text
func (m *Model) renderFooter() string {
	keys := []string{
		m.Styles.FooterKey.Render("q") + " quit",
		m.Styles.FooterKey.Render("r") + " refresh",
		m.Styles.FooterKey.Render("o") + " open",
		m.Styles.FooterKey.Render("l") + " logs",
	}
	footer := m.Styles.Footer.Render("  " + strings.Join(keys, "  "))
	if m.Notice != "" {
		footer = "\n  " + m.Styles.Notice.Render(m.Notice) + footer
	}
	return footer
}
