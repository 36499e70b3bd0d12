package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/RevCBH/buildlight/internal/jenkins"
	"github.com/RevCBH/buildlight/internal/monitor"
)

// Styles contains all lipgloss styles for the TUI
type Styles struct {
	// Header styling
	Title    lipgloss.Style
	Timer    lipgloss.Style
	Interval lipgloss.Style

	// Light colors by status
	LightSuccess lipgloss.Style
	LightFailure lipgloss.Style
	LightUnrest  lipgloss.Style
	LightUnknown lipgloss.Style
	LightDim     lipgloss.Style

	// Job list styling
	JobSuccess lipgloss.Style
	JobFailure lipgloss.Style
	JobPending lipgloss.Style
	JobName    lipgloss.Style
	JobDetail  lipgloss.Style
	JobError   lipgloss.Style

	// Footer styling
	Footer    lipgloss.Style
	FooterKey lipgloss.Style
	Notice    lipgloss.Style

	// Log area styling
	LogTitle lipgloss.Style
	LogLine  lipgloss.Style
}

func light(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color(bg)).
		Padding(1, 4).
		Align(lipgloss.Center)
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Timer:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Interval: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		LightSuccess: light("42"),
		LightFailure: light("196"),
		LightUnrest:  light("214"),
		LightUnknown: light("245"),
		LightDim:     light("236").Foreground(lipgloss.Color("240")),

		JobSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		JobFailure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		JobPending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		JobName:    lipgloss.NewStyle().Bold(true),
		JobDetail:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),
		JobError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Italic(true),

		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
		FooterKey: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),

		LogTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true),
		LogLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Light returns the style for the light in the given status.
// dim is the "off" phase of a blink.
func (s Styles) Light(status monitor.Status, dim bool) lipgloss.Style {
	if dim {
		return s.LightDim
	}
	switch status {
	case monitor.StatusSuccess:
		return s.LightSuccess
	case jenkins.ResultFailure:
		return s.LightFailure
	case jenkins.ResultUnstable:
		return s.LightUnrest
	default:
		return s.LightUnknown
	}
}

// Job returns the style and icon for a single job result
func (s Styles) Job(result string) (lipgloss.Style, string) {
	switch result {
	case jenkins.ResultSuccess:
		return s.JobSuccess, IconSuccess
	case "":
		return s.JobPending, IconPending
	default:
		return s.JobFailure, IconFailed
	}
}

// Icons used in the TUI
const (
	IconSuccess = "✓"
	IconFailed  = "✗"
	IconPending = "○"
	IconActive  = "●"
)
