package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		case "r":
			if m.Actions.Refresh != nil {
				m.Actions.Refresh()
				m.Notice = "refreshing..."
			}
		case "o":
			return m, m.openCmd()
		case "l":
			m.ShowLogs = !m.ShowLogs
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case TickMsg:
		// Continue ticking for relative time updates
		return m, tickCmd()

	case BlinkMsg:
		if m.Attention {
			m.BlinkOn = !m.BlinkOn
		} else {
			m.BlinkOn = true
		}
		return m, blinkCmd()

	case DoneMsg:
		m.Done = true
		return m, tea.Quit

	case QuitMsg:
		m.Quitting = true
		return m, tea.Quit

	case StatusMsg:
		u := msg.Update
		m.Status = u.Status
		m.Attention = u.Attention
		m.Jobs = u.Results
		m.Cycle = u.Cycle
		m.LastUpdate = u.At
		m.Loading = false
		m.Checking = false
		m.Errors = make(map[string]string)
		if !m.Attention {
			m.BlinkOn = true
		}

	case CycleStartedMsg:
		m.Checking = true

	case FetchFailedMsg:
		m.Errors[msg.Job] = msg.Error

	case IntervalMsg:
		m.Interval = msg.Seconds
		m.Notice = fmt.Sprintf("interval set to %ds", msg.Seconds)

	case SourceMsg:
		m.JobSource = msg.JobSource
		m.Notice = "job list updated"

	case OpenedMsg:
		switch {
		case msg.Err != nil:
			m.Notice = fmt.Sprintf("open failed: %v", msg.Err)
		case len(msg.URLs) == 0:
			m.Notice = "nothing to open"
		default:
			m.Notice = fmt.Sprintf("opened %d build page(s)", len(msg.URLs))
		}

	case LogMsg:
		m.LogLines = append(m.LogLines, msg.Line)
		if m.LogLimit > 0 && len(m.LogLines) > m.LogLimit {
			m.LogLines = m.LogLines[len(m.LogLines)-m.LogLimit:]
		}
	}

	return m, nil
}

func (m *Model) openCmd() tea.Cmd {
	open := m.Actions.Open
	if open == nil {
		return nil
	}
	return func() tea.Msg {
		urls, err := open()
		return OpenedMsg{URLs: urls, Err: err}
	}
}
