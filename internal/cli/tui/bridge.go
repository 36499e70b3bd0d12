package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RevCBH/buildlight/internal/events"
	"github.com/RevCBH/buildlight/internal/monitor"
)

// Sender is the part of *tea.Program the bridge needs
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge feeds the bubbletea program. Status updates arrive through
// Present, since the bus may drop events; lifecycle events come from the bus.
type Bridge struct {
	program Sender
}

// NewBridge creates a new bridge for the given program
func NewBridge(program Sender) *Bridge {
	return &Bridge{
		program: program,
	}
}

// Present implements monitor.Presenter. It blocks until the program
// accepts the update or has exited.
func (b *Bridge) Present(u monitor.Update) {
	b.program.Send(StatusMsg{Update: u})
}

// Handler returns an event handler function for the event bus
func (b *Bridge) Handler() events.Handler {
	return func(evt events.Event) {
		msg := eventToMsg(evt)
		if msg != nil {
			b.program.Send(msg)
		}
	}
}

// eventToMsg converts an events.Event to a tea.Msg
func eventToMsg(evt events.Event) tea.Msg {
	switch evt.Type {
	case events.CycleStarted:
		return CycleStartedMsg{Cycle: evt.Cycle}

	case events.JobFetchFailed:
		return FetchFailedMsg{
			Job:   evt.Job,
			Error: evt.Error,
		}

	case events.IntervalChanged:
		if payload, ok := evt.Payload.(map[string]any); ok {
			if s, ok := payload["interval_seconds"].(int); ok {
				return IntervalMsg{Seconds: s}
			}
		}
		return nil

	case events.SourceChanged:
		if payload, ok := evt.Payload.(map[string]any); ok {
			if s, ok := payload["job_source"].(string); ok {
				return SourceMsg{JobSource: s}
			}
		}
		return nil

	default:
		return nil
	}
}

// SendDone sends a DoneMsg to the program
func (b *Bridge) SendDone() {
	b.program.Send(DoneMsg{})
}

// SendQuit sends a QuitMsg to the program
func (b *Bridge) SendQuit() {
	b.program.Send(QuitMsg{})
}
