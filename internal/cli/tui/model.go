package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RevCBH/buildlight/internal/monitor"
)

// BlinkInterval is the half-period of the attention blink
const BlinkInterval = 500 * time.Millisecond

// Actions are the monitor operations bound to keys
type Actions struct {
	// Refresh starts a poll cycle now (r)
	Refresh func()

	// Open opens the build pages matching the current status (o)
	Open func() ([]string, error)
}

// Model is the bubbletea model for the light
type Model struct {
	// Configuration
	Interval  int
	JobSource string
	Styles    Styles
	Actions   Actions

	// Light state
	Status     monitor.Status
	Attention  bool
	Loading    bool
	Jobs       []monitor.JobResult
	Cycle      uint64
	LastUpdate time.Time
	BlinkOn    bool
	Checking   bool

	// Fetch problems since the last publish, keyed by job
	Errors map[string]string

	Notice   string
	LogLines []string
	LogLimit int
	ShowLogs bool
	Width    int
	Height   int

	// Control
	Quitting bool
	Done     bool

	now func() time.Time
}

// NewModel creates a model that shows the loading light until the first update
func NewModel(interval int, jobSource string, actions Actions) *Model {
	return &Model{
		Interval:  interval,
		JobSource: jobSource,
		Styles:    DefaultStyles(),
		Actions:   actions,
		Status:    monitor.StatusIncomplete,
		Loading:   true,
		BlinkOn:   true,
		Errors:    make(map[string]string),
		LogLimit:  500,
		now:       time.Now,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		blinkCmd(),
	)
}

// TickMsg is sent every second to refresh relative times
type TickMsg time.Time

// tickCmd returns a command that sends TickMsg every second
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// BlinkMsg toggles the light while attention is set
type BlinkMsg time.Time

func blinkCmd() tea.Cmd {
	return tea.Tick(BlinkInterval, func(t time.Time) tea.Msg {
		return BlinkMsg(t)
	})
}

// DoneMsg signals the TUI should exit
type DoneMsg struct{}

// QuitMsg signals the user requested quit (q or Ctrl+C)
type QuitMsg struct{}

// StatusMsg carries a published update
type StatusMsg struct {
	Update monitor.Update
}

// CycleStartedMsg indicates a poll cycle began
type CycleStartedMsg struct {
	Cycle uint64
}

// FetchFailedMsg indicates one job could not be fetched
type FetchFailedMsg struct {
	Job   string
	Error string
}

// IntervalMsg indicates the poll interval changed
type IntervalMsg struct {
	Seconds int
}

// SourceMsg indicates the job list changed
type SourceMsg struct {
	JobSource string
}

// OpenedMsg reports the result of the open action
type OpenedMsg struct {
	URLs []string
	Err  error
}
