package events

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single occurrence in the monitor lifecycle
type Event struct {
	// Time is when the event occurred (set by bus on emit)
	Time time.Time `json:"time"`

	// Type identifies what happened
	Type EventType `json:"type"`

	// Job is the job source URL this event relates to (empty for monitor events)
	Job string `json:"job,omitempty"`

	// Cycle is the poll cycle id (zero if not cycle-related)
	Cycle uint64 `json:"cycle,omitempty"`

	// Payload contains event-specific data (type varies by event)
	Payload any `json:"payload,omitempty"`

	// Error contains error message if this is a failure event
	Error string `json:"error,omitempty"`
}

// EventType is a string constant identifying the event category
type EventType string

// Monitor lifecycle events
const (
	MonitorStarted  EventType = "monitor.started"
	MonitorStopped  EventType = "monitor.stopped"
	IntervalChanged EventType = "monitor.interval.changed"
	SourceChanged   EventType = "monitor.source.changed"
)

// Poll cycle events
const (
	CycleStarted EventType = "cycle.started"
	CycleSkipped EventType = "cycle.skipped"
	CycleIdle    EventType = "cycle.idle" // no endpoints configured
	CycleSettled EventType = "cycle.settled"
)

// Job fetch events
const (
	JobFetched     EventType = "job.fetched"
	JobFetchFailed EventType = "job.fetch.failed"
	JobStale       EventType = "job.stale" // result arrived for a superseded cycle
)

// Status events
const (
	// StatusPublished is emitted once per cycle on a decisive aggregate
	// Payload: monitor.Update
	StatusPublished EventType = "status.published"

	// StatusChanged is emitted when the published status differs from the last one
	// Payload: monitor.Update
	StatusChanged EventType = "status.changed"
)

// NewEvent creates an event with the given type and job
func NewEvent(eventType EventType, job string) Event {
	return Event{
		Type: eventType,
		Job:  job,
	}
}

// WithCycle returns a copy of the event with the cycle id set
func (e Event) WithCycle(cycle uint64) Event {
	e.Cycle = cycle
	return e
}

// WithPayload returns a copy of the event with the payload set
func (e Event) WithPayload(payload any) Event {
	e.Payload = payload
	return e
}

// WithError returns a copy of the event with the error message set
func (e Event) WithError(err error) Event {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// IsFailure returns true if this is a failure event type
func (e Event) IsFailure() bool {
	return strings.HasSuffix(string(e.Type), ".failed")
}

// String returns a human-readable representation of the event
func (e Event) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", e.Type))

	if e.Job != "" {
		parts = append(parts, e.Job)
	}

	if e.Cycle != 0 {
		parts = append(parts, fmt.Sprintf("cycle=#%d", e.Cycle))
	}

	if e.Error != "" {
		parts = append(parts, fmt.Sprintf("error=%q", e.Error))
	}

	return strings.Join(parts, " ")
}
