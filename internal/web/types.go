package web

import (
	"encoding/json"
	"time"
)

// Config holds server configuration
type Config struct {
	// Addr is the HTTP listen address (default ":8080")
	Addr string
}

// Event is one SSE message sent to browsers
type Event struct {
	Type string          `json:"type"`
	Time time.Time       `json:"time"`
	Data json.RawMessage `json:"data,omitempty"`
}

// JobView is a single job as shown on the dashboard
type JobView struct {
	Source      string `json:"source"`
	BuildURL    string `json:"build_url"`
	Result      string `json:"result,omitempty"`
	Description string `json:"description,omitempty"`
	Number      int    `json:"number,omitempty"`
	Pending     bool   `json:"pending"`
}

// StatusSnapshot is the full dashboard state returned by /api/status
type StatusSnapshot struct {
	Loading     bool      `json:"loading"`
	Status      string    `json:"status"`
	Attention   bool      `json:"attention"`
	Cycle       uint64    `json:"cycle"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
	Jobs        []JobView `json:"jobs"`
	OpenTargets []string  `json:"open_targets"`
}
