package web

import (
	"sync"

	"github.com/RevCBH/buildlight/internal/monitor"
)

// Store holds the last published update.
// It is safe for concurrent access.
type Store struct {
	mu     sync.RWMutex
	update monitor.Update
	loaded bool
}

// NewStore creates an empty store in loading state.
func NewStore() *Store {
	return &Store{}
}

// Apply records a published update.
func (s *Store) Apply(u monitor.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.update = u
	s.loaded = true
}

// Snapshot returns the current state as a StatusSnapshot.
// Thread-safe for concurrent reads.
func (s *Store) Snapshot() *StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return &StatusSnapshot{
			Loading:     true,
			Status:      string(monitor.StatusIncomplete),
			Jobs:        []JobView{},
			OpenTargets: []string{},
		}
	}

	jobs := make([]JobView, 0, len(s.update.Results))
	for _, r := range s.update.Results {
		job := JobView{
			Source:   r.Endpoint.SourceURL,
			BuildURL: r.Endpoint.BuildURL(),
			Pending:  r.Data == nil,
		}
		if r.Data != nil {
			job.Result = r.Data.Result
			job.Description = r.Data.Description
			job.Number = r.Data.Number
		}
		jobs = append(jobs, job)
	}

	targets := s.update.OpenTargets()
	if targets == nil {
		targets = []string{}
	}

	return &StatusSnapshot{
		Status:      string(s.update.Status),
		Attention:   s.update.Attention,
		Cycle:       s.update.Cycle,
		UpdatedAt:   s.update.At,
		Jobs:        jobs,
		OpenTargets: targets,
	}
}

// OpenTargets returns the build pages matching the current status.
func (s *Store) OpenTargets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil
	}
	return s.update.OpenTargets()
}
