package monitor

import (
	"strings"

	"github.com/RevCBH/buildlight/internal/jenkins"
)

// Status is the aggregate status across all monitored jobs. Besides the two
// constants it can hold any literal non-success result Jenkins reports.
type Status string

const (
	// StatusIncomplete means at least one job has no result yet
	StatusIncomplete Status = "INCOMPLETE"
	// StatusSuccess means every job's last completed build succeeded
	StatusSuccess Status = jenkins.ResultSuccess
)

// ClaimMarker appears in a build description while nobody has claimed the failure
const ClaimMarker = "claim this build"

// IsDecisive reports whether s is a publishable status
func (s Status) IsDecisive() bool {
	return s != "" && s != StatusIncomplete
}

// JobResult pairs an endpoint with its fetched build for one cycle.
// Data stays nil until the fetch succeeds.
type JobResult struct {
	Endpoint jenkins.Endpoint `json:"endpoint"`
	Data     *jenkins.Build   `json:"data,omitempty"`
}

// Result returns the job's result string, or "" while pending
func (r JobResult) Result() string {
	if r.Data == nil {
		return ""
	}
	return r.Data.Result
}

// Aggregate combines results in order. Any result without data or without a
// result value makes the whole aggregate INCOMPLETE; otherwise the first
// non-success result wins; otherwise SUCCESS. No results at all is
// INCOMPLETE: there is nothing to report.
func Aggregate(results []JobResult) Status {
	if len(results) == 0 {
		return StatusIncomplete
	}

	for _, r := range results {
		if !r.Data.HasResult() {
			return StatusIncomplete
		}
	}

	for _, r := range results {
		if r.Data.Result != jenkins.ResultSuccess {
			return Status(r.Data.Result)
		}
	}

	return StatusSuccess
}

// NeedsAttention reports whether a decisive status should blink. It is false
// for SUCCESS, and false when any job either succeeded or has a description
// without the claim marker (someone already claimed it).
func NeedsAttention(status Status, results []JobResult) bool {
	if !status.IsDecisive() || status == StatusSuccess {
		return false
	}

	for _, r := range results {
		if r.Data == nil {
			continue
		}
		if r.Data.Result == jenkins.ResultSuccess || !strings.Contains(r.Data.Description, ClaimMarker) {
			return false
		}
	}

	return true
}

// OpenTargets returns the build pages of every job whose result equals status
func OpenTargets(status Status, results []JobResult) []string {
	var urls []string
	for _, r := range results {
		if r.Data != nil && r.Data.Result == string(status) {
			urls = append(urls, r.Endpoint.BuildURL())
		}
	}
	return urls
}

func cloneResults(results []JobResult) []JobResult {
	out := make([]JobResult, len(results))
	for i, r := range results {
		out[i] = r
		if r.Data != nil {
			data := *r.Data
			out[i].Data = &data
		}
	}
	return out
}
