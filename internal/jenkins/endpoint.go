package jenkins

import "strings"

const (
	// StatusPath addresses the last completed build of a job in JSON form
	StatusPath = "/lastCompletedBuild/api/json"

	// BuildPagePath addresses the last completed build's human page
	BuildPagePath = "/lastCompletedBuild"
)

// Endpoint is one monitored job for a single poll cycle
type Endpoint struct {
	// SourceURL is the trimmed job base URL as configured
	SourceURL string `json:"source_url"`

	// QueryURL is SourceURL plus StatusPath
	QueryURL string `json:"query_url"`
}

// BuildURL returns the page of the job's last completed build
func (e Endpoint) BuildURL() string {
	return e.SourceURL + BuildPagePath
}

// ResolveEndpoints splits a comma-separated list of job base URLs into
// endpoints, preserving order. Blank entries are skipped, so an empty
// configuration yields no endpoints at all.
func ResolveEndpoints(raw string) []Endpoint {
	parts := strings.Split(raw, ",")
	endpoints := make([]Endpoint, 0, len(parts))

	for _, part := range parts {
		base := strings.TrimRight(strings.TrimSpace(part), "/")
		if base == "" {
			continue
		}
		endpoints = append(endpoints, Endpoint{
			SourceURL: base,
			QueryURL:  base + StatusPath,
		})
	}

	return endpoints
}
