package jenkins

// Result values Jenkins reports for a finished build
const (
	ResultSuccess  = "SUCCESS"
	ResultFailure  = "FAILURE"
	ResultUnstable = "UNSTABLE"
	ResultAborted  = "ABORTED"
	ResultNotBuilt = "NOT_BUILT"
)

// Build is the subset of the lastCompletedBuild payload the monitor reads.
// Only Result and Description influence aggregation; the rest is carried
// through for display.
type Build struct {
	// Result is empty while Jenkins reports null (build still running)
	Result string `json:"result"`

	// Description is free text; the claim plugin writes its marker here
	Description string `json:"description"`

	Number          int    `json:"number,omitempty"`
	URL             string `json:"url,omitempty"`
	FullDisplayName string `json:"fullDisplayName,omitempty"`
	Building        bool   `json:"building,omitempty"`

	// Timestamp and Duration are milliseconds, as Jenkins sends them
	Timestamp int64 `json:"timestamp,omitempty"`
	Duration  int64 `json:"duration,omitempty"`
}

// HasResult reports whether the build carries a result value
func (b *Build) HasResult() bool {
	return b != nil && b.Result != ""
}
