package monitor

// RunState is the scheduler's lifecycle state
type RunState string

const (
	StateStopped RunState = "stopped"
	StateRunning RunState = "running"
)

// ValidTransitions defines allowed scheduler transitions
var ValidTransitions = map[RunState][]RunState{
	StateStopped: {StateRunning},
	StateRunning: {StateStopped},
}

// CanTransition checks if a transition from -> to is valid
func CanTransition(from, to RunState) bool {
	for _, target := range ValidTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}
