package monitor

// Gate suppresses repeated transport-error notifications during an outage.
// Not safe for concurrent use; the Monitor guards it with its own lock.
type Gate struct {
	notified bool
}

// Fail records a fetch failure and reports whether it should be surfaced
func (g *Gate) Fail() bool {
	if g.notified {
		return false
	}
	g.notified = true
	return true
}

// Reset re-arms the gate after any successful fetch
func (g *Gate) Reset() {
	g.notified = false
}
