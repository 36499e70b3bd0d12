package monitor

import "time"

// Update is handed to presenters once per cycle on a decisive aggregate
type Update struct {
	Cycle     uint64      `json:"cycle"`
	Status    Status      `json:"status"`
	Previous  Status      `json:"previous"`
	Changed   bool        `json:"changed"`
	Attention bool        `json:"attention"`
	Results   []JobResult `json:"results"`
	At        time.Time   `json:"at"`
}

// OpenTargets returns the build pages of jobs matching the update's status
func (u Update) OpenTargets() []string {
	return OpenTargets(u.Status, u.Results)
}

// Presenter consumes published updates.
// Present must not call back into the Monitor's mutating methods.
type Presenter interface {
	Present(u Update)
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(Update)

// Present calls f(u)
func (f PresenterFunc) Present(u Update) {
	f(u)
}

type presenters []Presenter

func (ps presenters) Present(u Update) {
	for _, p := range ps {
		p.Present(u)
	}
}

// Presenters fans an update out to every non-nil presenter, in order
func Presenters(ps ...Presenter) Presenter {
	var out presenters
	for _, p := range ps {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
