package monitor

import "time"

// Ticker is the repeating timer driving poll cycles
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory arms a new Ticker firing every d
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }

func (t timeTicker) Stop() { t.t.Stop() }
