package monitor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RevCBH/buildlight/internal/escalate"
	"github.com/RevCBH/buildlight/internal/jenkins"
)

const (
	jobA = "http://ci/job/a"
	jobB = "http://ci/job/b"
)

func queryURL(base string) string {
	return base + jenkins.StatusPath
}

// fakeFetcher serves canned builds and errors keyed by query URL
type fakeFetcher struct {
	mu     sync.Mutex
	builds map[string]*jenkins.Build
	errs   map[string]error
	gates  map[string]chan struct{}
	calls  map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		builds: make(map[string]*jenkins.Build),
		errs:   make(map[string]error),
		gates:  make(map[string]chan struct{}),
		calls:  make(map[string]int),
	}
}

func (f *fakeFetcher) set(base, result, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builds[queryURL(base)] = &jenkins.Build{Result: result, Description: description}
	delete(f.errs, queryURL(base))
}

func (f *fakeFetcher) fail(base string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[queryURL(base)] = err
}

// block makes fetches for base wait until the returned func is called
func (f *fakeFetcher) block(base string) func() {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[queryURL(base)] = gate
	f.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.gates, queryURL(base))
			f.mu.Unlock()
			close(gate)
		})
	}
}

func (f *fakeFetcher) callCount(base string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[queryURL(base)]
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*jenkins.Build, error) {
	f.mu.Lock()
	f.calls[url]++
	gate := f.gates[url]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	b, ok := f.builds[url]
	if !ok {
		return nil, errors.New("no build configured")
	}
	build := *b
	return &build, nil
}

// fakeTicker fires only when the test sends on c
type fakeTicker struct {
	d       time.Duration
	c       chan time.Time
	stopped atomic.Bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }
func (t *fakeTicker) Stop()               { t.stopped.Store(true) }

type fakeClock struct {
	created chan *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{created: make(chan *fakeTicker, 16)}
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	t := &fakeTicker{d: d, c: make(chan time.Time, 1)}
	c.created <- t
	return t
}

func (c *fakeClock) next(t *testing.T) *fakeTicker {
	t.Helper()
	select {
	case tk := <-c.created:
		return tk
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ticker")
		return nil
	}
}

// recorder is a Presenter collecting updates
type recorder struct {
	updates chan Update
}

func newRecorder() *recorder {
	return &recorder{updates: make(chan Update, 32)}
}

func (r *recorder) Present(u Update) {
	r.updates <- u
}

func (r *recorder) next(t *testing.T) Update {
	t.Helper()
	select {
	case u := <-r.updates:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		return Update{}
	}
}

func (r *recorder) none(t *testing.T) {
	t.Helper()
	select {
	case u := <-r.updates:
		t.Fatalf("unexpected update: %+v", u)
	case <-time.After(50 * time.Millisecond):
	}
}

// countingEscalator records escalations
type countingEscalator struct {
	mu   sync.Mutex
	sent []escalate.Escalation
}

func (c *countingEscalator) Escalate(ctx context.Context, e escalate.Escalation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, e)
	return nil
}

func (c *countingEscalator) Name() string { return "counting" }

func (c *countingEscalator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

// slowEscalator takes a while to deliver
type slowEscalator struct {
	delay     time.Duration
	delivered atomic.Int32
}

func (s *slowEscalator) Escalate(ctx context.Context, e escalate.Escalation) error {
	time.Sleep(s.delay)
	s.delivered.Add(1)
	return nil
}

func (s *slowEscalator) Name() string { return "slow" }

func result(base, res, description string) JobResult {
	ep := jenkins.ResolveEndpoints(base)[0]
	if res == "" && description == "" {
		return JobResult{Endpoint: ep}
	}
	return JobResult{Endpoint: ep, Data: &jenkins.Build{Result: res, Description: description}}
}
