package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/RevCBH/buildlight/internal/escalate"
	"github.com/RevCBH/buildlight/internal/events"
	"github.com/RevCBH/buildlight/internal/jenkins"
)

// DefaultInterval is the poll interval in seconds
const DefaultInterval = 15

var (
	// ErrAlreadyRunning indicates Run was called on a running monitor
	ErrAlreadyRunning = errors.New("monitor already running")

	// ErrInvalidInterval indicates an interval below one second
	ErrInvalidInterval = errors.New("interval must be at least 1 second")

	// ErrIncomplete indicates a cycle settled without a decisive status
	ErrIncomplete = errors.New("job status incomplete")

	// ErrNoJobs indicates the job source resolved to zero endpoints
	ErrNoJobs = errors.New("no jobs configured")

	// ErrCycleBusy indicates the previous cycle still has fetches in flight
	ErrCycleBusy = errors.New("previous poll cycle still in flight")
)

// Config holds the Monitor's collaborators and initial settings
type Config struct {
	// Interval is the poll interval in seconds (default: 15)
	Interval int

	// JobSource is the comma-separated list of job base URLs
	JobSource string

	// FetchTimeout bounds each status request (default: jenkins.DefaultTimeout)
	FetchTimeout time.Duration

	// Fetcher retrieves build status (default: jenkins.NewClient)
	Fetcher jenkins.Fetcher

	// Presenter receives decisive updates (optional)
	Presenter Presenter

	// Escalator receives gated transport-error notifications (optional)
	Escalator escalate.Escalator

	// Bus receives lifecycle events (optional)
	Bus *events.Bus
}

// cycle is one poll iteration's private result set
type cycle struct {
	id        uint64
	results   []JobResult
	inFlight  int
	published bool
	work      sync.WaitGroup
	done      chan struct{} // closed once every fetch, presentation and notice has finished
}

func newCycle(id uint64, endpoints []jenkins.Endpoint) *cycle {
	results := make([]JobResult, len(endpoints))
	for i, ep := range endpoints {
		results[i] = JobResult{Endpoint: ep}
	}
	c := &cycle{
		id:       id,
		results:  results,
		inFlight: len(endpoints),
		done:     make(chan struct{}),
	}
	c.work.Add(len(endpoints))
	return c
}

// settle marks one fetch as answered; caller holds mu
func (c *cycle) settle() {
	c.inFlight--
}

// Monitor polls the configured jobs on an interval and publishes the
// aggregate status. All state is guarded by mu.
type Monitor struct {
	fetcher      jenkins.Fetcher
	presenter    Presenter
	escalator    escalate.Escalator
	bus          *events.Bus
	fetchTimeout time.Duration
	newTicker    TickerFactory
	now          func() time.Time

	mu        sync.Mutex
	presentMu sync.Mutex // orders Present calls without holding mu

	state     RunState
	interval  int
	jobSource string
	gate      Gate
	cycleSeq  uint64
	current   *cycle

	status    Status
	results   []JobResult
	attention bool
	loading   bool
	last      Update

	rearm   chan struct{}
	refresh chan struct{}
}

// New creates a stopped Monitor
func New(cfg Config) *Monitor {
	if cfg.Interval < 1 {
		cfg.Interval = DefaultInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = jenkins.DefaultTimeout
	}
	if cfg.Fetcher == nil {
		cfg.Fetcher = jenkins.NewClient(cfg.FetchTimeout)
	}

	return &Monitor{
		fetcher:      cfg.Fetcher,
		presenter:    cfg.Presenter,
		escalator:    cfg.Escalator,
		bus:          cfg.Bus,
		fetchTimeout: cfg.FetchTimeout,
		newTicker:    newTimeTicker,
		now:          time.Now,
		state:        StateStopped,
		interval:     cfg.Interval,
		jobSource:    cfg.JobSource,
		status:       StatusIncomplete,
		loading:      true,
		rearm:        make(chan struct{}, 1),
		refresh:      make(chan struct{}, 1),
	}
}

// Run polls immediately, then on every tick, until ctx is done.
// Returns ErrAlreadyRunning if the monitor is already running.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.transition(StateRunning); err != nil {
		return err
	}
	interval := m.Interval()
	m.bus.Emit(events.NewEvent(events.MonitorStarted, "").WithPayload(map[string]any{
		"interval_seconds": interval,
		"job_source":       m.JobSource(),
	}))

	defer func() {
		_ = m.transition(StateStopped)
		m.bus.Emit(events.NewEvent(events.MonitorStopped, ""))
	}()

	m.startCycle(ctx)

	ticker := m.newTicker(seconds(interval))
	defer func() { ticker.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			m.startCycle(ctx)
		case <-m.refresh:
			m.startCycle(ctx)
		case <-m.rearm:
			// Stop before arming so only one ticker is ever live
			ticker.Stop()
			ticker = m.newTicker(seconds(m.Interval()))
		}
	}
}

func (m *Monitor) transition(to RunState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == to && to == StateRunning {
		return ErrAlreadyRunning
	}
	if !CanTransition(m.state, to) {
		return fmt.Errorf("invalid monitor transition %s -> %s", m.state, to)
	}
	m.state = to
	return nil
}

// SetInterval changes the poll interval. A running monitor replaces its
// ticker; the next tick follows the new cadence.
func (m *Monitor) SetInterval(secs int) error {
	if secs < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, secs)
	}

	m.mu.Lock()
	if m.interval == secs {
		m.mu.Unlock()
		return nil
	}
	m.interval = secs
	m.mu.Unlock()

	m.bus.Emit(events.NewEvent(events.IntervalChanged, "").WithPayload(map[string]any{
		"interval_seconds": secs,
	}))

	select {
	case m.rearm <- struct{}{}:
	default:
	}
	return nil
}

// SetJobSource replaces the job list; it takes effect on the next cycle
func (m *Monitor) SetJobSource(raw string) {
	m.mu.Lock()
	if m.jobSource == raw {
		m.mu.Unlock()
		return
	}
	m.jobSource = raw
	m.mu.Unlock()

	m.bus.Emit(events.NewEvent(events.SourceChanged, "").WithPayload(map[string]any{
		"job_source": raw,
	}))
}

// Refresh asks a running monitor to start a cycle now
func (m *Monitor) Refresh() {
	select {
	case m.refresh <- struct{}{}:
	default:
	}
}

// Once runs a single cycle without the ticker and waits for its fetches,
// presentation and notices to finish. Returns ErrIncomplete if no decisive status was reached.
func (m *Monitor) Once(ctx context.Context) (Update, error) {
	c, err := m.startCycle(ctx)
	if err != nil {
		return Update{}, err
	}

	select {
	case <-c.done:
	case <-ctx.Done():
		return Update{}, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !c.published {
		return Update{}, ErrIncomplete
	}
	return copyUpdate(m.last), nil
}

// startCycle resolves endpoints and fans out one fetch per endpoint.
// A cycle is skipped while the previous one still has fetches in flight.
func (m *Monitor) startCycle(ctx context.Context) (*cycle, error) {
	m.mu.Lock()
	if m.current != nil && m.current.inFlight > 0 {
		id := m.current.id
		m.mu.Unlock()
		m.bus.Emit(events.NewEvent(events.CycleSkipped, "").WithCycle(id))
		return nil, ErrCycleBusy
	}

	endpoints := jenkins.ResolveEndpoints(m.jobSource)
	if len(endpoints) == 0 {
		m.mu.Unlock()
		log.Printf("WARN: no jobs configured, nothing to poll")
		m.bus.Emit(events.NewEvent(events.CycleIdle, ""))
		return nil, ErrNoJobs
	}

	m.cycleSeq++
	c := newCycle(m.cycleSeq, endpoints)
	m.current = c
	m.mu.Unlock()

	m.bus.Emit(events.NewEvent(events.CycleStarted, "").WithCycle(c.id).WithPayload(map[string]any{
		"jobs": len(endpoints),
	}))

	for i, ep := range endpoints {
		go m.fetch(ctx, c, i, ep)
	}
	go func() {
		c.work.Wait()
		close(c.done)
	}()
	return c, nil
}

func (m *Monitor) fetch(ctx context.Context, c *cycle, i int, ep jenkins.Endpoint) {
	defer c.work.Done()

	fetchCtx, cancel := context.WithTimeout(ctx, m.fetchTimeout)
	defer cancel()

	build, err := m.fetcher.Fetch(fetchCtx, ep.QueryURL)
	if err != nil {
		m.fail(ctx, c, ep, err)
		return
	}
	m.ingest(c, i, ep, build)
}

// fail leaves the endpoint pending and routes the error through the gate
func (m *Monitor) fail(ctx context.Context, c *cycle, ep jenkins.Endpoint, err error) {
	m.mu.Lock()
	if ctx.Err() != nil {
		// Shutting down; not an outage
		c.settle()
		m.mu.Unlock()
		return
	}
	notify := m.gate.Fail()
	c.settle()
	settled := c.inFlight == 0
	m.mu.Unlock()

	log.Printf("WARN: fetch %s failed: %v", ep.QueryURL, err)
	m.bus.Emit(events.NewEvent(events.JobFetchFailed, ep.SourceURL).WithCycle(c.id).WithError(err))
	if settled {
		m.bus.Emit(events.NewEvent(events.CycleSettled, "").WithCycle(c.id))
	}

	if notify {
		m.notify(ctx, ep, err)
	}
}

func (m *Monitor) notify(ctx context.Context, ep jenkins.Endpoint, cause error) {
	if m.escalator == nil {
		return
	}

	err := m.escalator.Escalate(ctx, escalate.Escalation{
		Severity: escalate.SeverityWarning,
		Job:      ep.SourceURL,
		Title:    "Unable to contact Jenkins",
		Message:  "Unable to contact Jenkins: " + ep.QueryURL,
		Context: map[string]string{
			"error": cause.Error(),
		},
	})
	if err != nil {
		log.Printf("WARN: %s escalation failed: %v", m.escalator.Name(), err)
	}
}

// ingest attaches a fetched build and re-evaluates the cycle
func (m *Monitor) ingest(c *cycle, i int, ep jenkins.Endpoint, build *jenkins.Build) {
	m.mu.Lock()
	m.gate.Reset()
	c.settle()
	settled := c.inFlight == 0

	if m.current != c {
		m.mu.Unlock()
		m.bus.Emit(events.NewEvent(events.JobStale, ep.SourceURL).WithCycle(c.id))
		return
	}

	c.results[i].Data = build
	update, publish := m.evaluate(c)

	if !publish {
		m.mu.Unlock()
		m.emitFetched(c, ep, settled)
		return
	}

	m.presentMu.Lock()
	m.mu.Unlock()
	if m.presenter != nil {
		m.presenter.Present(update)
	}
	m.presentMu.Unlock()

	m.emitFetched(c, ep, settled)
	m.bus.Emit(events.NewEvent(events.StatusPublished, "").WithCycle(c.id).WithPayload(update))
	if update.Changed {
		m.bus.Emit(events.NewEvent(events.StatusChanged, "").WithCycle(c.id).WithPayload(update))
	}
}

// evaluate aggregates the cycle and stores a decisive snapshot.
// Reports whether the update should be published. Caller holds mu.
func (m *Monitor) evaluate(c *cycle) (Update, bool) {
	status := Aggregate(c.results)
	if !status.IsDecisive() {
		return Update{}, false
	}

	results := cloneResults(c.results)
	previous := m.status
	m.status = status
	m.results = results
	m.attention = NeedsAttention(status, results)
	m.loading = false

	if c.published {
		return Update{}, false
	}
	c.published = true

	m.last = Update{
		Cycle:     c.id,
		Status:    status,
		Previous:  previous,
		Changed:   previous != status,
		Attention: m.attention,
		Results:   results,
		At:        m.now(),
	}
	return copyUpdate(m.last), true
}

func (m *Monitor) emitFetched(c *cycle, ep jenkins.Endpoint, settled bool) {
	m.bus.Emit(events.NewEvent(events.JobFetched, ep.SourceURL).WithCycle(c.id))
	if settled {
		m.bus.Emit(events.NewEvent(events.CycleSettled, "").WithCycle(c.id))
	}
}

// Current returns the last published update; ok is false while loading
func (m *Monitor) Current() (u Update, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading {
		return Update{}, false
	}
	return copyUpdate(m.last), true
}

// Status returns the current aggregate status and attention flag
func (m *Monitor) Status() (Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status, m.attention
}

// Loading reports whether no decisive status has been published yet
func (m *Monitor) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// OpenTargets returns the build pages of jobs matching the current status
func (m *Monitor) OpenTargets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return OpenTargets(m.status, m.results)
}

// State returns the scheduler's run state
func (m *Monitor) State() RunState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Interval returns the poll interval in seconds
func (m *Monitor) Interval() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// JobSource returns the configured job list
func (m *Monitor) JobSource() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jobSource
}

func copyUpdate(u Update) Update {
	u.Results = cloneResults(u.Results)
	return u
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
