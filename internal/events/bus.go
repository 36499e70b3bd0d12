package events

import (
	"log"
	"sync"
	"time"
)

// Handler receives events from the bus
type Handler func(Event)

// Bus provides asynchronous event distribution across components.
// Handlers run in subscription order on a single dispatch goroutine.
type Bus struct {
	Capacity int

	mu       sync.RWMutex
	handlers []Handler
	closed   bool

	events chan Event
	done   chan struct{}
	now    func() time.Time
}

// NewBus creates a new event bus with the specified capacity
func NewBus(capacity int) *Bus {
	if capacity < 1 {
		capacity = 1
	}
	b := &Bus{
		Capacity: capacity,
		events:   make(chan Event, capacity),
		done:     make(chan struct{}),
		now:      time.Now,
	}
	go b.dispatch()
	return b
}

// Subscribe registers a handler for all subsequent events
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Emit stamps the event and queues it for dispatch.
// Never blocks: when the buffer is full the event is dropped.
// A nil bus discards events, so components can run without one.
func (b *Bus) Emit(e Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	if e.Time.IsZero() {
		e.Time = b.now()
	}

	select {
	case b.events <- e:
	default:
		log.Printf("WARN: event bus full, dropping event %s", e.Type)
	}
}

// Close stops accepting events and waits for queued events to be dispatched
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.events)
	b.mu.Unlock()

	<-b.done
	return nil
}

func (b *Bus) dispatch() {
	defer close(b.done)
	for e := range b.events {
		b.mu.RLock()
		handlers := make([]Handler, len(b.handlers))
		copy(handlers, b.handlers)
		b.mu.RUnlock()

		for _, h := range handlers {
			h(e)
		}
	}
}
