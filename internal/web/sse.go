package web

import (
	"sync"
	"sync/atomic"
)

// clientBuffer is how many events a slow browser may lag behind
const clientBuffer = 16

// Hub fans status events out to connected SSE clients. Delivery never
// blocks: a client whose buffer is full misses the event.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	stopped bool
}

// Client is one connected browser
type Client struct {
	id      string
	events  chan *Event
	dropped atomic.Int64
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// NewClient creates a client with a buffered event channel
func NewClient(id string) *Client {
	return &Client{id: id, events: make(chan *Event, clientBuffer)}
}

// ID returns the client's identifier
func (c *Client) ID() string {
	return c.id
}

// Dropped returns how many events this client missed
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Register adds a client. Returns false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.events)
	}
}

// Broadcast queues e for every client and returns how many received it
func (h *Hub) Broadcast(e *Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for c := range h.clients {
		select {
		case c.events <- e:
			delivered++
		default:
			c.dropped.Add(1)
		}
	}
	return delivered
}

// Stop disconnects every client; later registrations are refused.
// Safe to call more than once.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	for c := range h.clients {
		close(c.events)
	}
	clear(h.clients)
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
