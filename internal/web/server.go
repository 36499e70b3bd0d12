package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/RevCBH/buildlight/internal/monitor"
)

//go:embed static
var staticFS embed.FS

// DefaultAddr is used when Config.Addr is empty
const DefaultAddr = ":8080"

// Server serves the dashboard and implements monitor.Presenter
type Server struct {
	store *Store
	hub   *Hub
	mux   *http.ServeMux

	mu       sync.Mutex
	addr     string
	http     *http.Server
	listener net.Listener
}

// New creates a dashboard server. Present works before Start; updates are
// kept in the store and replayed to browsers that connect later.
func New(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	s := &Server{
		store: NewStore(),
		hub:   NewHub(),
		mux:   http.NewServeMux(),
		addr:  cfg.Addr,
	}
	s.mux.Handle("/", IndexHandler(staticFS))
	s.mux.HandleFunc("/api/status", StatusHandler(s.store))
	s.mux.HandleFunc("/api/events", EventsHandler(s.hub, s.store))
	s.mux.HandleFunc("/open", OpenHandler(s.store))
	return s, nil
}

// Handler returns the dashboard's routes
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.http != nil {
		return errors.New("dashboard already started")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("HTTP listen: %w", err)
	}
	s.listener = listener
	s.addr = listener.Addr().String() // resolves ":0"
	s.http = &http.Server{Handler: s.mux}

	srv := s.http
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WARN: dashboard server: %v", err)
		}
	}()
	return nil
}

// Stop disconnects SSE clients and shuts the HTTP server down
func (s *Server) Stop(ctx context.Context) error {
	// Open event streams would otherwise hold Shutdown until ctx expires
	s.hub.Stop()

	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	return nil
}

// Present records the update and pushes it to connected browsers
func (s *Server) Present(u monitor.Update) {
	s.store.Apply(u)

	event, err := snapshotEvent(s.store.Snapshot())
	if err != nil {
		log.Printf("WARN: encode status event: %v", err)
		return
	}
	s.hub.Broadcast(event)
}

// Addr returns the listen address, resolved once started
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Store returns the server's state store
func (s *Server) Store() *Store {
	return s.store
}
