package web

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// IndexHandler serves the embedded dashboard.
// Serves index.html for "/" and static files for other paths.
func IndexHandler(staticFS fs.FS) http.Handler {
	subFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("web: static assets: %v", err))
	}
	return http.FileServer(http.FS(subFS))
}

// StatusHandler returns the current snapshot as JSON.
// GET /api/status
func StatusHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(store.Snapshot()); err != nil {
			log.Printf("WARN: encode status: %v", err)
		}
	}
}

// OpenHandler redirects to the first build page matching the current
// status. GET /open. 404 when nothing matches.
func OpenHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targets := store.OpenTargets()
		if len(targets) == 0 {
			http.Error(w, "no build matches the current status", http.StatusNotFound)
			return
		}
		http.Redirect(w, r, targets[0], http.StatusFound)
	}
}

// heartbeatInterval keeps idle event streams open through proxies
const heartbeatInterval = 15 * time.Second

// EventsHandler provides the SSE event stream.
// GET /api/events
// The current snapshot is sent first, then one "status" event per update.
func EventsHandler(hub *Hub, store *Store) http.HandlerFunc {
	return eventsHandler(hub, store, heartbeatInterval)
}

func eventsHandler(hub *Hub, store *Store, heartbeat time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		client := NewClient(uuid.NewString())
		if !hub.Register(client) {
			http.Error(w, "dashboard shutting down", http.StatusServiceUnavailable)
			return
		}
		defer hub.Unregister(client)

		fmt.Fprintf(w, ": connected %s\n\n", client.ID())
		if initial, err := snapshotEvent(store.Snapshot()); err == nil {
			writeEvent(w, initial)
		}
		flusher.Flush()

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case event, ok := <-client.events:
				if !ok {
					return
				}
				writeEvent(w, event)
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, e *Event) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data)
}

func snapshotEvent(s *StatusSnapshot) (*Event, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return &Event{Type: "status", Time: time.Now(), Data: data}, nil
}
