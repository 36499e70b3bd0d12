package events

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
)

// JSONEmitter writes each event as one JSON object per line. After the
// first write error the emitter stops writing and keeps returning it.
type JSONEmitter struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

// NewJSONEmitter creates an emitter writing JSON lines to w
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{w: w}
}

// Emit writes one event line
func (j *JSONEmitter) Emit(e Event) error {
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	line = append(line, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	if _, err := j.w.Write(line); err != nil {
		j.err = fmt.Errorf("write event: %w", err)
		return j.err
	}
	return nil
}

// Handler adapts the emitter to the bus. Marshal failures are logged per
// event; a write failure is logged once.
func (j *JSONEmitter) Handler() Handler {
	var once sync.Once
	return func(e Event) {
		err := j.Emit(e)
		if err == nil {
			return
		}
		if j.failed() {
			once.Do(func() { log.Printf("WARN: JSON event output stopped: %v", err) })
			return
		}
		log.Printf("WARN: %v", err)
	}
}

func (j *JSONEmitter) failed() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err != nil
}
