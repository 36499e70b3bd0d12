package escalate

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Multi fans one escalation out to several backends
type Multi struct {
	escalators []Escalator
}

// NewMulti creates a Multi escalator. Nil entries are dropped and nested
// Multis are flattened.
func NewMulti(escalators ...Escalator) *Multi {
	m := &Multi{}
	for _, esc := range escalators {
		switch esc := esc.(type) {
		case nil:
		case *Multi:
			m.escalators = append(m.escalators, esc.escalators...)
		default:
			m.escalators = append(m.escalators, esc)
		}
	}
	return m
}

// Escalate delivers to every backend concurrently. A failing backend does
// not stop the others; failures are joined and prefixed with the backend name.
func (m *Multi) Escalate(ctx context.Context, e Escalation) error {
	errs := make([]error, len(m.escalators))

	var wg sync.WaitGroup
	for i, esc := range m.escalators {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := esc.Escalate(ctx, e); err != nil {
				errs[i] = fmt.Errorf("%s: %w", esc.Name(), err)
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// Len returns the number of backends
func (m *Multi) Len() int {
	return len(m.escalators)
}

// Name returns "multi"
func (m *Multi) Name() string {
	return "multi"
}
