package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// stopTimeout bounds how long Stop waits for the listener to exit
const stopTimeout = 100 * time.Millisecond

// SignalHandler cancels the run context on SIGINT/SIGTERM and runs reload
// callbacks on SIGHUP. It keeps listening after a reload.
type SignalHandler struct {
	signals  chan os.Signal
	shutdown chan struct{} // closed after shutdown callbacks ran
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	cancel   context.CancelFunc

	mu         sync.Mutex
	onShutdown []func()
	onReload   []func()
}

// NewSignalHandler creates a signal handler with the given context cancel
func NewSignalHandler(cancel context.CancelFunc) *SignalHandler {
	return &SignalHandler{
		signals:  make(chan os.Signal, 1),
		shutdown: make(chan struct{}),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		cancel:   cancel,
	}
}

// Start registers for OS signals and begins listening
func (h *SignalHandler) Start() {
	h.StartWithNotify(true)
}

// StartWithNotify begins listening. With notify false no OS signals are
// registered, and signals can only arrive through h.signals (tests).
func (h *SignalHandler) StartWithNotify(notify bool) {
	if notify {
		signal.Notify(h.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	}

	started := make(chan struct{})
	go func() {
		defer close(h.done)
		close(started)

		for {
			select {
			case sig := <-h.signals:
				if !h.handle(sig) {
					return
				}
			case <-h.stopCh:
				return
			}
		}
	}()
	<-started
}

// handle reacts to one signal; false means the listener is finished
func (h *SignalHandler) handle(sig os.Signal) bool {
	if sig == syscall.SIGHUP {
		log.Printf("Received %v, reloading config", sig)
		runAll(h.callbacks(&h.onReload))
		return true
	}

	log.Printf("Received signal: %v", sig)
	if h.cancel != nil {
		h.cancel()
	}
	runAll(h.callbacks(&h.onShutdown))
	close(h.shutdown)
	return false
}

func (h *SignalHandler) callbacks(fns *[]func()) []func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]func(){}, *fns...)
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// OnShutdown registers a callback to run on SIGINT/SIGTERM
func (h *SignalHandler) OnShutdown(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onShutdown = append(h.onShutdown, fn)
}

// OnReload registers a callback to run on SIGHUP
func (h *SignalHandler) OnReload(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReload = append(h.onReload, fn)
}

// Wait blocks until shutdown is triggered
func (h *SignalHandler) Wait() {
	<-h.shutdown
}

// Stop unregisters from OS signals and stops listening
func (h *SignalHandler) Stop() {
	signal.Stop(h.signals)
	h.stopOnce.Do(func() {
		close(h.stopCh)
	})
	select {
	case <-h.done:
	case <-time.After(stopTimeout):
	}
}
