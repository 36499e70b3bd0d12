package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DispatchesInOrder(t *testing.T) {
	bus := NewBus(10)

	var mu sync.Mutex
	var got []EventType
	bus.Subscribe(func(e Event) {
		mu.Lock()
		got = append(got, e.Type)
		mu.Unlock()
	})

	bus.Emit(NewEvent(CycleStarted, ""))
	bus.Emit(NewEvent(JobFetched, "http://a/job/x"))
	bus.Emit(NewEvent(StatusPublished, ""))
	require.NoError(t, bus.Close())

	assert.Equal(t, []EventType{CycleStarted, JobFetched, StatusPublished}, got)
}

func TestBus_FanOut(t *testing.T) {
	bus := NewBus(10)

	var first, second int
	bus.Subscribe(func(Event) { first++ })
	bus.Subscribe(func(Event) { second++ })

	bus.Emit(NewEvent(CycleStarted, ""))
	bus.Emit(NewEvent(CycleSettled, ""))
	require.NoError(t, bus.Close())

	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
}

func TestBus_StampsTime(t *testing.T) {
	bus := NewBus(1)

	var got Event
	bus.Subscribe(func(e Event) { got = e })
	bus.Emit(NewEvent(MonitorStarted, ""))
	require.NoError(t, bus.Close())

	assert.False(t, got.Time.IsZero())
}

func TestBus_EmitAfterCloseIsDropped(t *testing.T) {
	bus := NewBus(1)
	calls := 0
	bus.Subscribe(func(Event) { calls++ })
	require.NoError(t, bus.Close())

	bus.Emit(NewEvent(MonitorStarted, ""))
	assert.Equal(t, 0, calls)

	// Close is idempotent
	assert.NoError(t, bus.Close())
}

func TestBus_NilEmit(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() {
		bus.Emit(NewEvent(MonitorStarted, ""))
	})
}

func TestBus_FullBufferDrops(t *testing.T) {
	bus := NewBus(1)

	block := make(chan struct{})
	started := make(chan struct{}, 1)
	var count int
	bus.Subscribe(func(Event) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
		count++
	})

	bus.Emit(NewEvent(CycleStarted, "")) // picked up by dispatcher, blocks
	<-started
	bus.Emit(NewEvent(CycleStarted, "")) // fills buffer
	bus.Emit(NewEvent(CycleStarted, "")) // dropped

	close(block)
	require.NoError(t, bus.Close())
	assert.Equal(t, 2, count)
}
