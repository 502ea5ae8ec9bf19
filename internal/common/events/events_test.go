package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(ListUpdated, func(e Event) { got = append(got, e) })

	bus.Publish(ListUpdated, "payload")
	bus.Publish(ListCleared, nil)

	require.Len(t, got, 1)
	assert.Equal(t, ListUpdated, got[0].Type)
	assert.Equal(t, "payload", got[0].Payload)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestBusMultipleHandlers(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe(ComparisonCompleted, func(Event) { calls++ })
	bus.Subscribe(ComparisonCompleted, func(Event) { calls++ })

	bus.Publish(ComparisonCompleted, nil)
	assert.Equal(t, 2, calls)
}

func TestBusConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(ComparisonStarted, func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(ComparisonStarted, nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, count)
}
