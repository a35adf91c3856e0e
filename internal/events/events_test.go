package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventBusDeliversToAllHandlers(t *testing.T) {
	bus := NewEventBus()

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	var got []interface{}

	for i := 0; i < 2; i++ {
		bus.On("content.created", func(data interface{}) {
			mu.Lock()
			got = append(got, data)
			mu.Unlock()
			wg.Done()
		})
	}

	bus.Emit("content.created", "item-1")
	wg.Wait()

	assert.Len(t, got, 2)
	assert.Equal(t, "item-1", got[0])
}

func TestEventBusUnknownEventIsNoop(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() { bus.Emit("never.registered", nil) })
}

func TestEventBusRecoversPanickingHandler(t *testing.T) {
	bus := NewEventBus()

	done := make(chan struct{})
	bus.On("boom", func(data interface{}) {
		panic("handler exploded")
	})
	bus.On("boom", func(data interface{}) {
		close(done)
	})

	bus.Emit("boom", nil)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("surviving handler never ran")
	}
}
