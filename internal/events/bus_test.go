package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewLocalBus()

	first, cancelFirst := bus.Subscribe()
	second, cancelSecond := bus.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	bus.Publish("dashboard:created", "payload")

	for _, ch := range []<-chan Event{first, second} {
		select {
		case ev := <-ch:
			assert.Equal(t, "dashboard:created", ev.Name)
			assert.Equal(t, "payload", ev.Payload)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := NewLocalBus()

	ch, cancel := bus.Subscribe()
	cancel()

	// must not panic on closed channel
	bus.Publish("dashboard:updated", nil)

	_, open := <-ch
	assert.False(t, open)
}

func TestSlowSubscriberLosesEventsInsteadOfBlocking(t *testing.T) {
	bus := NewLocalBus()

	ch, cancel := bus.Subscribe()
	defer cancel()

	// overfill the subscriber buffer; Publish must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish("dashboard:updated", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	require.Equal(t, 16, len(ch))
}

func TestCancelTwiceIsSafe(t *testing.T) {
	bus := NewLocalBus()

	_, cancel := bus.Subscribe()
	cancel()
	cancel()
}
