package events

import "sync"

// Event is what subscribers receive: the topic name and the entity that
// resulted from the mutation.
type Event struct {
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}

// Bus is a fire-and-forget in-process publisher. Delivery is best effort:
// a slow subscriber loses events instead of blocking the publisher.
type Bus interface {
	Publish(name string, payload any)
	Subscribe() (ch <-chan Event, cancel func())
}

type LocalBus struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewLocalBus() *LocalBus {
	return &LocalBus{subs: make(map[chan Event]struct{})}
}

func (b *LocalBus) Publish(name string, payload any) {
	ev := Event{Name: name, Payload: payload}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default: // drop if slow
		}
	}
}

func (b *LocalBus) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
}
