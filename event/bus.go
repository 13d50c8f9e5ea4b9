// Package event provides the in-process idle notification bus: a
// publish/subscribe channel owned by a tracker instance, with typed
// subscription handles and guaranteed deregistration on cancel, so no
// listener ever outlives its caller.
package event

import "sync"

// Bus fans worker-id notifications out to its current subscribers.
// Delivery is best effort: a subscriber whose buffer is full misses the
// notification. That is acceptable for availability wake-ups because the
// claim attempt, not the notification, is the source of truth.
type Bus struct {
	mu     sync.Mutex
	buffer int
	subs   map[*Subscription]struct{}
}

// NewBus creates a bus whose subscriptions buffer up to buffer
// notifications each.
func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}
	return &Bus{
		buffer: buffer,
		subs:   make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new listener. The caller must call Cancel on the
// returned handle when done, or the subscription leaks.
func (b *Bus) Subscribe() *Subscription {
	s := &Subscription{
		bus: b,
		ch:  make(chan string, b.buffer),
	}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Notify delivers a worker id to every current subscriber without
// blocking.
func (b *Bus) Notify(workerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		select {
		case s.ch <- workerID:
		default: // subscriber too slow, drop
		}
	}
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Subscription is a live registration on a Bus.
type Subscription struct {
	bus  *Bus
	ch   chan string
	once sync.Once
}

// C returns the channel notifications arrive on. It is never closed;
// callers select against their own cancellation signal.
func (s *Subscription) C() <-chan string { return s.ch }

// Cancel removes the subscription from the bus. Safe to call more than
// once. Notifications already buffered remain readable from C.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
	})
}
