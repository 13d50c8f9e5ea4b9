// Package memory is a fully in-memory implementation of store.Store.
// Safe for concurrent access. Intended for unit testing and development.
//
// Expiry is deadline-based and checked lazily on read, so tests can inject
// a fake clock with WithClock instead of sleeping through TTLs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/msgpo/jibri-queue/store"
)

// Compile-time interface checks.
var (
	_ store.Store   = (*Store)(nil)
	_ store.Watcher = (*Store)(nil)
)

// watchBuffer is the per-watcher channel buffer. A watcher that falls this
// far behind starts losing notifications, same as a slow Pub/Sub consumer.
const watchBuffer = 16

// Option configures the Store.
type Option func(*Store)

// WithClock sets the time source used for expiry deadlines.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is an in-memory store.Store.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	// idle and pending map worker ids to expiry deadlines.
	idle    map[string]time.Time
	pending map[string]time.Time

	watchers map[chan string]struct{}
	closed   bool
}

// New returns a new empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		idle:     make(map[string]time.Time),
		pending:  make(map[string]time.Time),
		watchers: make(map[chan string]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Ping always succeeds for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close drops all idle watchers. Subsequent writes are still accepted so a
// test can keep asserting on state after shutdown.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for ch := range s.watchers {
		close(ch)
	}
	s.watchers = make(map[chan string]struct{})
	return nil
}

// SetIdle records (or refreshes) the idle deadline for a worker and
// notifies idle watchers.
func (s *Store) SetIdle(_ context.Context, workerID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idle[workerID] = s.now().Add(ttl)
	for ch := range s.watchers {
		select {
		case ch <- workerID:
		default: // watcher too slow, drop
		}
	}
	return nil
}

// ClearIdle removes a worker's idle record. Absence is not an error.
func (s *Store) ClearIdle(_ context.Context, workerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.idle, workerID)
	return nil
}

// ScanIdle pages through live idle records in sorted order. The cursor is
// an offset into the sorted id list; 0 terminates the scan. Sorting is a
// test-determinism convenience only, not part of the store contract.
func (s *Store) ScanIdle(_ context.Context, cursor uint64, count int64) ([]string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	live := make([]string, 0, len(s.idle))
	for id, deadline := range s.idle {
		if deadline.After(now) {
			live = append(live, id)
		} else {
			delete(s.idle, id)
		}
	}
	sort.Strings(live)

	start := int(cursor)
	if start >= len(live) {
		return nil, 0, nil
	}
	end := start + int(count)
	if count <= 0 || end >= len(live) {
		return live[start:], 0, nil
	}
	return live[start:end], uint64(end), nil
}

// AcquirePending takes the pending lock for a worker if it is free or
// expired. Expiry is checked against the injected clock.
func (s *Store) AcquirePending(_ context.Context, workerID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if deadline, held := s.pending[workerID]; held && deadline.After(now) {
		return false, nil
	}
	s.pending[workerID] = now.Add(ttl)
	return true, nil
}

// WatchIdle returns a channel receiving worker ids as they are published
// idle. The channel is closed when ctx is cancelled or the store closes.
func (s *Store) WatchIdle(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, watchBuffer)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, nil
	}
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
	}()
	return ch, nil
}
