package jibriqueue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/msgpo/jibri-queue/backoff"
	"github.com/msgpo/jibri-queue/event"
	"github.com/msgpo/jibri-queue/metrics"
	"github.com/msgpo/jibri-queue/store"
)

// Tracker is the availability tracker: it publishes worker state as
// expiring presence records and arbitrates claims over them.
//
// Create one with New() and functional options. Multiple Tracker instances
// may run concurrently against the same store; at-most-one-claimant
// correctness rests on the store's atomic expiring acquire, not on
// in-process synchronization.
type Tracker struct {
	config      Config
	logger      *slog.Logger
	store       store.Store
	metrics     metrics.Collector
	lockBackoff backoff.Strategy

	// bus carries same-process idle notifications from Publish to
	// suspended ClaimNext calls and Subscribe listeners.
	bus *event.Bus

	mu        sync.Mutex
	watchStop context.CancelFunc
	watchDone chan struct{}
}

// New creates a new Tracker over the given store.
func New(s store.Store, opts ...Option) (*Tracker, error) {
	if s == nil {
		return nil, ErrNoStore
	}
	t := &Tracker{
		config:      DefaultConfig(),
		logger:      slog.Default(),
		store:       s,
		metrics:     metrics.NewNop(),
		lockBackoff: backoff.DefaultLockStrategy(),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	t.bus = event.NewBus(t.config.EventBuffer)
	return t, nil
}

// Logger returns the tracker's logger.
func (t *Tracker) Logger() *slog.Logger { return t.logger }

// Store returns the tracker's store.
func (t *Tracker) Store() store.Store { return t.store }

// Config returns a copy of the tracker's configuration.
func (t *Tracker) Config() Config { return t.config }

// Publish records a worker's current state.
//
// An idle+healthy state writes (or refreshes) the worker's idle presence
// record with IdleTTL and notifies same-process waiters; Publish then
// returns true. Any other state deletes the record, withdrawing the worker
// from candidacy immediately rather than waiting for expiry, and returns
// false. A store failure is returned as an error: an ambiguous
// idle/non-idle state must never be silently assumed.
func (t *Tracker) Publish(ctx context.Context, state WorkerState) (bool, error) {
	if state.WorkerID == "" {
		return false, ErrEmptyWorkerID
	}

	if !state.Available() {
		if err := t.store.ClearIdle(ctx, state.WorkerID); err != nil {
			return false, err
		}
		t.metrics.RecordPublish(false)
		return false, nil
	}

	if err := t.store.SetIdle(ctx, state.WorkerID, t.config.IdleTTL); err != nil {
		return false, err
	}
	t.metrics.RecordPublish(true)
	t.logger.Debug("worker published idle", "worker_id", state.WorkerID)
	t.bus.Notify(state.WorkerID)
	return true, nil
}

// AttemptClaim tries to take the pending lock for a worker believed idle,
// holding it for PendingTTL. It makes up to LockAttempts attempts with
// jittered delays in between. True means the caller now exclusively owns
// the worker until the lock expires.
//
// False folds together "another claimant holds the lock" and "the store
// errored": both mean try another candidate. Store errors are logged, not
// returned. Re-attempting the same id after a false result is safe.
func (t *Tracker) AttemptClaim(ctx context.Context, workerID string) bool {
	for attempt := 1; ; attempt++ {
		ok, err := t.store.AcquirePending(ctx, workerID, t.config.PendingTTL)
		if err != nil {
			t.logger.Warn("pending lock attempt failed",
				"worker_id", workerID, "attempt", attempt, "error", err)
		}
		t.metrics.RecordClaimAttempt(ok)
		if ok {
			t.logger.Debug("worker claimed", "worker_id", workerID)
			return true
		}
		if attempt >= t.config.LockAttempts {
			return false
		}
		select {
		case <-time.After(t.lockBackoff.Delay(attempt)):
		case <-ctx.Done():
			return false
		}
	}
}

// ClaimNext returns the id of the next available worker, claimed
// exclusively for this caller.
//
// It scans current idle presence records and claims the first candidate
// whose pending lock it wins. If every candidate is lost to another
// claimant, or the pool is empty, the call suspends until a fresh idle
// publication arrives, then retries the claim on the published id. The
// listener registration never outlives the call.
//
// Cancellation of ctx resolves a suspended call with ErrNoWorkerAvailable.
// A scan failure is fatal to this invocation and is returned as-is; the
// caller may simply re-invoke.
func (t *Tracker) ClaimNext(ctx context.Context) (string, error) {
	start := time.Now()

	// Register before scanning so an idle publication landing between
	// scan exhaustion and suspension cannot be missed.
	sub := t.bus.Subscribe()
	defer sub.Cancel()

	workerID, err := t.scanAndClaim(ctx)
	if err != nil {
		return "", err
	}
	if workerID != "" {
		t.metrics.ObserveClaimWait(time.Since(start).Seconds())
		return workerID, nil
	}

	t.logger.Debug("no claimable worker, waiting for idle publication")
	t.metrics.AddWaiters(1)
	defer t.metrics.AddWaiters(-1)

	for {
		select {
		case workerID := <-sub.C():
			if t.AttemptClaim(ctx, workerID) {
				t.metrics.ObserveClaimWait(time.Since(start).Seconds())
				return workerID, nil
			}
			// Lost to another claimant; keep listening.
		case <-ctx.Done():
			return "", ErrNoWorkerAvailable
		}
	}
}

// scanAndClaim walks the idle-record keyspace one page at a time and
// returns the first candidate whose claim succeeds, or "" when the scan
// completes without a successful claim. The scan is weakly consistent;
// losing a candidate to a concurrent claimant is the expected race.
func (t *Tracker) scanAndClaim(ctx context.Context) (string, error) {
	var cursor uint64
	for {
		ids, next, err := t.store.ScanIdle(ctx, cursor, t.config.ScanCount)
		if err != nil {
			return "", err
		}
		for _, workerID := range ids {
			if t.AttemptClaim(ctx, workerID) {
				return workerID, nil
			}
			if ctx.Err() != nil {
				return "", ErrNoWorkerAvailable
			}
		}
		if next == 0 {
			return "", nil
		}
		cursor = next
	}
}

// Subscribe registers a callback invoked with the worker id of every idle
// publication observed by this tracker instance. The returned cancel func
// deregisters the listener; it is safe to call more than once.
func (t *Tracker) Subscribe(fn func(workerID string)) (cancel func()) {
	sub := t.bus.Subscribe()
	stop := make(chan struct{})

	go func() {
		for {
			select {
			case workerID := <-sub.C():
				fn(workerID)
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.Cancel()
			close(stop)
		})
	}
}

// Start begins relaying store-level idle events into the in-process bus,
// waking waiters for publications made by other tracker instances. It is a
// no-op when the store does not implement store.Watcher. The relay runs
// until Stop regardless of ctx cancellation.
func (t *Tracker) Start(ctx context.Context) error {
	w, ok := t.store.(store.Watcher)
	if !ok {
		t.logger.Debug("store does not support idle watch, cross-instance wake disabled")
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.watchStop != nil {
		return ErrAlreadyStarted
	}

	// The relay outlives ctx; keep its values but detach cancellation.
	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	ch, err := w.WatchIdle(watchCtx)
	if err != nil {
		cancel()
		return err
	}

	done := make(chan struct{})
	t.watchStop = cancel
	t.watchDone = done

	go func() {
		defer close(done)
		for workerID := range ch {
			t.bus.Notify(workerID)
		}
	}()
	return nil
}

// Stop tears down the watch relay started by Start, waiting for the relay
// goroutine to exit or ctx to expire. It is a no-op if Start was never
// called.
func (t *Tracker) Stop(ctx context.Context) error {
	t.mu.Lock()
	cancel, done := t.watchStop, t.watchDone
	t.watchStop, t.watchDone = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
