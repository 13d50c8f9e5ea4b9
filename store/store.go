// Package store defines the persistence contract consumed by the tracker:
// expiring idle presence records, a cursor scan over them, and an atomic
// expiring pending lock. Backends live in subpackages (redis for
// production, memory for tests and development).
package store

import (
	"context"
	"time"
)

// Store is the shared-store contract for availability tracking.
//
// Expiry is part of the contract, not an optimization: SetIdle and
// AcquirePending must attach the TTL atomically with the write, and
// entries must become invisible once expired without any reaper pass.
type Store interface {
	// SetIdle writes (or refreshes) the idle presence record for a
	// worker with the given TTL, overwriting any existing record.
	SetIdle(ctx context.Context, workerID string, ttl time.Duration) error

	// ClearIdle deletes the idle presence record for a worker.
	// Deleting an absent record is not an error.
	ClearIdle(ctx context.Context, workerID string) error

	// ScanIdle returns one page of worker ids that currently have an
	// idle presence record, plus the cursor for the next page. A scan
	// starts at cursor 0 and is finished when the returned cursor is 0.
	//
	// Enumeration is weakly consistent: records may appear, disappear,
	// or be claimed by others mid-scan. Callers must treat the result
	// as candidates only; the pending lock is the source of truth.
	ScanIdle(ctx context.Context, cursor uint64, count int64) ([]string, uint64, error)

	// AcquirePending makes a single attempt to take the exclusive
	// pending lock for a worker, held for ttl. It returns true only if
	// this call created the lock; false means another claimant holds
	// it. The expiry is atomic with the acquisition. There is no
	// release: locks lapse by TTL.
	AcquirePending(ctx context.Context, workerID string, ttl time.Duration) (bool, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases resources owned by the store.
	Close() error
}

// Watcher is optionally implemented by stores that can observe idle
// publications made by other tracker instances, e.g. via the store's own
// pub/sub facility. The tracker uses it to wake cross-instance waiters;
// see Tracker.Start.
type Watcher interface {
	// WatchIdle returns a channel of worker ids that were just
	// published idle, by any instance. The channel is closed when ctx
	// is cancelled or the underlying subscription fails.
	WatchIdle(ctx context.Context) (<-chan string, error)
}
