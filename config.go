package jibriqueue

import "time"

// Config holds configuration for the Tracker.
type Config struct {
	// IdleTTL is the lifetime of an idle presence record. A worker that
	// stops republishing idle state drops out of candidacy after this
	// long without any explicit delete.
	IdleTTL time.Duration

	// PendingTTL is the hold duration of a pending lock. It is
	// deliberately far longer than IdleTTL so a claimed worker cannot be
	// re-discovered by a late scan before job assignment completes. There
	// is no explicit unlock; a claimed worker stays unclaimable until the
	// lock expires.
	PendingTTL time.Duration

	// ScanCount is the page-size hint passed to the store's cursor scan.
	ScanCount int64

	// LockAttempts is the maximum number of acquire attempts per claim,
	// including the first. Delays between attempts come from the lock
	// backoff strategy (see WithLockBackoff).
	LockAttempts int

	// EventBuffer is the per-subscription buffer of the idle notification
	// bus. A subscriber that falls this far behind starts losing
	// notifications.
	EventBuffer int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IdleTTL:      90 * time.Second,
		PendingTTL:   10 * time.Minute,
		ScanCount:    100,
		LockAttempts: 3,
		EventBuffer:  16,
	}
}
