package jibriqueue

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/msgpo/jibri-queue/backoff"
	"github.com/msgpo/jibri-queue/metrics"
)

// Option configures a Tracker.
type Option func(*Tracker) error

// WithLogger sets the structured logger for the tracker.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) error {
		t.logger = l
		return nil
	}
}

// WithMetrics sets the metrics collector. Defaults to a no-op collector.
func WithMetrics(c metrics.Collector) Option {
	return func(t *Tracker) error {
		t.metrics = c
		return nil
	}
}

// WithIdleTTL sets the lifetime of idle presence records.
func WithIdleTTL(d time.Duration) Option {
	return func(t *Tracker) error {
		if d <= 0 {
			return fmt.Errorf("jibriqueue: idle ttl must be positive, got %v", d)
		}
		t.config.IdleTTL = d
		return nil
	}
}

// WithPendingTTL sets the hold duration of pending locks. Keep this far
// longer than the idle TTL; see Config.PendingTTL.
func WithPendingTTL(d time.Duration) Option {
	return func(t *Tracker) error {
		if d <= 0 {
			return fmt.Errorf("jibriqueue: pending ttl must be positive, got %v", d)
		}
		t.config.PendingTTL = d
		return nil
	}
}

// WithScanCount sets the page-size hint for the store's cursor scan.
func WithScanCount(n int64) Option {
	return func(t *Tracker) error {
		if n < 1 {
			return fmt.Errorf("jibriqueue: scan count must be at least 1, got %d", n)
		}
		t.config.ScanCount = n
		return nil
	}
}

// WithLockAttempts sets how many acquire attempts a single claim makes,
// including the first.
func WithLockAttempts(n int) Option {
	return func(t *Tracker) error {
		if n < 1 {
			return fmt.Errorf("jibriqueue: lock attempts must be at least 1, got %d", n)
		}
		t.config.LockAttempts = n
		return nil
	}
}

// WithLockBackoff sets the delay strategy between pending lock attempts.
func WithLockBackoff(s backoff.Strategy) Option {
	return func(t *Tracker) error {
		t.lockBackoff = s
		return nil
	}
}

// WithEventBuffer sets the per-subscription buffer of the idle
// notification bus.
func WithEventBuffer(n int) Option {
	return func(t *Tracker) error {
		if n < 1 {
			return fmt.Errorf("jibriqueue: event buffer must be at least 1, got %d", n)
		}
		t.config.EventBuffer = n
		return nil
	}
}
