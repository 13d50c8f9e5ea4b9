// Package backoff provides pluggable retry delay strategies for pending
// lock acquisition. All strategies are safe for concurrent use (they are
// stateless).
package backoff

import (
	"math"
	"math/rand"
	"time"
)

// Strategy computes the delay before a retry attempt.
type Strategy interface {
	// Delay returns how long to wait before retry attempt n (1-indexed).
	// Attempt 1 is the first retry after the initial failure.
	Delay(attempt int) time.Duration
}

// ──────────────────────────────────────────────────
// Constant
// ──────────────────────────────────────────────────

// Constant always returns the same delay regardless of attempt number.
type Constant struct {
	Interval time.Duration
}

// NewConstant creates a constant backoff strategy.
func NewConstant(interval time.Duration) *Constant {
	return &Constant{Interval: interval}
}

// Delay returns the fixed interval.
func (c *Constant) Delay(_ int) time.Duration {
	return c.Interval
}

// ──────────────────────────────────────────────────
// ConstantWithJitter
// ──────────────────────────────────────────────────

// ConstantWithJitter returns a fixed base delay plus a random jitter.
// Delay = Interval + random value in [0, Jitter).
// This spreads out lock retries when many claimants contend for the same
// worker, so a thundering herd does not hammer the store in lockstep.
type ConstantWithJitter struct {
	Interval time.Duration
	Jitter   time.Duration
}

// NewConstantWithJitter creates a constant backoff with additive jitter.
func NewConstantWithJitter(interval, jitter time.Duration) *ConstantWithJitter {
	return &ConstantWithJitter{Interval: interval, Jitter: jitter}
}

// Delay returns Interval plus a random duration in [0, Jitter).
func (c *ConstantWithJitter) Delay(_ int) time.Duration {
	if c.Jitter <= 0 {
		return c.Interval
	}
	return c.Interval + time.Duration(rand.Float64()*float64(c.Jitter)) //nolint:gosec // jitter intentionally uses non-crypto rand
}

// ──────────────────────────────────────────────────
// ExponentialWithJitter (full jitter)
// ──────────────────────────────────────────────────

// ExponentialWithJitter applies full jitter to an exponential base.
// Delay = random value in [0, min(Initial * 2^(attempt-1), Max)].
type ExponentialWithJitter struct {
	Initial time.Duration
	Max     time.Duration
}

// NewExponentialWithJitter creates an exponential backoff with full jitter.
func NewExponentialWithJitter(initial, maxDelay time.Duration) *ExponentialWithJitter {
	return &ExponentialWithJitter{Initial: initial, Max: maxDelay}
}

// Delay returns a random duration in [0, min(Initial * 2^(attempt-1), Max)].
func (e *ExponentialWithJitter) Delay(attempt int) time.Duration {
	base := float64(e.Initial) * math.Pow(2, float64(attempt-1))
	if e.Max > 0 && base > float64(e.Max) {
		base = float64(e.Max)
	}
	return time.Duration(rand.Float64() * base) //nolint:gosec // jitter intentionally uses non-crypto rand
}

// ──────────────────────────────────────────────────
// Default
// ──────────────────────────────────────────────────

// DefaultLockStrategy returns the backoff used between pending lock
// attempts: constant 200ms with up to 200ms of jitter. Together with the
// default of 3 attempts this absorbs transient store contention without
// amplifying load.
func DefaultLockStrategy() Strategy {
	return NewConstantWithJitter(200*time.Millisecond, 200*time.Millisecond)
}
