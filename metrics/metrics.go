// Package metrics defines the tracker's instrumentation contract and ships
// a Prometheus-backed collector plus a no-op fallback.
package metrics

// Collector receives instrumentation events from the tracker. Implementations
// must be safe for concurrent use.
type Collector interface {
	// RecordPublish counts a successful publish; available says whether it
	// made the worker discoverable (idle+healthy) or withdrew it.
	RecordPublish(available bool)

	// RecordClaimAttempt counts one pending-lock acquisition attempt and
	// its outcome.
	RecordClaimAttempt(acquired bool)

	// ObserveClaimWait records how long a ClaimNext call took to resolve,
	// in seconds.
	ObserveClaimWait(seconds float64)

	// AddWaiters adjusts the gauge of ClaimNext calls currently suspended
	// waiting for an idle notification.
	AddWaiters(delta float64)
}
