package metrics

// Nop implements a no-op Collector. All metrics are discarded. Useful for
// testing or when external metrics collection is used.
type Nop struct{}

// Compile-time assertion that Nop implements Collector.
var _ Collector = (*Nop)(nil)

// NewNop creates a new no-op collector.
func NewNop() *Nop { return &Nop{} }

// RecordPublish discards the publish metric.
func (*Nop) RecordPublish(_ bool) {}

// RecordClaimAttempt discards the claim attempt metric.
func (*Nop) RecordClaimAttempt(_ bool) {}

// ObserveClaimWait discards the claim wait observation.
func (*Nop) ObserveClaimWait(_ float64) {}

// AddWaiters discards the waiter gauge adjustment.
func (*Nop) AddWaiters(_ float64) {}
