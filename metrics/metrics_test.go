package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/msgpo/jibri-queue/metrics"
)

func TestNop_DiscardsEverything(t *testing.T) {
	n := metrics.NewNop()

	// Must be safe to call with any values.
	n.RecordPublish(true)
	n.RecordPublish(false)
	n.RecordClaimAttempt(true)
	n.ObserveClaimWait(1.5)
	n.AddWaiters(1)
	n.AddWaiters(-1)
}

func TestPrometheus_CountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewPrometheus(reg, "test")

	c.RecordPublish(true)
	c.RecordPublish(true)
	c.RecordPublish(false)
	c.RecordClaimAttempt(true)
	c.RecordClaimAttempt(false)
	c.AddWaiters(2)
	c.AddWaiters(-1)
	c.ObserveClaimWait(0.1)

	count, err := testutil.GatherAndCount(reg,
		"test_publishes_total", "test_claim_attempts_total", "test_claim_wait_seconds", "test_waiters")
	if err != nil {
		t.Fatalf("gather returned error: %v", err)
	}
	if count == 0 {
		t.Fatal("no metrics registered")
	}
}

func TestPrometheus_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewPrometheus(reg, "test")

	// Repeated use must not panic on duplicate registration.
	for i := 0; i < 3; i++ {
		c.RecordPublish(true)
		c.RecordClaimAttempt(false)
	}
}
