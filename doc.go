// Package jibriqueue tracks the availability of a pool of interchangeable
// worker processes and lets callers atomically claim exactly one available
// worker, even when claimants race concurrently across multiple instances of
// this tracker.
//
// jibriqueue is designed as a library, not a service. Import it, configure a
// store, and publish worker state or claim workers from ordinary Go code.
//
// # Quick Start
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	t, err := jibriqueue.New(redisstore.New(client))
//	if err != nil { ... }
//
//	// Worker side: publish current state. An idle+healthy publish makes the
//	// worker discoverable for IdleTTL; anything else withdraws it.
//	_, err = t.Publish(ctx, jibriqueue.WorkerState{
//	    WorkerID: "jibri-42",
//	    Busy:     jibriqueue.StatusIdle,
//	    Health:   jibriqueue.Healthy,
//	})
//
//	// Caller side: claim the next available worker, or wait for one.
//	id, err := t.ClaimNext(ctx)
//
// # Architecture
//
// The tracker is three cooperating responsibilities over a single shared
// TTL-capable store: a publisher that records idle presence with automatic
// expiry (absence means "not idle" by construction), a scanner that
// enumerates present idle records, and an arbiter that reserves a candidate
// via an exclusive expiring pending lock. When the pool is saturated,
// ClaimNext suspends on an in-process notification bus until a fresh idle
// publish arrives, then retries the claim.
//
// Correctness of "at most one claimant per worker" rests entirely on the
// store's atomic expiring-acquire primitive, not on in-process
// synchronization: the scan is weakly consistent and the claim attempt is
// the sole source of truth.
//
// Store backends follow a composable pattern: the store package defines the
// contract, and backends (redis for production, memory for tests and
// development) implement it. The redis backend additionally supports
// cross-instance wake-up via Pub/Sub; see Tracker.Start.
package jibriqueue
