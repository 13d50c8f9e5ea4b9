package redis

import (
	"context"
	"fmt"
	"time"
)

// AcquirePending makes a single SET NX attempt on the pending lock for a
// worker. The lock value is this store instance's owner token; the TTL is
// attached atomically with the acquisition. Locks are never released
// explicitly, they lapse by TTL.
func (s *Store) AcquirePending(ctx context.Context, workerID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, pendingKey(workerID), s.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("jibriqueue/redis: acquire pending: %w", err)
	}
	return ok, nil
}
