package redis

import (
	"context"
	"fmt"
	"time"
)

// SetIdle writes the idle presence record for a worker with the given TTL,
// refreshing any existing record, and announces the publication on the idle
// Pub/Sub channel in the same pipeline.
func (s *Store) SetIdle(ctx context.Context, workerID string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, idleKey(workerID), time.Now().UTC().Format(time.RFC3339Nano), ttl)
	pipe.Publish(ctx, idleChannel, workerID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("jibriqueue/redis: set idle: %w", err)
	}
	return nil
}

// ClearIdle deletes the idle presence record for a worker. Deleting an
// absent record is not an error.
func (s *Store) ClearIdle(ctx context.Context, workerID string) error {
	if err := s.client.Del(ctx, idleKey(workerID)).Err(); err != nil {
		return fmt.Errorf("jibriqueue/redis: clear idle: %w", err)
	}
	return nil
}

// ScanIdle returns one SCAN page of worker ids holding idle presence
// records. Enumeration order and consistency are whatever SCAN provides:
// keys may expire or be deleted mid-scan and may be returned more than
// once across pages.
func (s *Store) ScanIdle(ctx context.Context, cursor uint64, count int64) ([]string, uint64, error) {
	keys, next, err := s.client.Scan(ctx, cursor, idleScanPattern, count).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("jibriqueue/redis: scan idle: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, idleKeyWorkerID(k))
	}
	return ids, next, nil
}
