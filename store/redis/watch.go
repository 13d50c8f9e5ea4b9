package redis

import (
	"context"
	"fmt"
)

// WatchIdle subscribes to the idle Pub/Sub channel and returns a channel of
// worker ids published idle by any tracker instance. The channel is closed
// when ctx is cancelled or the subscription drops.
func (s *Store) WatchIdle(ctx context.Context) (<-chan string, error) {
	sub := s.client.Subscribe(ctx, idleChannel)

	// Force the subscription onto the wire before returning so no
	// publication racing this call is silently dropped.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("jibriqueue/redis: watch idle: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer func() {
			if err := sub.Close(); err != nil {
				s.logger.Warn("closing idle subscription", "error", err)
			}
		}()
		for {
			select {
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
