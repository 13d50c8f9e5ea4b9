package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	redisstore "github.com/msgpo/jibri-queue/store/redis"
)

// newTestStore connects to the Redis named by REDIS_ADDR, or skips.
// Keys under the jibri: prefix are flushed per test via unique worker ids.
func newTestStore(t *testing.T) *redisstore.Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis integration test")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	s := redisstore.New(client)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
	return s
}

func uniqueID(t *testing.T) string {
	return t.Name() + "-" + time.Now().Format("150405.000000000")
}

func scanAll(t *testing.T, s *redisstore.Store) []string {
	t.Helper()
	ctx := context.Background()

	var all []string
	var cursor uint64
	for {
		ids, next, err := s.ScanIdle(ctx, cursor, 10)
		if err != nil {
			t.Fatalf("ScanIdle returned error: %v", err)
		}
		all = append(all, ids...)
		if next == 0 {
			return all
		}
		cursor = next
	}
}

func contains(ids []string, want string) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestSetIdleScanClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := uniqueID(t)

	if err := s.SetIdle(ctx, id, time.Minute); err != nil {
		t.Fatalf("SetIdle returned error: %v", err)
	}
	if !contains(scanAll(t, s), id) {
		t.Fatalf("scan does not contain %q after SetIdle", id)
	}

	if err := s.ClearIdle(ctx, id); err != nil {
		t.Fatalf("ClearIdle returned error: %v", err)
	}
	if contains(scanAll(t, s), id) {
		t.Fatalf("scan still contains %q after ClearIdle", id)
	}
}

func TestIdleExpires(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := uniqueID(t)

	if err := s.SetIdle(ctx, id, time.Second); err != nil {
		t.Fatalf("SetIdle returned error: %v", err)
	}
	time.Sleep(1500 * time.Millisecond)

	if contains(scanAll(t, s), id) {
		t.Fatalf("scan still contains %q after TTL", id)
	}
}

func TestAcquirePendingIsExclusive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := uniqueID(t)

	ok, err := s.AcquirePending(ctx, id, time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = s.AcquirePending(ctx, id, time.Minute)
	if err != nil || ok {
		t.Fatalf("second acquire = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestWatchIdleDelivers(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	id := uniqueID(t)

	ch, err := s.WatchIdle(ctx)
	if err != nil {
		t.Fatalf("WatchIdle returned error: %v", err)
	}

	if err := s.SetIdle(context.Background(), id, time.Minute); err != nil {
		t.Fatalf("SetIdle returned error: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case got, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed before delivery")
			}
			if got == id {
				return
			}
			// Another test's publication; keep reading.
		case <-deadline:
			t.Fatal("watch did not deliver publication")
		}
	}
}
