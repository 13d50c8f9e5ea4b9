package event_test

import (
	"testing"

	"github.com/msgpo/jibri-queue/event"
)

func TestSubscribeReceivesNotifications(t *testing.T) {
	t.Parallel()
	b := event.NewBus(4)
	sub := b.Subscribe()
	defer sub.Cancel()

	b.Notify("w1")
	b.Notify("w2")

	if got := <-sub.C(); got != "w1" {
		t.Fatalf("first notification = %q, want %q", got, "w1")
	}
	if got := <-sub.C(); got != "w2" {
		t.Fatalf("second notification = %q, want %q", got, "w2")
	}
}

func TestNotifyFansOutToAllSubscribers(t *testing.T) {
	t.Parallel()
	b := event.NewBus(4)
	s1 := b.Subscribe()
	s2 := b.Subscribe()
	defer s1.Cancel()
	defer s2.Cancel()

	b.Notify("w1")

	for i, sub := range []*event.Subscription{s1, s2} {
		if got := <-sub.C(); got != "w1" {
			t.Fatalf("subscriber %d got %q, want %q", i, got, "w1")
		}
	}
}

func TestCancelRemovesSubscription(t *testing.T) {
	t.Parallel()
	b := event.NewBus(4)
	sub := b.Subscribe()
	if got := b.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}

	sub.Cancel()
	sub.Cancel() // safe to call twice
	if got := b.Len(); got != 0 {
		t.Fatalf("Len() after cancel = %d, want 0", got)
	}

	// A notification after cancel must not reach the subscription.
	b.Notify("w1")
	select {
	case id := <-sub.C():
		t.Fatalf("cancelled subscription received %q", id)
	default:
	}
}

func TestNotifyDropsWhenSubscriberFull(t *testing.T) {
	t.Parallel()
	b := event.NewBus(1)
	sub := b.Subscribe()
	defer sub.Cancel()

	// Second notification overflows the buffer; Notify must not block.
	b.Notify("w1")
	b.Notify("w2")

	if got := <-sub.C(); got != "w1" {
		t.Fatalf("notification = %q, want %q", got, "w1")
	}
	select {
	case id := <-sub.C():
		t.Fatalf("unexpected buffered notification %q", id)
	default:
	}
}

func TestBufferedNotificationsSurviveCancel(t *testing.T) {
	t.Parallel()
	b := event.NewBus(4)
	sub := b.Subscribe()

	b.Notify("w1")
	sub.Cancel()

	if got := <-sub.C(); got != "w1" {
		t.Fatalf("buffered notification = %q, want %q", got, "w1")
	}
}
