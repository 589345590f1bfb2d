package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToAllSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var first, second int
	dispatcher.Subscribe(EventAlertRaised, func(context.Context, Event) error {
		first++
		return errors.New("handler failure must not stop delivery")
	})
	dispatcher.Subscribe(EventAlertRaised, func(context.Context, Event) error {
		second++
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventAlertRaised}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 1 || second != 1 {
		t.Fatalf("expected both handlers invoked once, got %d/%d", first, second)
	}
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls int
	dispatcher.Subscribe(EventTicketClassified, func(context.Context, Event) error {
		calls++
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventBatchAnalyzed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("handler for another type must not fire, got %d calls", calls)
	}
}
