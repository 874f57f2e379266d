package event

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(UnitDrawn, func(ctx context.Context, event Event) error {
		if event.Type != UnitDrawn {
			t.Errorf("Expected event type %s, got %s", UnitDrawn, event.Type)
		}
		payload, ok := event.Payload.(DrawPayloadV1)
		if !ok {
			t.Fatalf("Expected DrawPayloadV1 payload, got %T", event.Payload)
		}
		if payload.PlayerID != "player-1" {
			t.Errorf("Expected player-1, got %s", payload.PlayerID)
		}
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewDrawEvent(UnitDrawn, "player-1", "unit-1", "Aldric", "rare", 100))
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0

	for i := 0; i < 3; i++ {
		bus.Subscribe(BattleCompleted, func(ctx context.Context, event Event) error {
			calls++
			return nil
		})
	}

	err := bus.Publish(context.Background(), NewBattleCompletedEvent("b1", "p1", "p2", "p1", "elimination", 7, 100))
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if calls != 3 {
		t.Errorf("Expected 3 handler calls, got %d", calls)
	}
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	if err := bus.Publish(context.Background(), NewDailyClaimedEvent("p1", 50, 150)); err != nil {
		t.Errorf("Publish to empty bus returned error: %v", err)
	}
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()
	handlerErr := errors.New("handler failed")

	bus.Subscribe(ItemSold, func(ctx context.Context, event Event) error {
		return handlerErr
	})
	secondRan := false
	bus.Subscribe(ItemSold, func(ctx context.Context, event Event) error {
		secondRan = true
		return nil
	})

	err := bus.Publish(context.Background(), NewItemSoldEvent("p1", "unit", "u1", "common", 25))
	if err == nil {
		t.Error("Expected aggregated error from failing handler")
	}
	if !secondRan {
		t.Error("Later handlers should still run after an earlier failure")
	}
}
