package metrics

import (
	"context"

	"github.com/tacticbot/tacticbot/internal/event"
)

// EventMetricsCollector subscribes to game events and records metrics.
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector.
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types the collector cares about.
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.UnitDrawn,
		event.WeaponDrawn,
		event.DailyClaimed,
		event.ItemSold,
		event.BattleStarted,
		event.BattleCompleted,
	}
	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates metrics for one event.
func (e *EventMetricsCollector) HandleEvent(_ context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case event.DrawPayloadV1:
		switch evt.Type {
		case event.UnitDrawn:
			UnitsDrawn.WithLabelValues(p.Rarity).Inc()
		case event.WeaponDrawn:
			WeaponsDrawn.WithLabelValues(p.Rarity).Inc()
		}
		CoinsSpent.Add(float64(p.Cost))
	case event.DailyClaimedPayloadV1:
		DailiesClaimed.Inc()
		CoinsEarned.Add(float64(p.Amount))
	case event.ItemSoldPayloadV1:
		ItemsSold.WithLabelValues(p.ItemKind, p.Rarity).Inc()
		CoinsEarned.Add(float64(p.Price))
	case event.BattlePayloadV1:
		switch evt.Type {
		case event.BattleStarted:
			BattlesStarted.Inc()
			ActiveSessions.Inc()
		case event.BattleCompleted:
			BattlesFinished.WithLabelValues(p.Method).Inc()
			ActiveSessions.Dec()
			CoinsEarned.Add(float64(p.Reward))
		}
	}
	return nil
}
