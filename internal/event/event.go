package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// EventSchemaVersion is the current event schema version.
const EventSchemaVersion = "1.0"

// Type represents the type of an event.
type Type string

// Event types published by the game services.
const (
	UnitDrawn       Type = "gacha.unit_drawn"
	WeaponDrawn     Type = "gacha.weapon_drawn"
	DailyClaimed    Type = "inventory.daily_claimed"
	ItemSold        Type = "inventory.item_sold"
	BattleStarted   Type = "battle.started"
	BattleCompleted Type = "battle.completed"
)

// Event represents a generic event in the system.
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// DrawPayloadV1 is the typed payload for gacha draw events.
type DrawPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	Rarity    string `json:"rarity"`
	Cost      int    `json:"cost"`
	Timestamp int64  `json:"timestamp"`
}

// DailyClaimedPayloadV1 is the typed payload for daily reward claims.
type DailyClaimedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	Amount    int    `json:"amount"`
	Balance   int    `json:"balance"`
	Timestamp int64  `json:"timestamp"`
}

// ItemSoldPayloadV1 is the typed payload for sale events.
type ItemSoldPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	ItemKind  string `json:"item_kind"` // "unit" or "weapon"
	ItemID    string `json:"item_id"`
	Rarity    string `json:"rarity"`
	Price     int    `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// BattlePayloadV1 is the typed payload for battle lifecycle events.
type BattlePayloadV1 struct {
	BattleID     string `json:"battle_id"`
	ChallengerID string `json:"challenger_id"`
	OpponentID   string `json:"opponent_id"`
	WinnerID     string `json:"winner_id,omitempty"`
	Method       string `json:"method,omitempty"` // "elimination" or "surrender"
	TurnCount    int    `json:"turn_count,omitempty"`
	Reward       int    `json:"reward,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// NewDrawEvent creates a draw event for either item kind.
func NewDrawEvent(typ Type, playerID, itemID, itemName, rarity string, cost int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    typ,
		Payload: DrawPayloadV1{
			PlayerID:  playerID,
			ItemID:    itemID,
			ItemName:  itemName,
			Rarity:    rarity,
			Cost:      cost,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewDailyClaimedEvent creates a daily reward claim event.
func NewDailyClaimedEvent(playerID string, amount, balance int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DailyClaimed,
		Payload: DailyClaimedPayloadV1{
			PlayerID:  playerID,
			Amount:    amount,
			Balance:   balance,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewItemSoldEvent creates a sale event.
func NewItemSoldEvent(playerID, itemKind, itemID, rarity string, price int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemSold,
		Payload: ItemSoldPayloadV1{
			PlayerID:  playerID,
			ItemKind:  itemKind,
			ItemID:    itemID,
			Rarity:    rarity,
			Price:     price,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewBattleStartedEvent creates a battle started event.
func NewBattleStartedEvent(battleID, challengerID, opponentID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BattleStarted,
		Payload: BattlePayloadV1{
			BattleID:     battleID,
			ChallengerID: challengerID,
			OpponentID:   opponentID,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewBattleCompletedEvent creates a battle completed event.
func NewBattleCompletedEvent(battleID, challengerID, opponentID, winnerID, method string, turnCount, reward int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BattleCompleted,
		Payload: BattlePayloadV1{
			BattleID:     battleID,
			ChallengerID: challengerID,
			OpponentID:   opponentID,
			WinnerID:     winnerID,
			Method:       method,
			TurnCount:    turnCount,
			Reward:       reward,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event.
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the event bus.
// Handlers run synchronously in Publish order.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type.
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
