package domain

import (
	"time"

	"github.com/google/uuid"
)

// BattleSize is the exact roster size per side.
const BattleSize = 5

// SessionState tracks a battle session through negotiation and combat.
type SessionState string

const (
	SessionStatePending     SessionState = "pending"
	SessionStateAccepted    SessionState = "accepted"
	SessionStateSelecting   SessionState = "selecting_units"
	SessionStateArranging   SessionState = "arranging_formation"
	SessionStateInProgress  SessionState = "in_progress"
	SessionStateCompleted   SessionState = "completed"
	SessionStateSurrendered SessionState = "surrendered"
	SessionStateExpired     SessionState = "expired"
)

// PendingChallenge exists between challenge issuance and acceptance.
// At most one per participant pair per location.
type PendingChallenge struct {
	ChallengerID string    `json:"challenger_id"`
	OpponentID   string    `json:"opponent_id"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the challenge lapsed before acceptance.
func (c *PendingChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// BattleUnit is a unit snapshot frozen into a battle roster. Effective stats
// are materialized at snapshot time so mid-battle equipment changes cannot
// touch a running fight.
type BattleUnit struct {
	UnitID        string `json:"unit_id"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	MaxHealth     int    `json:"max_health"`
	CurrentHealth int    `json:"current_health"`
	Damage        int    `json:"damage"`
	Armor         int    `json:"armor"`
	SpellPower    int    `json:"spell_power,omitempty"`
	CritChance    int    `json:"critical_chance,omitempty"`
	Row           Row    `json:"row"`
}

// Alive reports whether the snapshot can still fight.
func (u *BattleUnit) Alive() bool {
	return u.CurrentHealth > 0
}

// SnapshotUnit freezes a unit's effective stats into a battle roster entry
// with health reset to effective max.
func SnapshotUnit(u *Unit) *BattleUnit {
	return &BattleUnit{
		UnitID:        u.ID,
		Name:          u.Name,
		Role:          u.Role,
		MaxHealth:     u.EffectiveMaxHealth(),
		CurrentHealth: u.EffectiveMaxHealth(),
		Damage:        u.EffectiveDamage(),
		Armor:         u.EffectiveArmor(),
		SpellPower:    u.EffectiveSpellPower(),
		CritChance:    u.EffectiveCritChance(),
		Row:           u.Row,
	}
}

// Battle is one active duel between two players.
type Battle struct {
	ID              uuid.UUID     `json:"id"`
	ChallengerID    string        `json:"challenger_id"`
	OpponentID      string        `json:"opponent_id"`
	Location        string        `json:"location"`
	ChallengerUnits []*BattleUnit `json:"challenger_units"`
	OpponentUnits   []*BattleUnit `json:"opponent_units"`
	CurrentTurn     string        `json:"current_turn"`
	TurnCount       int           `json:"turn_count"`
	WinnerID        string        `json:"winner_id,omitempty"`
	LastAction      string        `json:"last_action,omitempty"`
	Completed       bool          `json:"completed"`
	StartedAt       time.Time     `json:"started_at"`
}

// BattleRecord is the persisted outcome of a finished battle.
type BattleRecord struct {
	ID           uuid.UUID `json:"id"`
	ChallengerID string    `json:"challenger_id"`
	OpponentID   string    `json:"opponent_id"`
	WinnerID     string    `json:"winner_id"`
	Location     string    `json:"location"`
	TurnCount    int       `json:"turn_count"`
	Surrendered  bool      `json:"surrendered"`
	Reward       int       `json:"reward"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
}

// IsParticipant reports whether the player is one of the two sides.
func (b *Battle) IsParticipant(playerID string) bool {
	return playerID == b.ChallengerID || playerID == b.OpponentID
}

// OpponentOf returns the other participant's id.
func (b *Battle) OpponentOf(playerID string) string {
	if playerID == b.ChallengerID {
		return b.OpponentID
	}
	return b.ChallengerID
}

// UnitsOf returns the roster belonging to the player.
func (b *Battle) UnitsOf(playerID string) []*BattleUnit {
	if playerID == b.ChallengerID {
		return b.ChallengerUnits
	}
	return b.OpponentUnits
}

// NextTurn hands the turn to the other player and bumps the counter.
func (b *Battle) NextTurn() {
	b.CurrentTurn = b.OpponentOf(b.CurrentTurn)
	b.TurnCount++
}

// SideDefeated reports whether the roster has no living units.
func SideDefeated(units []*BattleUnit) bool {
	for _, u := range units {
		if u.Alive() {
			return false
		}
	}
	return true
}

// CheckWinner marks the battle terminal if either side is wiped out.
// Returns the winner id and true once a winner exists.
func (b *Battle) CheckWinner() (string, bool) {
	switch {
	case SideDefeated(b.ChallengerUnits):
		b.WinnerID = b.OpponentID
	case SideDefeated(b.OpponentUnits):
		b.WinnerID = b.ChallengerID
	default:
		return "", false
	}
	b.Completed = true
	return b.WinnerID, true
}
