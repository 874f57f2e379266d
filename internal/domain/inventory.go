package domain

import "time"

// MinOwnedUnits is the floor enforced at sale time: a player may never sell
// below this many units, so battle eligibility stays reachable.
const MinOwnedUnits = 5

// PlayerInventory is one player's owned units, weapons and currency.
// Lazily created on first access with starter currency and units.
type PlayerInventory struct {
	PlayerID  string    `json:"player_id"`
	Balance   int       `json:"balance"`
	LastDaily time.Time `json:"last_daily"`
	Units     []*Unit   `json:"units"`
	Weapons   []*Weapon `json:"weapons"`
}

// LeaderboardEntry is one row of the balance leaderboard.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	PlayerID  string `json:"player_id"`
	Balance   int    `json:"balance"`
	UnitCount int    `json:"unit_count"`
}

// UnitByID returns the owned unit with the given id, or nil.
func (inv *PlayerInventory) UnitByID(id string) *Unit {
	for _, u := range inv.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// WeaponByID returns the owned weapon with the given id, or nil.
func (inv *PlayerInventory) WeaponByID(id string) *Weapon {
	for _, w := range inv.Weapons {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// LivingUnits returns the units with current health above zero.
func (inv *PlayerInventory) LivingUnits() []*Unit {
	alive := make([]*Unit, 0, len(inv.Units))
	for _, u := range inv.Units {
		if u.Alive() {
			alive = append(alive, u)
		}
	}
	return alive
}

// Reconnect restores the unit<->weapon back-pointers after deserialization.
// A dangling reference on either side is dropped rather than propagated.
func (inv *PlayerInventory) Reconnect() {
	weapons := make(map[string]*Weapon, len(inv.Weapons))
	for _, w := range inv.Weapons {
		weapons[w.ID] = w
	}
	for _, u := range inv.Units {
		u.Weapon = nil
		if u.WeaponID == "" {
			continue
		}
		w, ok := weapons[u.WeaponID]
		if !ok {
			u.WeaponID = ""
			continue
		}
		u.Weapon = w
		w.WielderID = u.ID
	}
	// Clear wielder refs that no unit claims.
	for _, w := range inv.Weapons {
		if w.WielderID == "" {
			continue
		}
		u := inv.UnitByID(w.WielderID)
		if u == nil || u.WeaponID != w.ID {
			w.WielderID = ""
		}
	}
}
