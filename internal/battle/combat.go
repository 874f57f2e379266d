package battle

import (
	"math"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// AttackResult describes one resolved attack, including any counterattack
// the attacker suffered for striking the back row.
type AttackResult struct {
	AttackerID       string `json:"attacker_id"`
	TargetID         string `json:"target_id"`
	Damage           int    `json:"damage"`
	Critical         bool   `json:"critical"`
	TargetDefeated   bool   `json:"target_defeated"`
	CounterDamage    int    `json:"counter_damage,omitempty"`
	CounterUnits     int    `json:"counter_units,omitempty"`
	AttackerDefeated bool   `json:"attacker_defeated,omitempty"`
}

// resolveAttack applies one attack from attacker to target, then any
// counterattack from the target's side. Both units are mutated in place.
// rnd supplies the critical roll in [0, 1).
func resolveAttack(attacker, target *domain.BattleUnit, defenders []*domain.BattleUnit, rnd func() float64) *AttackResult {
	res := &AttackResult{AttackerID: attacker.UnitID, TargetID: target.UnitID}

	damage := attacker.Damage
	armor := target.Armor

	switch attacker.Role {
	case domain.RoleMage:
		// Spellcasters add spell power and punch through part of the armor.
		damage += attacker.SpellPower
		armor -= int(math.Floor(float64(target.Armor) * MagePierceFraction))
	case domain.RoleWarrior:
		if attacker.CritChance > 0 && int(rnd()*100)+1 <= attacker.CritChance {
			damage = int(float64(damage) * CritMultiplier)
			res.Critical = true
		}
	}

	dealt := damage - armor
	if dealt < 1 {
		dealt = 1
	}
	res.Damage = dealt

	target.CurrentHealth -= dealt
	if target.CurrentHealth <= 0 {
		target.CurrentHealth = 0
		res.TargetDefeated = true
	}

	applyCounter(attacker, target, defenders, res)
	return res
}

// applyCounter punishes a melee strike into the back row: living front-line
// tanks and warriors on the defending side strike back as one.
func applyCounter(attacker, target *domain.BattleUnit, defenders []*domain.BattleUnit, res *AttackResult) {
	if target.Row != domain.RowBack {
		return
	}
	if attacker.Role != domain.RoleTank && attacker.Role != domain.RoleWarrior {
		return
	}

	n := 0
	for _, d := range defenders {
		if d.Alive() && d.Row == domain.RowFront && (d.Role == domain.RoleTank || d.Role == domain.RoleWarrior) {
			n++
		}
	}
	if n == 0 {
		return
	}
	if n > MaxCounterattackers {
		n = MaxCounterattackers
	}

	counter := int(math.Floor(float64(attacker.Damage)*CounterFraction))*n - attacker.Armor
	if counter < 1 {
		counter = 1
	}

	res.CounterDamage = counter
	res.CounterUnits = n

	attacker.CurrentHealth -= counter
	if attacker.CurrentHealth <= 0 {
		attacker.CurrentHealth = 0
		res.AttackerDefeated = true
	}
}

// defaultRow is the fallback formation placement when a player never
// arranges: casters shelter in the back, everyone else holds the front.
func defaultRow(role domain.Role) domain.Row {
	if role == domain.RoleMage {
		return domain.RowBack
	}
	return domain.RowFront
}
