package domain

// Role determines a unit's base stats and special stat.
type Role string

const (
	RoleMage    Role = "mage"
	RoleTank    Role = "tank"
	RoleWarrior Role = "warrior"
)

// Roles lists all valid unit roles.
var Roles = []Role{RoleMage, RoleTank, RoleWarrior}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMage, RoleTank, RoleWarrior:
		return true
	}
	return false
}

// Rarity scales a unit's or weapon's base stats.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists all rarities in ascending order of value.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// Valid reports whether the rarity is one of the known rarities.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Order returns the rarity's rank for sorting, common lowest.
func (r Rarity) Order() int {
	switch r {
	case RarityLegendary:
		return 3
	case RarityEpic:
		return 2
	case RarityRare:
		return 1
	default:
		return 0
	}
}

// Row is a formation row assignment.
type Row int

const (
	RowUnassigned Row = 0
	RowFront      Row = 1
	RowBack       Row = 2
)

// Valid reports whether the row is front or back.
func (w Row) Valid() bool {
	return w == RowFront || w == RowBack
}

// UnitTemplate is a named archetype a unit is rolled from.
type UnitTemplate struct {
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Rarity Rarity `json:"rarity"`
}

// Unit is an owned combat piece. Stored stats are the unscaled-by-equipment
// base values; weapon bonuses are applied on read via the Effective methods
// so equip/unequip can never drift the persisted record.
type Unit struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	Rarity        Rarity `json:"rarity"`
	MaxHealth     int    `json:"max_health"`
	CurrentHealth int    `json:"current_health"`
	Damage        int    `json:"damage"`
	Armor         int    `json:"armor"`
	SpellPower    int    `json:"spell_power,omitempty"`
	CritChance    int    `json:"critical_chance,omitempty"`
	Row           Row    `json:"row"`
	WeaponID      string `json:"weapon_id,omitempty"`

	// Weapon is the live back-pointer to the wielded weapon. Not serialized;
	// reconnected from WeaponID when an inventory is loaded.
	Weapon *Weapon `json:"-"`
}

// Alive reports whether the unit can still fight.
func (u *Unit) Alive() bool {
	return u.CurrentHealth > 0
}

// bundle returns the active weapon's stat bundle, zero if unarmed.
func (u *Unit) bundle() StatBundle {
	if u.Weapon == nil {
		return StatBundle{}
	}
	return u.Weapon.Stats
}

// EffectiveMaxHealth returns max health including the weapon bonus, floored at 1.
func (u *Unit) EffectiveMaxHealth() int {
	return maxInt(1, u.MaxHealth+u.bundle().Health)
}

// EffectiveDamage returns damage including the weapon bonus, floored at 1.
func (u *Unit) EffectiveDamage() int {
	return maxInt(1, u.Damage+u.bundle().Damage)
}

// EffectiveArmor returns armor including the weapon bonus, floored at 0.
func (u *Unit) EffectiveArmor() int {
	return maxInt(0, u.Armor+u.bundle().Armor)
}

// EffectiveSpellPower returns spell power including the weapon bonus.
// Only meaningful for mages; other roles keep a zero base.
func (u *Unit) EffectiveSpellPower() int {
	if u.Role != RoleMage {
		return 0
	}
	return maxInt(0, u.SpellPower+u.bundle().SpellPower)
}

// EffectiveCritChance returns critical chance including the weapon bonus.
// Only meaningful for warriors; other roles keep a zero base.
func (u *Unit) EffectiveCritChance() int {
	if u.Role != RoleWarrior {
		return 0
	}
	return maxInt(0, u.CritChance+u.bundle().CritChance)
}

// ClampHealth re-clamps current health into [0, effective max].
// Called after any stat-changing mutation.
func (u *Unit) ClampHealth() {
	if max := u.EffectiveMaxHealth(); u.CurrentHealth > max {
		u.CurrentHealth = max
	}
	if u.CurrentHealth < 0 {
		u.CurrentHealth = 0
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
