package domain

// WeaponType identifies one of the two equippable types per role.
type WeaponType string

const (
	WeaponSword  WeaponType = "sword"  // warrior
	WeaponMace   WeaponType = "mace"   // warrior
	WeaponShield WeaponType = "shield" // tank
	WeaponArmor  WeaponType = "armor"  // tank
	WeaponStaff  WeaponType = "staff"  // mage
	WeaponBook   WeaponType = "book"   // mage
)

// WeaponTypes lists all weapon types.
var WeaponTypes = []WeaponType{
	WeaponSword, WeaponMace, WeaponShield, WeaponArmor, WeaponStaff, WeaponBook,
}

// Valid reports whether the weapon type is known.
func (t WeaponType) Valid() bool {
	switch t {
	case WeaponSword, WeaponMace, WeaponShield, WeaponArmor, WeaponStaff, WeaponBook:
		return true
	}
	return false
}

// StatBundle is the set of stat bonuses a weapon grants its wielder.
// Zero fields mean no bonus for that stat.
type StatBundle struct {
	Health     int `json:"health,omitempty"`
	Damage     int `json:"damage,omitempty"`
	Armor      int `json:"armor,omitempty"`
	SpellPower int `json:"spell_power,omitempty"`
	CritChance int `json:"critical_chance,omitempty"`
}

// IsZero reports whether the bundle grants nothing.
func (b StatBundle) IsZero() bool {
	return b == StatBundle{}
}

// Scale returns a copy of the bundle with every value scaled by mult,
// truncated toward zero.
func (b StatBundle) Scale(mult float64) StatBundle {
	return StatBundle{
		Health:     int(float64(b.Health) * mult),
		Damage:     int(float64(b.Damage) * mult),
		Armor:      int(float64(b.Armor) * mult),
		SpellPower: int(float64(b.SpellPower) * mult),
		CritChance: int(float64(b.CritChance) * mult),
	}
}

// Weapon is an owned equippable item.
// WielderID and the wielder's WeaponID must agree at all times.
type Weapon struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      WeaponType `json:"type"`
	Rarity    Rarity     `json:"rarity"`
	Stats     StatBundle `json:"stats"`
	WielderID string     `json:"wielder_id,omitempty"`
}

// Equipped reports whether the weapon is currently wielded by a unit.
func (w *Weapon) Equipped() bool {
	return w.WielderID != ""
}
