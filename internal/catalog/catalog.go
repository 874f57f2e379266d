// Package catalog holds the static stat model: role base lines, rarity
// scaling, weapon archetypes, and the default roster of unit templates.
// Everything here is pure derivation; nothing touches storage.
package catalog

import (
	"github.com/google/uuid"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// DefaultTemplates is the built-in roster, four names per role spread across
// the rarity tiers. Seeded into the template table on setup.
var DefaultTemplates = []domain.UnitTemplate{
	{Name: "Apprentice Elara", Role: domain.RoleMage, Rarity: domain.RarityCommon},
	{Name: "Hedge Wizard Tomas", Role: domain.RoleMage, Rarity: domain.RarityCommon},
	{Name: "Stormcaller Veyra", Role: domain.RoleMage, Rarity: domain.RarityRare},
	{Name: "Archmage Sorin", Role: domain.RoleMage, Rarity: domain.RarityEpic},
	{Name: "Shieldbearer Brom", Role: domain.RoleTank, Rarity: domain.RarityCommon},
	{Name: "Wall of Kresh", Role: domain.RoleTank, Rarity: domain.RarityCommon},
	{Name: "Ironclad Maren", Role: domain.RoleTank, Rarity: domain.RarityRare},
	{Name: "Bastion Ulfgar", Role: domain.RoleTank, Rarity: domain.RarityEpic},
	{Name: "Footman Derrick", Role: domain.RoleWarrior, Rarity: domain.RarityCommon},
	{Name: "Sellsword Kira", Role: domain.RoleWarrior, Rarity: domain.RarityCommon},
	{Name: "Blademaster Joren", Role: domain.RoleWarrior, Rarity: domain.RarityRare},
	{Name: "Champion Aldric", Role: domain.RoleWarrior, Rarity: domain.RarityEpic},
}

// legendaryTemplates are rolled when the rarity draw lands on legendary and
// the stored template table has no legendary entry for the role.
var legendaryTemplates = map[domain.Role]domain.UnitTemplate{
	domain.RoleMage:    {Name: "Eternal Magus Azariel", Role: domain.RoleMage, Rarity: domain.RarityLegendary},
	domain.RoleTank:    {Name: "The Unbreakable Gorm", Role: domain.RoleTank, Rarity: domain.RarityLegendary},
	domain.RoleWarrior: {Name: "Warlord Sylas the Red", Role: domain.RoleWarrior, Rarity: domain.RarityLegendary},
}

// RarityMultiplier returns the stat multiplier for a rarity tier,
// defaulting to the common multiplier for unknown values.
func RarityMultiplier(r domain.Rarity) float64 {
	if m, ok := rarityMultipliers[r]; ok {
		return m
	}
	return rarityMultipliers[domain.RarityCommon]
}

// scale applies the rarity multiplier to a base value, truncating toward zero.
func scale(base int, mult float64) int {
	return int(float64(base) * mult)
}

// BuildUnit derives a full unit from a template via base stats and the rarity
// multiplier. The returned unit is at full health with no weapon equipped.
func BuildUnit(t domain.UnitTemplate) *domain.Unit {
	base, ok := roleBaseStats[t.Role]
	if !ok {
		base = roleBaseStats[domain.RoleWarrior]
	}
	mult := RarityMultiplier(t.Rarity)

	u := &domain.Unit{
		ID:        uuid.New().String(),
		Name:      t.Name,
		Role:      t.Role,
		Rarity:    t.Rarity,
		MaxHealth: scale(base.Health, mult),
		Damage:    scale(base.Damage, mult),
		Armor:     scale(base.Armor, mult),
		Row:       domain.RowUnassigned,
	}
	switch t.Role {
	case domain.RoleMage:
		u.SpellPower = scale(int(base.SpellPower), mult)
	case domain.RoleTank:
		u.Armor += scale(int(base.ArmorBonus), mult)
	case domain.RoleWarrior:
		u.CritChance = scale(int(base.CritChance), mult)
	}
	u.CurrentHealth = u.MaxHealth
	return u
}

// LegendaryTemplate returns the built-in legendary archetype for a role.
func LegendaryTemplate(role domain.Role) domain.UnitTemplate {
	if t, ok := legendaryTemplates[role]; ok {
		return t
	}
	return legendaryTemplates[domain.RoleWarrior]
}

// BuildWeapon derives a weapon instance of the given type and rarity. The
// name is supplied by the caller so naming policy stays with acquisition.
func BuildWeapon(name string, wt domain.WeaponType, r domain.Rarity) *domain.Weapon {
	return &domain.Weapon{
		ID:     uuid.New().String(),
		Name:   name,
		Type:   wt,
		Rarity: r,
		Stats:  WeaponStats(wt, r),
	}
}

// WeaponStats returns the rarity-scaled stat bundle for a weapon type.
func WeaponStats(wt domain.WeaponType, r domain.Rarity) domain.StatBundle {
	base, ok := weaponBaseStats[wt]
	if !ok {
		return domain.StatBundle{}
	}
	return base.Scale(RarityMultiplier(r))
}

// Compatible reports whether a role may wield a weapon type.
func Compatible(role domain.Role, wt domain.WeaponType) bool {
	for _, t := range weaponCompatibility[role] {
		if t == wt {
			return true
		}
	}
	return false
}

// CompatibleTypes returns the weapon types a role may wield.
func CompatibleTypes(role domain.Role) []domain.WeaponType {
	return weaponCompatibility[role]
}

// AllWeaponTypes lists every weapon archetype in a stable order.
func AllWeaponTypes() []domain.WeaponType {
	return []domain.WeaponType{
		domain.WeaponSword, domain.WeaponMace,
		domain.WeaponShield, domain.WeaponArmor,
		domain.WeaponStaff, domain.WeaponBook,
	}
}

// NamePrefixes returns the rarity-tiered weapon name prefixes.
func NamePrefixes(r domain.Rarity) []string {
	if p, ok := weaponNamePrefixes[r]; ok {
		return p
	}
	return weaponNamePrefixes[domain.RarityCommon]
}

// NameSuffixes returns the type-specific weapon name suffixes.
func NameSuffixes(wt domain.WeaponType) []string {
	return weaponNameSuffixes[wt]
}

// SpecialNames returns the unique legendary names for a weapon type.
func SpecialNames(wt domain.WeaponType) []string {
	return specialWeaponNames[wt]
}

// SalePrice returns the payout for selling an item of the given rarity.
func SalePrice(r domain.Rarity) int {
	if p, ok := SalePrices[r]; ok {
		return p
	}
	return DefaultSalePrice
}
