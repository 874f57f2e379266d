package catalog

import "github.com/tacticbot/tacticbot/internal/domain"

// ============================================================================
// Role base stats
// ============================================================================

// roleBase holds the unscaled stat line for a role.
type roleBase struct {
	Health int
	Damage int
	Armor  int
	// Special stat bases. Tanks fold their bonus directly into armor.
	SpellPower float64
	ArmorBonus float64
	CritChance float64
}

var roleBaseStats = map[domain.Role]roleBase{
	domain.RoleMage:    {Health: 80, Damage: 40, Armor: 5, SpellPower: 15},
	domain.RoleTank:    {Health: 150, Damage: 20, Armor: 15, ArmorBonus: 10},
	domain.RoleWarrior: {Health: 100, Damage: 30, Armor: 10, CritChance: 10},
}

// ============================================================================
// Rarity model
// ============================================================================

var rarityMultipliers = map[domain.Rarity]float64{
	domain.RarityCommon:    1.0,
	domain.RarityRare:      1.2,
	domain.RarityEpic:      1.5,
	domain.RarityLegendary: 2.0,
}

// RarityWeights is the fixed acquisition distribution, out of a total of 100.
var RarityWeights = []struct {
	Rarity domain.Rarity
	Weight int
}{
	{domain.RarityCommon, 60},
	{domain.RarityRare, 30},
	{domain.RarityEpic, 9},
	{domain.RarityLegendary, 1},
}

// ============================================================================
// Weapon model
// ============================================================================

var weaponBaseStats = map[domain.WeaponType]domain.StatBundle{
	domain.WeaponSword:  {Damage: 10, CritChance: 5},
	domain.WeaponMace:   {Damage: 15, Armor: 3},
	domain.WeaponShield: {Armor: 15, Health: 20},
	domain.WeaponArmor:  {Health: 40, Armor: 10},
	domain.WeaponStaff:  {SpellPower: 15, Damage: 5},
	domain.WeaponBook:   {SpellPower: 20, Health: 10},
}

var weaponCompatibility = map[domain.Role][]domain.WeaponType{
	domain.RoleWarrior: {domain.WeaponSword, domain.WeaponMace},
	domain.RoleTank:    {domain.WeaponShield, domain.WeaponArmor},
	domain.RoleMage:    {domain.WeaponStaff, domain.WeaponBook},
}

// ============================================================================
// Weapon naming pools
// ============================================================================

var weaponNamePrefixes = map[domain.Rarity][]string{
	domain.RarityCommon:    {"Basic", "Simple", "Plain", "Crude", "Standard"},
	domain.RarityRare:      {"Quality", "Sturdy", "Reliable", "Fine", "Improved"},
	domain.RarityEpic:      {"Mighty", "Superior", "Exceptional", "Radiant", "Enchanted"},
	domain.RarityLegendary: {"Ancient", "Divine", "Mythical", "Celestial", "Legendary"},
}

var weaponNameSuffixes = map[domain.WeaponType][]string{
	domain.WeaponSword:  {"Blade", "Sword", "Saber", "Katana", "Claymore", "Rapier"},
	domain.WeaponMace:   {"Mace", "Hammer", "Maul", "Crusher", "Warhammer", "Flail"},
	domain.WeaponShield: {"Shield", "Defender", "Bulwark", "Aegis", "Protector"},
	domain.WeaponArmor:  {"Plate", "Armor", "Mail", "Cuirass", "Guardian"},
	domain.WeaponStaff:  {"Staff", "Rod", "Wand", "Scepter", "Focus"},
	domain.WeaponBook:   {"Tome", "Codex", "Grimoire", "Spellbook", "Manuscript"},
}

// specialWeaponNames are unique names a legendary roll can land on.
var specialWeaponNames = map[domain.WeaponType][]string{
	domain.WeaponSword:  {"Excalibur", "Dragonslayer", "Soul Edge", "Frostmourne"},
	domain.WeaponMace:   {"Thunderfury", "Doomhammer", "Worldbreaker", "Gorehowl"},
	domain.WeaponShield: {"Aegis of Valor", "Bulwark of the Ages", "Divine Protector"},
	domain.WeaponArmor:  {"Dragonscale", "Immortal Plate", "Titan's Embrace"},
	domain.WeaponStaff:  {"Staff of Dominion", "Archmage's Glory", "Spellweaver"},
	domain.WeaponBook:   {"Necronomicon", "Compendium Arcana", "Book of Eternity"},
}

// SalePrices is the rarity-tiered payout for selling a unit or weapon.
var SalePrices = map[domain.Rarity]int{
	domain.RarityCommon:    25,
	domain.RarityRare:      50,
	domain.RarityEpic:      100,
	domain.RarityLegendary: 200,
}

// DefaultSalePrice is paid for items whose rarity is somehow unknown.
const DefaultSalePrice = 10
