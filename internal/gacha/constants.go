package gacha

const (
	// UnitDrawCost is the price of a unit acquisition roll.
	UnitDrawCost = 100
	// WeaponDrawCost is the price of a weapon acquisition roll.
	WeaponDrawCost = 75

	// SpecialNameChance is the probability a legendary weapon rolls one of
	// the unique names instead of a composed one.
	SpecialNameChance = 0.30
)
