package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacticbot/tacticbot/internal/domain"
)

func TestBuildUnitBaseStats(t *testing.T) {
	tests := []struct {
		name       string
		role       domain.Role
		rarity     domain.Rarity
		health     int
		damage     int
		armor      int
		spellPower int
		critChance int
	}{
		{"common mage", domain.RoleMage, domain.RarityCommon, 80, 40, 5, 15, 0},
		{"common tank", domain.RoleTank, domain.RarityCommon, 150, 20, 25, 0, 0},
		{"common warrior", domain.RoleWarrior, domain.RarityCommon, 100, 30, 10, 0, 10},
		// 1.2 multiplier truncates toward zero: 80*1.2=96, 5*1.2=6
		{"rare mage", domain.RoleMage, domain.RarityRare, 96, 48, 6, 18, 0},
		{"epic tank", domain.RoleTank, domain.RarityEpic, 225, 30, 37, 0, 0},
		{"legendary warrior", domain.RoleWarrior, domain.RarityLegendary, 200, 60, 20, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := BuildUnit(domain.UnitTemplate{Name: "Test", Role: tt.role, Rarity: tt.rarity})
			assert.Equal(t, tt.health, u.MaxHealth)
			assert.Equal(t, tt.health, u.CurrentHealth)
			assert.Equal(t, tt.damage, u.Damage)
			assert.Equal(t, tt.armor, u.Armor)
			assert.Equal(t, tt.spellPower, u.SpellPower)
			assert.Equal(t, tt.critChance, u.CritChance)
			assert.NotEmpty(t, u.ID)
			assert.Equal(t, domain.RowUnassigned, u.Row)
		})
	}
}

func TestWeaponStatsScaling(t *testing.T) {
	// Sword base is 10 damage / 5 crit. Epic multiplier is 1.5.
	stats := WeaponStats(domain.WeaponSword, domain.RarityEpic)
	assert.Equal(t, 15, stats.Damage)
	assert.Equal(t, 7, stats.CritChance)
	assert.Zero(t, stats.Health)

	// Unknown type yields an empty bundle.
	assert.True(t, WeaponStats("spoon", domain.RarityCommon).IsZero())
}

func TestCompatibility(t *testing.T) {
	assert.True(t, Compatible(domain.RoleWarrior, domain.WeaponSword))
	assert.True(t, Compatible(domain.RoleWarrior, domain.WeaponMace))
	assert.True(t, Compatible(domain.RoleTank, domain.WeaponShield))
	assert.True(t, Compatible(domain.RoleMage, domain.WeaponBook))

	assert.False(t, Compatible(domain.RoleMage, domain.WeaponSword))
	assert.False(t, Compatible(domain.RoleTank, domain.WeaponStaff))
	assert.False(t, Compatible(domain.RoleWarrior, domain.WeaponArmor))
}

func TestDefaultTemplatesCoverEveryRole(t *testing.T) {
	byRole := map[domain.Role]int{}
	for _, tpl := range DefaultTemplates {
		require.True(t, tpl.Role.Valid(), "template %q has invalid role", tpl.Name)
		require.True(t, tpl.Rarity.Valid(), "template %q has invalid rarity", tpl.Name)
		byRole[tpl.Role]++
	}
	for _, role := range domain.Roles {
		assert.GreaterOrEqual(t, byRole[role], 2, "role %s needs templates", role)
	}
}

func TestLegendaryTemplatePerRole(t *testing.T) {
	for _, role := range domain.Roles {
		tpl := LegendaryTemplate(role)
		assert.Equal(t, role, tpl.Role)
		assert.Equal(t, domain.RarityLegendary, tpl.Rarity)
		assert.NotEmpty(t, tpl.Name)
	}
}

func TestRarityWeightsSumToHundred(t *testing.T) {
	total := 0
	for _, w := range RarityWeights {
		total += w.Weight
	}
	assert.Equal(t, 100, total)
}

func TestSalePrice(t *testing.T) {
	assert.Equal(t, 25, SalePrice(domain.RarityCommon))
	assert.Equal(t, 200, SalePrice(domain.RarityLegendary))
	assert.Equal(t, DefaultSalePrice, SalePrice("mythic"))
}

func TestNamePoolsNonEmpty(t *testing.T) {
	for _, r := range domain.Rarities {
		assert.NotEmpty(t, NamePrefixes(r))
	}
	for _, wt := range AllWeaponTypes() {
		assert.NotEmpty(t, NameSuffixes(wt))
		assert.NotEmpty(t, SpecialNames(wt))
	}
}
