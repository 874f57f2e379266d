package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacticbot/tacticbot/internal/catalog"
	"github.com/tacticbot/tacticbot/internal/domain"
)

func snapshot(name string, role domain.Role, rarity domain.Rarity, row domain.Row) *domain.BattleUnit {
	u := catalog.BuildUnit(domain.UnitTemplate{Name: name, Role: role, Rarity: rarity})
	bu := domain.SnapshotUnit(u)
	bu.Row = row
	return bu
}

func never() float64  { return 0.99 }
func always() float64 { return 0 }

func TestMageAttackPiercesArmor(t *testing.T) {
	// Legendary mage: 160 health, 80 damage, 10 armor, 30 spell power.
	mage := snapshot("Eternal Magus Azariel", domain.RoleMage, domain.RarityLegendary, domain.RowBack)
	require.Equal(t, 80, mage.Damage)
	require.Equal(t, 30, mage.SpellPower)

	// Common tank: 150 health, 20 damage, 25 armor after the role bonus.
	tank := snapshot("Shieldbearer Brom", domain.RoleTank, domain.RarityCommon, domain.RowFront)
	require.Equal(t, 150, tank.CurrentHealth)
	require.Equal(t, 25, tank.Armor)

	// Raw 80+30=110 against 25-7=18 remaining armor leaves 92.
	res := resolveAttack(mage, tank, nil, never)
	assert.Equal(t, 92, res.Damage)
	assert.Equal(t, 58, tank.CurrentHealth)
	assert.False(t, res.Critical)
	assert.False(t, res.TargetDefeated)
	assert.Zero(t, res.CounterDamage)
}

func TestWarriorCriticalHit(t *testing.T) {
	warrior := snapshot("Footman Derrick", domain.RoleWarrior, domain.RarityCommon, domain.RowFront)
	warrior.CritChance = 50
	require.Equal(t, 30, warrior.Damage)
	target := snapshot("Sellsword Kira", domain.RoleWarrior, domain.RarityCommon, domain.RowFront)
	target.Armor = 0

	// A roll under the crit chance scales damage to floor(30*1.5)=45.
	res := resolveAttack(warrior, target, nil, always)
	assert.True(t, res.Critical)
	assert.Equal(t, 45, res.Damage)

	// A roll above it stays at base damage.
	target2 := snapshot("Sellsword Kira", domain.RoleWarrior, domain.RarityCommon, domain.RowFront)
	target2.Armor = 0
	res = resolveAttack(warrior, target2, nil, never)
	assert.False(t, res.Critical)
	assert.Equal(t, 30, res.Damage)
}

func TestMinimumDamageFloor(t *testing.T) {
	weakling := snapshot("Footman Derrick", domain.RoleWarrior, domain.RarityCommon, domain.RowFront)
	weakling.Damage = 1
	fortress := snapshot("Shieldbearer Brom", domain.RoleTank, domain.RarityCommon, domain.RowFront)
	fortress.Armor = 9999

	res := resolveAttack(weakling, fortress, nil, never)
	assert.Equal(t, 1, res.Damage)
	assert.Equal(t, fortress.MaxHealth-1, fortress.CurrentHealth)
}

func TestHealthNeverNegative(t *testing.T) {
	attacker := snapshot("Warlord Sylas the Red", domain.RoleWarrior, domain.RarityLegendary, domain.RowFront)
	target := snapshot("Apprentice Elara", domain.RoleMage, domain.RarityCommon, domain.RowFront)
	target.CurrentHealth = 3

	res := resolveAttack(attacker, target, nil, never)
	assert.True(t, res.TargetDefeated)
	assert.Zero(t, target.CurrentHealth)
	assert.False(t, target.Alive())
}

func TestBackRowCounterattack(t *testing.T) {
	// Tank striking a defended back-row mage takes a group counter.
	attacker := snapshot("Shieldbearer Brom", domain.RoleTank, domain.RarityCommon, domain.RowFront)
	require.Equal(t, 20, attacker.Damage)
	require.Equal(t, 25, attacker.Armor)

	mage := snapshot("Apprentice Elara", domain.RoleMage, domain.RarityCommon, domain.RowBack)
	defenders := []*domain.BattleUnit{
		mage,
		snapshot("Footman Derrick", domain.RoleWarrior, domain.RarityCommon, domain.RowFront),
		snapshot("Sellsword Kira", domain.RoleWarrior, domain.RarityCommon, domain.RowFront),
	}

	// floor(20*0.25)*2 - 25 = -15, floored to the minimum of 1.
	res := resolveAttack(attacker, mage, defenders, never)
	assert.Equal(t, 2, res.CounterUnits)
	assert.Equal(t, 1, res.CounterDamage)
	assert.Equal(t, attacker.MaxHealth-1, attacker.CurrentHealth)
}

func TestCounterattackScalesWithDefenders(t *testing.T) {
	attacker := snapshot("Warlord Sylas the Red", domain.RoleWarrior, domain.RarityLegendary, domain.RowFront)
	attacker.Armor = 0
	require.Equal(t, 60, attacker.Damage)

	mage := snapshot("Apprentice Elara", domain.RoleMage, domain.RarityCommon, domain.RowBack)
	defenders := []*domain.BattleUnit{mage}
	// Five front-liners, but the counter caps at three attackers.
	for i := 0; i < 5; i++ {
		defenders = append(defenders, snapshot("Footman Derrick", domain.RoleWarrior, domain.RarityCommon, domain.RowFront))
	}

	res := resolveAttack(attacker, mage, defenders, never)
	assert.Equal(t, MaxCounterattackers, res.CounterUnits)
	// floor(60*0.25)*3 - 0 = 45.
	assert.Equal(t, 45, res.CounterDamage)
}

func TestNoCounterCases(t *testing.T) {
	frontTarget := snapshot("Footman Derrick", domain.RoleWarrior, domain.RarityCommon, domain.RowFront)
	backMage := snapshot("Apprentice Elara", domain.RoleMage, domain.RarityCommon, domain.RowBack)
	frontWarrior := snapshot("Sellsword Kira", domain.RoleWarrior, domain.RarityCommon, domain.RowFront)

	// Front-row targets never provoke a counter.
	attacker := snapshot("Shieldbearer Brom", domain.RoleTank, domain.RarityCommon, domain.RowFront)
	res := resolveAttack(attacker, frontTarget, []*domain.BattleUnit{frontWarrior}, never)
	assert.Zero(t, res.CounterDamage)

	// Mage attackers strike the back row freely.
	caster := snapshot("Apprentice Elara", domain.RoleMage, domain.RarityCommon, domain.RowBack)
	res = resolveAttack(caster, backMage, []*domain.BattleUnit{frontWarrior}, never)
	assert.Zero(t, res.CounterDamage)

	// Dead or back-row defenders do not counter.
	deadWarrior := snapshot("Sellsword Kira", domain.RoleWarrior, domain.RarityCommon, domain.RowFront)
	deadWarrior.CurrentHealth = 0
	backWarrior := snapshot("Footman Derrick", domain.RoleWarrior, domain.RarityCommon, domain.RowBack)
	res = resolveAttack(attacker, backMage, []*domain.BattleUnit{deadWarrior, backWarrior}, never)
	assert.Zero(t, res.CounterDamage)
}

func TestDefaultRow(t *testing.T) {
	assert.Equal(t, domain.RowBack, defaultRow(domain.RoleMage))
	assert.Equal(t, domain.RowFront, defaultRow(domain.RoleTank))
	assert.Equal(t, domain.RowFront, defaultRow(domain.RoleWarrior))
}
