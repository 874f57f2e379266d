package gacha

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacticbot/tacticbot/internal/catalog"
	"github.com/tacticbot/tacticbot/internal/concurrency"
	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/event"
)

type mockInventories struct {
	inventories map[string]*domain.PlayerInventory
}

func newMockInventories() *mockInventories {
	return &mockInventories{inventories: make(map[string]*domain.PlayerInventory)}
}

func (m *mockInventories) Ensure(_ context.Context, playerID string) (*domain.PlayerInventory, error) {
	inv, ok := m.inventories[playerID]
	if !ok {
		inv = &domain.PlayerInventory{PlayerID: playerID, Balance: 500}
		m.inventories[playerID] = inv
	}
	return inv, nil
}

func (m *mockInventories) Save(_ context.Context, inv *domain.PlayerInventory) error {
	m.inventories[inv.PlayerID] = inv
	return nil
}

type mockTemplateRepo struct {
	templates []domain.UnitTemplate
}

func (m *mockTemplateRepo) GetTemplates(_ context.Context) ([]domain.UnitTemplate, error) {
	return m.templates, nil
}

func (m *mockTemplateRepo) GetTemplatesByRarity(_ context.Context, r domain.Rarity) ([]domain.UnitTemplate, error) {
	var out []domain.UnitTemplate
	for _, t := range m.templates {
		if t.Rarity == r {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTemplateRepo) SeedTemplates(_ context.Context, templates []domain.UnitTemplate) error {
	m.templates = append(m.templates, templates...)
	return nil
}

func newTestService(inventories *mockInventories, seed uint64) *service {
	svc := NewService(
		inventories,
		&mockTemplateRepo{templates: catalog.DefaultTemplates},
		concurrency.NewLockManager(),
		event.NewMemoryBus(),
	).(*service)
	rng := rand.New(rand.NewPCG(seed, 0))
	svc.rnd = rng.Float64
	return svc
}

func TestDrawUnitDeductsCost(t *testing.T) {
	inventories := newMockInventories()
	svc := newTestService(inventories, 1)

	res, err := svc.DrawUnit(context.Background(), "player1")
	require.NoError(t, err)
	require.NotNil(t, res.Unit)
	assert.Equal(t, UnitDrawCost, res.Cost)
	assert.Equal(t, 500-UnitDrawCost, res.Balance)
	assert.True(t, res.Unit.Rarity.Valid())
	assert.True(t, res.Unit.Role.Valid())

	inv := inventories.inventories["player1"]
	require.Len(t, inv.Units, 1)
	assert.Equal(t, res.Unit.ID, inv.Units[0].ID)
}

func TestDrawUnitInsufficientFunds(t *testing.T) {
	inventories := newMockInventories()
	inventories.inventories["broke"] = &domain.PlayerInventory{PlayerID: "broke", Balance: UnitDrawCost - 1}
	svc := newTestService(inventories, 1)

	_, err := svc.DrawUnit(context.Background(), "broke")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Empty(t, inventories.inventories["broke"].Units)
}

func TestDrawWeapon(t *testing.T) {
	inventories := newMockInventories()
	svc := newTestService(inventories, 2)

	res, err := svc.DrawWeapon(context.Background(), "player1")
	require.NoError(t, err)
	require.NotNil(t, res.Weapon)
	assert.Equal(t, WeaponDrawCost, res.Cost)
	assert.Equal(t, 500-WeaponDrawCost, res.Balance)
	assert.NotEmpty(t, res.Weapon.Name)
	assert.False(t, res.Weapon.Stats.IsZero())
	assert.Empty(t, res.Weapon.WielderID)
}

func TestDrawWeaponInsufficientFunds(t *testing.T) {
	inventories := newMockInventories()
	inventories.inventories["broke"] = &domain.PlayerInventory{PlayerID: "broke", Balance: WeaponDrawCost - 1}
	svc := newTestService(inventories, 2)

	_, err := svc.DrawWeapon(context.Background(), "broke")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

// TestRarityDistribution draws many rarities with a seeded generator and
// checks convergence to the configured 60/30/9/1 weights.
func TestRarityDistribution(t *testing.T) {
	table := buildRarityTable()
	rng := rand.New(rand.NewPCG(42, 0))

	const n = 20000
	counts := map[domain.Rarity]int{}
	for i := 0; i < n; i++ {
		counts[table.selectRarity(rng.Float64())]++
	}

	for _, w := range catalog.RarityWeights {
		got := float64(counts[w.Rarity]) / n
		want := float64(w.Weight) / 100
		assert.InDeltaf(t, want, got, 0.02, "rarity %s drew %.4f, want ~%.2f", w.Rarity, got, want)
	}
}

func TestSelectRarityBoundaries(t *testing.T) {
	table := buildRarityTable()

	assert.Equal(t, domain.RarityCommon, table.selectRarity(0))
	assert.Equal(t, domain.RarityCommon, table.selectRarity(0.5999))
	assert.Equal(t, domain.RarityRare, table.selectRarity(0.60))
	assert.Equal(t, domain.RarityEpic, table.selectRarity(0.90))
	assert.Equal(t, domain.RarityLegendary, table.selectRarity(0.99))
	assert.Equal(t, domain.RarityLegendary, table.selectRarity(math.Nextafter(1, 0)))
}

func TestPickTemplateFallsBackDownTiers(t *testing.T) {
	// Only common templates stored; an epic roll keeps epic rarity but
	// borrows a common name.
	templates := []domain.UnitTemplate{
		{Name: "Footman Derrick", Role: domain.RoleWarrior, Rarity: domain.RarityCommon},
	}
	rnd := func() float64 { return 0 }

	tpl := pickTemplate(templates, domain.RarityEpic, rnd)
	assert.Equal(t, "Footman Derrick", tpl.Name)
	assert.Equal(t, domain.RarityEpic, tpl.Rarity)

	// A legendary roll with no stored legendaries uses a built-in archetype.
	tpl = pickTemplate(templates, domain.RarityLegendary, rnd)
	assert.Equal(t, domain.RarityLegendary, tpl.Rarity)
	assert.Contains(t, []domain.Role{domain.RoleMage, domain.RoleTank, domain.RoleWarrior}, tpl.Role)
}

func TestComposeWeaponName(t *testing.T) {
	// rnd=0 means no special roll and first prefix/suffix.
	rnd := func() float64 { return 0 }
	name := composeWeaponName(domain.WeaponSword, domain.RarityCommon, rnd)
	assert.Equal(t, "Basic Blade", name)

	// A legendary roll below the special chance lands on a unique name.
	name = composeWeaponName(domain.WeaponSword, domain.RarityLegendary, rnd)
	assert.Contains(t, catalog.SpecialNames(domain.WeaponSword), name)
}
