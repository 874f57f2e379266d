package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacticbot/tacticbot/internal/catalog"
	"github.com/tacticbot/tacticbot/internal/concurrency"
	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/event"
)

type mockPlayerRepo struct {
	inventories map[string]*domain.PlayerInventory
}

func newMockPlayerRepo() *mockPlayerRepo {
	return &mockPlayerRepo{inventories: make(map[string]*domain.PlayerInventory)}
}

func (m *mockPlayerRepo) GetInventory(_ context.Context, playerID string) (*domain.PlayerInventory, error) {
	inv, ok := m.inventories[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return inv, nil
}

func (m *mockPlayerRepo) UpsertInventory(_ context.Context, inv *domain.PlayerInventory) error {
	m.inventories[inv.PlayerID] = inv
	return nil
}

func (m *mockPlayerRepo) DeleteInventory(_ context.Context, playerID string) error {
	delete(m.inventories, playerID)
	return nil
}

func (m *mockPlayerRepo) TopBalances(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	for id, inv := range m.inventories {
		entries = append(entries, domain.LeaderboardEntry{PlayerID: id, Balance: inv.Balance, UnitCount: len(inv.Units)})
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
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

func newTestService(repo *mockPlayerRepo) *service {
	svc := NewService(
		repo,
		&mockTemplateRepo{templates: catalog.DefaultTemplates},
		concurrency.NewLockManager(),
		event.NewMemoryBus(),
		50*time.Millisecond,
	).(*service)
	svc.rnd = func() float64 { return 0 }
	return svc
}

func acceptAll(context.Context, string) (bool, error) { return true, nil }

func TestEnsureCreatesStarterInventory(t *testing.T) {
	repo := newMockPlayerRepo()
	svc := newTestService(repo)

	inv, err := svc.Ensure(context.Background(), "player1")
	require.NoError(t, err)

	assert.Equal(t, StartingBalance, inv.Balance)
	assert.Len(t, inv.Units, StarterUnitCount)
	for _, u := range inv.Units {
		assert.Equal(t, domain.RarityCommon, u.Rarity)
		assert.Equal(t, u.MaxHealth, u.CurrentHealth)
	}

	// The record is persisted, not just cached.
	_, ok := repo.inventories["player1"]
	assert.True(t, ok)
}

func TestEnsureReturnsExistingInventory(t *testing.T) {
	repo := newMockPlayerRepo()
	repo.inventories["player1"] = &domain.PlayerInventory{PlayerID: "player1", Balance: 42}
	svc := newTestService(repo)

	inv, err := svc.Ensure(context.Background(), "player1")
	require.NoError(t, err)
	assert.Equal(t, 42, inv.Balance)
	assert.Empty(t, inv.Units)
}

func TestClaimDaily(t *testing.T) {
	svc := newTestService(newMockPlayerRepo())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	res, err := svc.ClaimDaily(context.Background(), "player1")
	require.NoError(t, err)
	assert.Equal(t, DailyReward, res.Amount)
	assert.Equal(t, StartingBalance+DailyReward, res.Balance)
	assert.Equal(t, now.Add(DailyCooldown), res.NextClaimAt)

	// Second claim within the window is rejected.
	now = now.Add(time.Hour)
	_, err = svc.ClaimDaily(context.Background(), "player1")
	assert.ErrorIs(t, err, domain.ErrOnCooldown)

	// After a full day it succeeds again.
	now = now.Add(DailyCooldown)
	res, err = svc.ClaimDaily(context.Background(), "player1")
	require.NoError(t, err)
	assert.Equal(t, StartingBalance+2*DailyReward, res.Balance)
}

func TestSellUnit(t *testing.T) {
	svc := newTestService(newMockPlayerRepo())
	ctx := context.Background()

	inv, err := svc.Ensure(ctx, "player1")
	require.NoError(t, err)

	// Pad the roster above the minimum so a sale is allowed.
	for len(inv.Units) <= domain.MinOwnedUnits {
		inv.Units = append(inv.Units, catalog.BuildUnit(catalog.DefaultTemplates[0]))
	}
	require.NoError(t, svc.Save(ctx, inv))

	target := inv.Units[0]
	res, err := svc.SellUnit(ctx, "player1", target.ID, acceptAll)
	require.NoError(t, err)
	assert.Equal(t, catalog.SalePrice(target.Rarity), res.Price)
	assert.Equal(t, StartingBalance+res.Price, res.Balance)

	inv, err = svc.Ensure(ctx, "player1")
	require.NoError(t, err)
	assert.Nil(t, inv.UnitByID(target.ID))
}

func TestSellUnitGuards(t *testing.T) {
	svc := newTestService(newMockPlayerRepo())
	ctx := context.Background()

	inv, err := svc.Ensure(ctx, "player1")
	require.NoError(t, err)

	// Roster is at the starter size, below the sale floor.
	_, err = svc.SellUnit(ctx, "player1", inv.Units[0].ID, acceptAll)
	assert.ErrorIs(t, err, domain.ErrBelowMinimumUnits)

	for len(inv.Units) <= domain.MinOwnedUnits {
		inv.Units = append(inv.Units, catalog.BuildUnit(catalog.DefaultTemplates[0]))
	}

	// An armed unit cannot be sold.
	weapon := catalog.BuildWeapon("Basic Blade", domain.WeaponSword, domain.RarityCommon)
	inv.Weapons = append(inv.Weapons, weapon)
	inv.Units[0].WeaponID = weapon.ID
	inv.Units[0].Weapon = weapon
	weapon.WielderID = inv.Units[0].ID
	require.NoError(t, svc.Save(ctx, inv))

	_, err = svc.SellUnit(ctx, "player1", inv.Units[0].ID, acceptAll)
	assert.ErrorIs(t, err, domain.ErrItemEquipped)

	_, err = svc.SellUnit(ctx, "player1", "nope", acceptAll)
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)
}

func TestSellWeapon(t *testing.T) {
	svc := newTestService(newMockPlayerRepo())
	ctx := context.Background()

	inv, err := svc.Ensure(ctx, "player1")
	require.NoError(t, err)
	weapon := catalog.BuildWeapon("Mythical Maul", domain.WeaponMace, domain.RarityLegendary)
	inv.Weapons = append(inv.Weapons, weapon)
	require.NoError(t, svc.Save(ctx, inv))

	res, err := svc.SellWeapon(ctx, "player1", weapon.ID, acceptAll)
	require.NoError(t, err)
	assert.Equal(t, 200, res.Price)

	inv, _ = svc.Ensure(ctx, "player1")
	assert.Nil(t, inv.WeaponByID(weapon.ID))
}

func TestSellConfirmationDeclined(t *testing.T) {
	svc := newTestService(newMockPlayerRepo())
	ctx := context.Background()

	inv, err := svc.Ensure(ctx, "player1")
	require.NoError(t, err)
	weapon := catalog.BuildWeapon("Basic Blade", domain.WeaponSword, domain.RarityCommon)
	inv.Weapons = append(inv.Weapons, weapon)
	require.NoError(t, svc.Save(ctx, inv))

	decline := func(context.Context, string) (bool, error) { return false, nil }
	_, err = svc.SellWeapon(ctx, "player1", weapon.ID, decline)
	assert.ErrorIs(t, err, domain.ErrConfirmationDeclined)

	// Declined sale leaves the weapon in place.
	inv, _ = svc.Ensure(ctx, "player1")
	assert.NotNil(t, inv.WeaponByID(weapon.ID))
}

func TestSellConfirmationTimeout(t *testing.T) {
	svc := newTestService(newMockPlayerRepo())
	ctx := context.Background()

	inv, err := svc.Ensure(ctx, "player1")
	require.NoError(t, err)
	weapon := catalog.BuildWeapon("Basic Blade", domain.WeaponSword, domain.RarityCommon)
	inv.Weapons = append(inv.Weapons, weapon)
	require.NoError(t, svc.Save(ctx, inv))

	stall := func(cctx context.Context, _ string) (bool, error) {
		<-cctx.Done()
		return false, cctx.Err()
	}
	_, err = svc.SellWeapon(ctx, "player1", weapon.ID, stall)
	assert.ErrorIs(t, err, domain.ErrConfirmationTimeout)
}

func TestAssignRow(t *testing.T) {
	svc := newTestService(newMockPlayerRepo())
	ctx := context.Background()

	inv, err := svc.Ensure(ctx, "player1")
	require.NoError(t, err)
	unitID := inv.Units[0].ID

	require.NoError(t, svc.AssignRow(ctx, "player1", unitID, domain.RowBack))
	inv, _ = svc.Ensure(ctx, "player1")
	assert.Equal(t, domain.RowBack, inv.UnitByID(unitID).Row)

	assert.ErrorIs(t, svc.AssignRow(ctx, "player1", unitID, domain.Row(9)), domain.ErrInvalidSelection)
	assert.ErrorIs(t, svc.AssignRow(ctx, "player1", "nope", domain.RowFront), domain.ErrUnitNotFound)
}

func TestLeaderboardRanks(t *testing.T) {
	repo := newMockPlayerRepo()
	repo.inventories["a"] = &domain.PlayerInventory{PlayerID: "a", Balance: 100}
	svc := newTestService(repo)

	entries, err := svc.Leaderboard(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Rank)
}
