package battle

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
	"github.com/tacticbot/tacticbot/internal/inventory"
)

type mockInventories struct {
	inventories map[string]*domain.PlayerInventory
}

func (m *mockInventories) Ensure(_ context.Context, playerID string) (*domain.PlayerInventory, error) {
	inv, ok := m.inventories[playerID]
	if !ok {
		inv = rosterFor(playerID)
		m.inventories[playerID] = inv
	}
	return inv, nil
}

func (m *mockInventories) Save(_ context.Context, inv *domain.PlayerInventory) error {
	m.inventories[inv.PlayerID] = inv
	return nil
}

func rosterFor(playerID string) *domain.PlayerInventory {
	inv := &domain.PlayerInventory{PlayerID: playerID, Balance: 500}
	templates := []domain.UnitTemplate{
		{Name: "Apprentice Elara", Role: domain.RoleMage, Rarity: domain.RarityCommon},
		{Name: "Shieldbearer Brom", Role: domain.RoleTank, Rarity: domain.RarityCommon},
		{Name: "Footman Derrick", Role: domain.RoleWarrior, Rarity: domain.RarityCommon},
		{Name: "Sellsword Kira", Role: domain.RoleWarrior, Rarity: domain.RarityCommon},
		{Name: "Wall of Kresh", Role: domain.RoleTank, Rarity: domain.RarityCommon},
	}
	for _, tpl := range templates {
		inv.Units = append(inv.Units, catalog.BuildUnit(tpl))
	}
	return inv
}

type mockBattleRepo struct {
	records []*domain.BattleRecord
}

func (m *mockBattleRepo) RecordBattle(_ context.Context, rec *domain.BattleRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *mockBattleRepo) GetRecentBattles(_ context.Context, _ string, _ int) ([]domain.BattleRecord, error) {
	return nil, nil
}

func (m *mockBattleRepo) GetBattleStats(_ context.Context, playerID string) (int, int, error) {
	wins, total := 0, 0
	for _, r := range m.records {
		if r.ChallengerID == playerID || r.OpponentID == playerID {
			total++
			if r.WinnerID == playerID {
				wins++
			}
		}
	}
	return wins, total, nil
}

type fixture struct {
	svc         *service
	inventories *mockInventories
	battles     *mockBattleRepo
	now         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		inventories: &mockInventories{inventories: make(map[string]*domain.PlayerInventory)},
		battles:     &mockBattleRepo{},
		now:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(
		f.inventories,
		f.battles,
		NewRegistry(),
		concurrency.NewLockManager(),
		event.NewMemoryBus(),
		time.Minute,
		time.Minute,
	).(*service)
	f.svc.now = func() time.Time { return f.now }
	f.svc.rnd = func() float64 { return 0.99 } // no crits unless overridden
	return f
}

func (f *fixture) unitIDs(playerID string) []string {
	inv := f.inventories.inventories[playerID]
	ids := make([]string, 0, len(inv.Units))
	for _, u := range inv.Units {
		ids = append(ids, u.ID)
	}
	return ids
}

// negotiate drives a session from challenge to combat.
func (f *fixture) negotiate(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.Challenge(ctx, "alice", "bob", "arena")
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, "bob")
	require.NoError(t, err)

	_, err = f.svc.SelectUnits(ctx, "alice", f.unitIDs("alice"))
	require.NoError(t, err)
	view, err := f.svc.SelectUnits(ctx, "bob", f.unitIDs("bob"))
	require.NoError(t, err)
	require.Equal(t, domain.SessionStateArranging, view.State)

	for _, p := range []string{"alice", "bob"} {
		rows := make(map[string]domain.Row)
		for _, u := range f.inventories.inventories[p].Units {
			rows[u.ID] = defaultRow(u.Role)
		}
		_, err = f.svc.Arrange(ctx, p, rows)
		require.NoError(t, err)
	}

	view, err = f.svc.Status(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, domain.SessionStateInProgress, view.State)
	require.NotNil(t, view.Battle)
	require.Equal(t, "alice", view.Battle.CurrentTurn)
}

func TestChallengeRegistersPendingSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Challenge(ctx, "alice", "bob", "arena")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatePending, view.State)
	assert.Equal(t, f.now.Add(time.Minute), view.Deadline)

	// Either direction of the same pair collides.
	_, err = f.svc.Challenge(ctx, "bob", "alice", "arena")
	assert.ErrorIs(t, err, domain.ErrAlreadyInSession)

	// An occupied player cannot open a second session.
	_, err = f.svc.Challenge(ctx, "alice", "carol", "arena")
	assert.ErrorIs(t, err, domain.ErrAlreadyInSession)
}

func TestChallengeRequiresFullRoster(t *testing.T) {
	f := newFixture(t)
	f.inventories.inventories["alice"] = &domain.PlayerInventory{PlayerID: "alice", Balance: 500}

	_, err := f.svc.Challenge(context.Background(), "alice", "bob", "arena")
	assert.ErrorIs(t, err, domain.ErrNotEnoughUnits)
}

func TestChallengeRequiresOpponentRoster(t *testing.T) {
	f := newFixture(t)
	short := rosterFor("bob")
	short.Units = short.Units[:2]
	f.inventories.inventories["bob"] = short

	_, err := f.svc.Challenge(context.Background(), "alice", "bob", "arena")
	assert.ErrorIs(t, err, domain.ErrNotEnoughUnits)
	// Neither player may be left occupied by the rejected challenge.
	assert.Nil(t, f.svc.registry.ByPlayer("alice"))
	assert.Nil(t, f.svc.registry.ByPlayer("bob"))
}

func TestChallengeSelf(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Challenge(context.Background(), "alice", "alice", "arena")
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestAcceptOnlyByOpponent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Challenge(ctx, "alice", "bob", "arena")
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNoPendingChallenge)

	view, err := f.svc.Accept(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStateSelecting, view.State)
}

func TestAcceptExpiredChallenge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Challenge(ctx, "alice", "bob", "arena")
	require.NoError(t, err)

	f.now = f.now.Add(2 * time.Minute)
	_, err = f.svc.Accept(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrChallengeExpired)

	// The expired session no longer occupies the pair.
	_, err = f.svc.Challenge(ctx, "alice", "bob", "arena")
	assert.NoError(t, err)
}

func TestDeclineFreesPlayers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Challenge(ctx, "alice", "bob", "arena")
	require.NoError(t, err)
	require.NoError(t, f.svc.Decline(ctx, "bob"))

	_, err = f.svc.Status(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSelectUnitsValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Challenge(ctx, "alice", "bob", "arena")
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, "bob")
	require.NoError(t, err)

	ids := f.unitIDs("alice")

	// Wrong count.
	_, err = f.svc.SelectUnits(ctx, "alice", ids[:3])
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	// Duplicates.
	dup := []string{ids[0], ids[0], ids[1], ids[2], ids[3]}
	_, err = f.svc.SelectUnits(ctx, "alice", dup)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)

	// Unknown unit.
	bad := append([]string{"nope"}, ids[:4]...)
	_, err = f.svc.SelectUnits(ctx, "alice", bad)
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)

	// A dead unit cannot be fielded.
	f.inventories.inventories["alice"].Units[0].CurrentHealth = 0
	_, err = f.svc.SelectUnits(ctx, "alice", ids)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestSelectUnitsWaitsForPlayerLock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Challenge(ctx, "alice", "bob", "arena")
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, "bob")
	require.NoError(t, err)

	// Simulate an in-flight sale or equip holding alice's inventory lock.
	lock := f.svc.lockManager.GetLock(inventory.LockKey("alice"))
	lock.Lock()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.SelectUnits(ctx, "alice", f.unitIDs("alice"))
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("selection read the inventory while the player lock was held")
	case <-time.After(50 * time.Millisecond):
	}

	lock.Unlock()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("selection never completed after the lock was released")
	}
}

func TestFullBattleToSurrender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.negotiate(t)

	aliceUnits := f.unitIDs("alice")
	bobUnits := f.unitIDs("bob")

	// Bob cannot act on Alice's turn.
	_, err := f.svc.Attack(ctx, "bob", bobUnits[0], aliceUnits[0])
	assert.ErrorIs(t, err, domain.ErrNotYourTurn)

	out, err := f.svc.Attack(ctx, "alice", aliceUnits[2], bobUnits[1])
	require.NoError(t, err)
	assert.False(t, out.Finished)
	assert.GreaterOrEqual(t, out.Result.Damage, 1)
	assert.Equal(t, "bob", out.Battle.CurrentTurn)

	out, err = f.svc.Surrender(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, out.Finished)
	assert.Equal(t, "alice", out.WinnerID)
	assert.Equal(t, RewardSurrender, out.Reward)

	// The winner was paid and the record stored.
	assert.Equal(t, 500+RewardSurrender, f.inventories.inventories["alice"].Balance)
	require.Len(t, f.battles.records, 1)
	assert.True(t, f.battles.records[0].Surrendered)

	// Both players are free again.
	_, err = f.svc.Status(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestBattleToElimination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.negotiate(t)

	// Gut Bob's side so one hit ends it.
	sess := f.svc.registry.ByPlayer("alice")
	require.NotNil(t, sess)
	for _, u := range sess.Battle.OpponentUnits {
		u.CurrentHealth = 1
	}
	for _, u := range sess.Battle.OpponentUnits[1:] {
		u.CurrentHealth = 0
	}

	out, err := f.svc.Attack(ctx, "alice", f.unitIDs("alice")[2], sess.Battle.OpponentUnits[0].UnitID)
	require.NoError(t, err)
	assert.True(t, out.Finished)
	assert.Equal(t, "alice", out.WinnerID)
	assert.Equal(t, RewardElimination, out.Reward)
	assert.Equal(t, 500+RewardElimination, f.inventories.inventories["alice"].Balance)

	// Persistent rosters are untouched by the battle snapshots.
	for _, u := range f.inventories.inventories["bob"].Units {
		assert.True(t, u.Alive())
	}
}

func TestSweepExpiresPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Challenge(ctx, "alice", "bob", "arena")
	require.NoError(t, err)

	f.now = f.now.Add(2 * time.Minute)
	expired := f.svc.Sweep(ctx)
	assert.Equal(t, 1, expired)
	assert.Zero(t, f.svc.registry.Len())
}

func TestSweepStartsOverdueArrangement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Challenge(ctx, "alice", "bob", "arena")
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, "bob")
	require.NoError(t, err)
	_, err = f.svc.SelectUnits(ctx, "alice", f.unitIDs("alice"))
	require.NoError(t, err)
	_, err = f.svc.SelectUnits(ctx, "bob", f.unitIDs("bob"))
	require.NoError(t, err)

	// Neither player arranges before the deadline.
	f.now = f.now.Add(2 * time.Minute)
	expired := f.svc.Sweep(ctx)
	assert.Zero(t, expired)

	view, err := f.svc.Status(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, domain.SessionStateInProgress, view.State)

	// Default formation: mages shelter in the back, the rest hold front.
	for _, u := range view.Battle.ChallengerUnits {
		if u.Role == domain.RoleMage {
			assert.Equal(t, domain.RowBack, u.Row)
		} else {
			assert.Equal(t, domain.RowFront, u.Row)
		}
	}
}

func TestSnapshotUsesEffectiveStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Arm one of Alice's warriors before the battle.
	inv, err := f.inventories.Ensure(ctx, "alice")
	require.NoError(t, err)
	weapon := catalog.BuildWeapon("Basic Blade", domain.WeaponSword, domain.RarityCommon)
	inv.Weapons = append(inv.Weapons, weapon)
	var warrior *domain.Unit
	for _, u := range inv.Units {
		if u.Role == domain.RoleWarrior {
			warrior = u
			break
		}
	}
	require.NotNil(t, warrior)
	warrior.Weapon = weapon
	warrior.WeaponID = weapon.ID
	weapon.WielderID = warrior.ID

	f.negotiate(t)

	sess := f.svc.registry.ByPlayer("alice")
	bu := findUnit(sess.Battle.ChallengerUnits, warrior.ID)
	require.NotNil(t, bu)
	assert.Equal(t, warrior.Damage+10, bu.Damage)
	assert.Equal(t, warrior.CritChance+5, bu.CritChance)
}
