// Package inventory owns player records: lazy creation with starter grants,
// the daily currency claim, sales with confirmation, and the balance
// leaderboard. All mutations run under the shared per-player lock.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tacticbot/tacticbot/internal/catalog"
	"github.com/tacticbot/tacticbot/internal/concurrency"
	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/event"
	"github.com/tacticbot/tacticbot/internal/logger"
	"github.com/tacticbot/tacticbot/internal/repository"
)

// Confirmer resolves a yes/no prompt with the player. Implementations should
// honor ctx cancellation; the service applies the confirmation deadline.
type Confirmer func(ctx context.Context, prompt string) (bool, error)

// DailyResult reports a successful daily claim.
type DailyResult struct {
	Amount      int       `json:"amount"`
	Balance     int       `json:"balance"`
	NextClaimAt time.Time `json:"next_claim_at"`
}

// SaleResult reports a completed sale.
type SaleResult struct {
	ItemKind string        `json:"item_kind"`
	ItemName string        `json:"item_name"`
	Rarity   domain.Rarity `json:"rarity"`
	Price    int           `json:"price"`
	Balance  int           `json:"balance"`
}

// Service defines the inventory operations.
type Service interface {
	// Ensure loads a player's inventory, creating the record with starter
	// currency and units on first access.
	Ensure(ctx context.Context, playerID string) (*domain.PlayerInventory, error)
	// Save persists an inventory mutated by a caller holding the player lock.
	Save(ctx context.Context, inv *domain.PlayerInventory) error
	ClaimDaily(ctx context.Context, playerID string) (*DailyResult, error)
	SellUnit(ctx context.Context, playerID, unitID string, confirm Confirmer) (*SaleResult, error)
	SellWeapon(ctx context.Context, playerID, weaponID string, confirm Confirmer) (*SaleResult, error)
	AssignRow(ctx context.Context, playerID, unitID string, row domain.Row) error
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	players        repository.Player
	templates      repository.Template
	lockManager    *concurrency.LockManager
	bus            event.Bus
	cache          *inventoryCache
	confirmTimeout time.Duration
	rnd            func() float64
	now            func() time.Time
}

// NewService creates a new inventory service.
func NewService(players repository.Player, templates repository.Template, lockManager *concurrency.LockManager, bus event.Bus, confirmTimeout time.Duration) Service {
	return &service{
		players:        players,
		templates:      templates,
		lockManager:    lockManager,
		bus:            bus,
		cache:          newInventoryCache(cacheSize, cacheTTL),
		confirmTimeout: confirmTimeout,
		rnd:            rand.Float64,
		now:            time.Now,
	}
}

// Ensure loads the inventory, creating a starter record on first access.
func (s *service) Ensure(ctx context.Context, playerID string) (*domain.PlayerInventory, error) {
	if inv, ok := s.cache.Get(playerID); ok {
		return inv, nil
	}

	inv, err := s.players.GetInventory(ctx, playerID)
	if err == nil {
		inv.Reconnect()
		s.cache.Set(playerID, inv)
		return inv, nil
	}
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	inv, err = s.createStarter(ctx, playerID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(playerID, inv)
	return inv, nil
}

// createStarter builds and persists a fresh inventory with the starting
// balance and a handful of common units.
func (s *service) createStarter(ctx context.Context, playerID string) (*domain.PlayerInventory, error) {
	log := logger.FromContext(ctx)

	commons, err := s.templates.GetTemplatesByRarity(ctx, domain.RarityCommon)
	if err != nil || len(commons) == 0 {
		// The template table may not be seeded yet; fall back to the
		// built-in roster.
		commons = commonDefaults()
	}

	inv := &domain.PlayerInventory{
		PlayerID: playerID,
		Balance:  StartingBalance,
	}
	for i := 0; i < StarterUnitCount; i++ {
		tpl := commons[int(s.rnd()*float64(len(commons)))%len(commons)]
		inv.Units = append(inv.Units, catalog.BuildUnit(tpl))
	}

	if err := s.players.UpsertInventory(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	log.Info("created starter inventory", "playerID", playerID, "units", len(inv.Units))
	return inv, nil
}

func commonDefaults() []domain.UnitTemplate {
	var commons []domain.UnitTemplate
	for _, tpl := range catalog.DefaultTemplates {
		if tpl.Rarity == domain.RarityCommon {
			commons = append(commons, tpl)
		}
	}
	return commons
}

// Save persists the inventory and refreshes the cache entry.
func (s *service) Save(ctx context.Context, inv *domain.PlayerInventory) error {
	if err := s.players.UpsertInventory(ctx, inv); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	s.cache.Set(inv.PlayerID, inv)
	return nil
}

// ClaimDaily grants the daily reward if the cooldown has elapsed.
func (s *service) ClaimDaily(ctx context.Context, playerID string) (*DailyResult, error) {
	log := logger.FromContext(ctx)

	lock := s.lockManager.GetLock(LockKey(playerID))
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.Ensure(ctx, playerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if next := inv.LastDaily.Add(DailyCooldown); now.Before(next) {
		return nil, fmt.Errorf("daily available at %s: %w", next.UTC().Format(time.RFC3339), domain.ErrOnCooldown)
	}

	inv.Balance += DailyReward
	inv.LastDaily = now
	if err := s.Save(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.bus.Publish(ctx, event.NewDailyClaimedEvent(playerID, DailyReward, inv.Balance)); err != nil {
		log.Warn("failed to publish daily claim event", "error", err)
	}

	log.Info("daily claimed", "playerID", playerID, "balance", inv.Balance)
	return &DailyResult{
		Amount:      DailyReward,
		Balance:     inv.Balance,
		NextClaimAt: now.Add(DailyCooldown),
	}, nil
}

// SellUnit sells an owned unit after confirmation. Equipped weapons must be
// removed first and the roster may not drop below the battle minimum.
func (s *service) SellUnit(ctx context.Context, playerID, unitID string, confirm Confirmer) (*SaleResult, error) {
	inv, err := s.Ensure(ctx, playerID)
	if err != nil {
		return nil, err
	}

	unit := inv.UnitByID(unitID)
	if unit == nil {
		return nil, domain.ErrUnitNotFound
	}
	if unit.WeaponID != "" {
		return nil, domain.ErrItemEquipped
	}
	if len(inv.Units) <= domain.MinOwnedUnits {
		return nil, domain.ErrBelowMinimumUnits
	}

	price := catalog.SalePrice(unit.Rarity)
	prompt := fmt.Sprintf("Sell %s (%s %s) for %d coins?", unit.Name, unit.Rarity, unit.Role, price)
	if err := s.confirmSale(ctx, confirm, prompt); err != nil {
		return nil, err
	}

	return s.applySale(ctx, playerID, "unit", unitID, price)
}

// SellWeapon sells an owned weapon after confirmation. The weapon must be
// unequipped first.
func (s *service) SellWeapon(ctx context.Context, playerID, weaponID string, confirm Confirmer) (*SaleResult, error) {
	inv, err := s.Ensure(ctx, playerID)
	if err != nil {
		return nil, err
	}

	weapon := inv.WeaponByID(weaponID)
	if weapon == nil {
		return nil, domain.ErrWeaponNotFound
	}
	if weapon.Equipped() {
		return nil, domain.ErrItemEquipped
	}

	price := catalog.SalePrice(weapon.Rarity)
	prompt := fmt.Sprintf("Sell %s (%s %s) for %d coins?", weapon.Name, weapon.Rarity, weapon.Type, price)
	if err := s.confirmSale(ctx, confirm, prompt); err != nil {
		return nil, err
	}

	return s.applySale(ctx, playerID, "weapon", weaponID, price)
}

// confirmSale runs the confirmation callback under the confirmation deadline.
// The player lock is NOT held here; the sale is re-validated afterwards.
func (s *service) confirmSale(ctx context.Context, confirm Confirmer, prompt string) error {
	if confirm == nil {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, s.confirmTimeout)
	defer cancel()

	ok, err := confirm(cctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ErrConfirmationTimeout
		}
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return domain.ErrConfirmationDeclined
	}
	return nil
}

// applySale removes the item and credits the price, re-validating the guards
// under the player lock since the confirmation window allows interleaving.
func (s *service) applySale(ctx context.Context, playerID, kind, itemID string, price int) (*SaleResult, error) {
	log := logger.FromContext(ctx)

	lock := s.lockManager.GetLock(LockKey(playerID))
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.Ensure(ctx, playerID)
	if err != nil {
		return nil, err
	}

	result := &SaleResult{ItemKind: kind, Price: price}
	switch kind {
	case "unit":
		unit := inv.UnitByID(itemID)
		if unit == nil {
			return nil, domain.ErrUnitNotFound
		}
		if unit.WeaponID != "" {
			return nil, domain.ErrItemEquipped
		}
		if len(inv.Units) <= domain.MinOwnedUnits {
			return nil, domain.ErrBelowMinimumUnits
		}
		result.ItemName = unit.Name
		result.Rarity = unit.Rarity
		inv.Units = removeUnit(inv.Units, itemID)
	case "weapon":
		weapon := inv.WeaponByID(itemID)
		if weapon == nil {
			return nil, domain.ErrWeaponNotFound
		}
		if weapon.Equipped() {
			return nil, domain.ErrItemEquipped
		}
		result.ItemName = weapon.Name
		result.Rarity = weapon.Rarity
		inv.Weapons = removeWeapon(inv.Weapons, itemID)
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	inv.Balance += price
	result.Balance = inv.Balance
	if err := s.Save(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.bus.Publish(ctx, event.NewItemSoldEvent(playerID, kind, itemID, string(result.Rarity), price)); err != nil {
		log.Warn("failed to publish sale event", "error", err)
	}

	log.Info("item sold", "playerID", playerID, "kind", kind, "price", price)
	return result, nil
}

// AssignRow stores a unit's preferred formation row.
func (s *service) AssignRow(ctx context.Context, playerID, unitID string, row domain.Row) error {
	if !row.Valid() {
		return domain.ErrInvalidSelection
	}

	lock := s.lockManager.GetLock(LockKey(playerID))
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.Ensure(ctx, playerID)
	if err != nil {
		return err
	}

	unit := inv.UnitByID(unitID)
	if unit == nil {
		return domain.ErrUnitNotFound
	}
	unit.Row = row
	return s.Save(ctx, inv)
}

// Leaderboard returns the richest players.
func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.players.TopBalances(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func removeUnit(units []*domain.Unit, id string) []*domain.Unit {
	out := units[:0]
	for _, u := range units {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

func removeWeapon(weapons []*domain.Weapon, id string) []*domain.Weapon {
	out := weapons[:0]
	for _, w := range weapons {
		if w.ID != id {
			out = append(out, w)
		}
	}
	return out
}
