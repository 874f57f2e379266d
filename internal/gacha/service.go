// Package gacha implements the acquisition rolls: weighted rarity draws for
// units from the template table and for procedurally named weapons.
package gacha

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/tacticbot/tacticbot/internal/catalog"
	"github.com/tacticbot/tacticbot/internal/concurrency"
	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/event"
	"github.com/tacticbot/tacticbot/internal/inventory"
	"github.com/tacticbot/tacticbot/internal/logger"
	"github.com/tacticbot/tacticbot/internal/repository"
)

// PlayerInventories is the slice of the inventory service the roller needs.
type PlayerInventories interface {
	Ensure(ctx context.Context, playerID string) (*domain.PlayerInventory, error)
	Save(ctx context.Context, inv *domain.PlayerInventory) error
}

// DrawResult reports one completed acquisition roll.
type DrawResult struct {
	Unit    *domain.Unit   `json:"unit,omitempty"`
	Weapon  *domain.Weapon `json:"weapon,omitempty"`
	Cost    int            `json:"cost"`
	Balance int            `json:"balance"`
}

// Service defines the acquisition operations.
type Service interface {
	DrawUnit(ctx context.Context, playerID string) (*DrawResult, error)
	DrawWeapon(ctx context.Context, playerID string) (*DrawResult, error)
}

type service struct {
	inventories PlayerInventories
	templates   repository.Template
	lockManager *concurrency.LockManager
	bus         event.Bus
	rarities    *rarityTable
	rnd         func() float64
}

// NewService creates a new gacha service.
func NewService(inventories PlayerInventories, templates repository.Template, lockManager *concurrency.LockManager, bus event.Bus) Service {
	return &service{
		inventories: inventories,
		templates:   templates,
		lockManager: lockManager,
		bus:         bus,
		rarities:    buildRarityTable(),
		rnd:         rand.Float64,
	}
}

// DrawUnit rolls a new unit, deducting the draw cost.
func (s *service) DrawUnit(ctx context.Context, playerID string) (*DrawResult, error) {
	log := logger.FromContext(ctx)

	lock := s.lockManager.GetLock(inventory.LockKey(playerID))
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.inventories.Ensure(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if inv.Balance < UnitDrawCost {
		return nil, fmt.Errorf("draw costs %d, balance is %d: %w", UnitDrawCost, inv.Balance, domain.ErrInsufficientFunds)
	}

	rarity := s.rarities.selectRarity(s.rnd())
	templates, err := s.templates.GetTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit templates: %w", err)
	}
	unit := catalog.BuildUnit(pickTemplate(templates, rarity, s.rnd))

	inv.Balance -= UnitDrawCost
	inv.Units = append(inv.Units, unit)
	if err := s.inventories.Save(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.bus.Publish(ctx, event.NewDrawEvent(event.UnitDrawn, playerID, unit.ID, unit.Name, string(unit.Rarity), UnitDrawCost)); err != nil {
		log.Warn("failed to publish unit draw event", "error", err)
	}

	log.Info("unit drawn", "playerID", playerID, "unit", unit.Name, "rarity", unit.Rarity)
	return &DrawResult{Unit: unit, Cost: UnitDrawCost, Balance: inv.Balance}, nil
}

// DrawWeapon rolls a new weapon, deducting the draw cost.
func (s *service) DrawWeapon(ctx context.Context, playerID string) (*DrawResult, error) {
	log := logger.FromContext(ctx)

	lock := s.lockManager.GetLock(inventory.LockKey(playerID))
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.inventories.Ensure(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if inv.Balance < WeaponDrawCost {
		return nil, fmt.Errorf("draw costs %d, balance is %d: %w", WeaponDrawCost, inv.Balance, domain.ErrInsufficientFunds)
	}

	rarity := s.rarities.selectRarity(s.rnd())
	wt := rollWeaponType(s.rnd)
	weapon := catalog.BuildWeapon(composeWeaponName(wt, rarity, s.rnd), wt, rarity)

	inv.Balance -= WeaponDrawCost
	inv.Weapons = append(inv.Weapons, weapon)
	if err := s.inventories.Save(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.bus.Publish(ctx, event.NewDrawEvent(event.WeaponDrawn, playerID, weapon.ID, weapon.Name, string(weapon.Rarity), WeaponDrawCost)); err != nil {
		log.Warn("failed to publish weapon draw event", "error", err)
	}

	log.Info("weapon drawn", "playerID", playerID, "weapon", weapon.Name, "rarity", weapon.Rarity)
	return &DrawResult{Weapon: weapon, Cost: WeaponDrawCost, Balance: inv.Balance}, nil
}
