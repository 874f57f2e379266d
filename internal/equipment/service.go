// Package equipment manages weapon assignment. Weapons never overwrite a
// unit's stored stats; bonuses apply through the unit's effective stat
// accessors, so equip and unequip only move references and adjust health.
package equipment

import (
	"context"
	"fmt"

	"github.com/tacticbot/tacticbot/internal/catalog"
	"github.com/tacticbot/tacticbot/internal/concurrency"
	"github.com/tacticbot/tacticbot/internal/domain"
	"github.com/tacticbot/tacticbot/internal/inventory"
	"github.com/tacticbot/tacticbot/internal/logger"
)

// PlayerInventories is the slice of the inventory service equipment needs.
type PlayerInventories interface {
	Ensure(ctx context.Context, playerID string) (*domain.PlayerInventory, error)
	Save(ctx context.Context, inv *domain.PlayerInventory) error
}

// EquipResult reports an equip mutation. Displaced is the weapon the unit
// had to put down to take the new one, nil if it was unarmed.
type EquipResult struct {
	Unit      *domain.Unit   `json:"unit"`
	Displaced *domain.Weapon `json:"displaced,omitempty"`
}

// Service defines the equipment operations.
type Service interface {
	// Equip assigns a weapon to a unit, displacing any current wielder and
	// any currently held weapon.
	Equip(ctx context.Context, playerID, unitID, weaponID string) (*EquipResult, error)
	// Unequip removes a unit's weapon. A no-op on an unarmed unit.
	Unequip(ctx context.Context, playerID, unitID string) (*domain.Unit, error)
}

type service struct {
	inventories PlayerInventories
	lockManager *concurrency.LockManager
}

// NewService creates a new equipment service.
func NewService(inventories PlayerInventories, lockManager *concurrency.LockManager) Service {
	return &service{
		inventories: inventories,
		lockManager: lockManager,
	}
}

func (s *service) Equip(ctx context.Context, playerID, unitID, weaponID string) (*EquipResult, error) {
	log := logger.FromContext(ctx)

	lock := s.lockManager.GetLock(inventory.LockKey(playerID))
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.inventories.Ensure(ctx, playerID)
	if err != nil {
		return nil, err
	}

	unit := inv.UnitByID(unitID)
	if unit == nil {
		return nil, domain.ErrUnitNotFound
	}
	weapon := inv.WeaponByID(weaponID)
	if weapon == nil {
		return nil, domain.ErrWeaponNotFound
	}
	if !catalog.Compatible(unit.Role, weapon.Type) {
		return nil, fmt.Errorf("%s cannot wield a %s: %w", unit.Role, weapon.Type, domain.ErrIncompatibleEquipment)
	}

	// Already wielded by this unit; nothing to do.
	if unit.WeaponID == weaponID {
		return &EquipResult{Unit: unit}, nil
	}

	// Displace the weapon's current wielder.
	if weapon.WielderID != "" {
		if prev := inv.UnitByID(weapon.WielderID); prev != nil {
			detach(prev)
		}
	}
	// Displace the unit's current weapon and hand it back to the caller.
	var displaced *domain.Weapon
	if unit.Weapon != nil {
		displaced = unit.Weapon
		detach(unit)
	}

	unit.Weapon = weapon
	unit.WeaponID = weapon.ID
	weapon.WielderID = unit.ID
	// A health-granting weapon heals by its bonus on equip.
	if weapon.Stats.Health > 0 {
		unit.CurrentHealth += weapon.Stats.Health
	}
	unit.ClampHealth()

	if err := s.inventories.Save(ctx, inv); err != nil {
		return nil, err
	}

	log.Info("weapon equipped", "playerID", playerID, "unit", unit.Name, "weapon", weapon.Name)
	return &EquipResult{Unit: unit, Displaced: displaced}, nil
}

func (s *service) Unequip(ctx context.Context, playerID, unitID string) (*domain.Unit, error) {
	log := logger.FromContext(ctx)

	lock := s.lockManager.GetLock(inventory.LockKey(playerID))
	lock.Lock()
	defer lock.Unlock()

	inv, err := s.inventories.Ensure(ctx, playerID)
	if err != nil {
		return nil, err
	}

	unit := inv.UnitByID(unitID)
	if unit == nil {
		return nil, domain.ErrUnitNotFound
	}
	// Unarmed already; nothing to remove.
	if unit.Weapon == nil && unit.WeaponID == "" {
		return unit, nil
	}

	name := ""
	if unit.Weapon != nil {
		name = unit.Weapon.Name
	}
	detach(unit)

	if err := s.inventories.Save(ctx, inv); err != nil {
		return nil, err
	}

	log.Info("weapon unequipped", "playerID", playerID, "unit", unit.Name, "weapon", name)
	return unit, nil
}

// detach breaks the unit<->weapon link. The health grant leaves with the
// weapon so an equip/unequip cycle cannot heal a wounded unit; current
// health is then re-clamped to the reduced effective maximum. A living
// unit stays at no less than 1 health.
func detach(u *domain.Unit) {
	wasAlive := u.Alive()
	bonus := 0
	if u.Weapon != nil {
		bonus = u.Weapon.Stats.Health
		u.Weapon.WielderID = ""
	}
	u.Weapon = nil
	u.WeaponID = ""
	if bonus > 0 {
		u.CurrentHealth -= bonus
	}
	u.ClampHealth()
	if wasAlive && u.CurrentHealth < 1 {
		u.CurrentHealth = 1
	}
}
