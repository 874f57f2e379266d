package repository

import (
	"context"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// Template defines the interface for the unit template table.
type Template interface {
	GetTemplates(ctx context.Context) ([]domain.UnitTemplate, error)
	GetTemplatesByRarity(ctx context.Context, rarity domain.Rarity) ([]domain.UnitTemplate, error)
	// SeedTemplates inserts templates that are not already present,
	// keyed by name. Existing rows are left untouched.
	SeedTemplates(ctx context.Context, templates []domain.UnitTemplate) error
}
