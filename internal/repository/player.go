package repository

import (
	"context"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// Player defines the interface for player inventory persistence.
type Player interface {
	// GetInventory loads a player's full inventory. Returns
	// domain.ErrPlayerNotFound when no row exists.
	GetInventory(ctx context.Context, playerID string) (*domain.PlayerInventory, error)
	// UpsertInventory writes a full inventory snapshot, creating the
	// player row if absent.
	UpsertInventory(ctx context.Context, inv *domain.PlayerInventory) error
	DeleteInventory(ctx context.Context, playerID string) error
	// TopBalances returns players ordered by balance, richest first.
	TopBalances(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
