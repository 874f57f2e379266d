package repository

import (
	"context"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// Battle defines the interface for battle outcome persistence. Live sessions
// stay in memory; only finished battles are written through here.
type Battle interface {
	RecordBattle(ctx context.Context, rec *domain.BattleRecord) error
	GetRecentBattles(ctx context.Context, playerID string, limit int) ([]domain.BattleRecord, error)
	// GetBattleStats returns wins and total battles for a player.
	GetBattleStats(ctx context.Context, playerID string) (wins, total int, err error)
}
