package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// BattleRepository implements the battle record repository for PostgreSQL
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a new BattleRepository
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// RecordBattle stores one finished battle
func (r *BattleRepository) RecordBattle(ctx context.Context, rec *domain.BattleRecord) error {
	query := `
		INSERT INTO battles (battle_id, challenger_id, opponent_id, winner_id, location, turn_count, surrendered, reward, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (battle_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.ChallengerID, rec.OpponentID, rec.WinnerID, rec.Location,
		rec.TurnCount, rec.Surrendered, rec.Reward, rec.StartedAt, rec.EndedAt)
	if err != nil {
		return fmt.Errorf("failed to record battle: %w", err)
	}
	return nil
}

// GetRecentBattles returns a player's latest finished battles
func (r *BattleRepository) GetRecentBattles(ctx context.Context, playerID string, limit int) ([]domain.BattleRecord, error) {
	query := `
		SELECT battle_id, challenger_id, opponent_id, winner_id, location, turn_count, surrendered, reward, started_at, ended_at
		FROM battles
		WHERE challenger_id = $1 OR opponent_id = $1
		ORDER BY ended_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query battles: %w", err)
	}
	defer rows.Close()

	var records []domain.BattleRecord
	for rows.Next() {
		var rec domain.BattleRecord
		if err := rows.Scan(&rec.ID, &rec.ChallengerID, &rec.OpponentID, &rec.WinnerID, &rec.Location,
			&rec.TurnCount, &rec.Surrendered, &rec.Reward, &rec.StartedAt, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan battle row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read battle rows: %w", err)
	}
	return records, nil
}

// GetBattleStats returns wins and total battles for a player
func (r *BattleRepository) GetBattleStats(ctx context.Context, playerID string) (int, int, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE winner_id = $1), COUNT(*)
		FROM battles
		WHERE challenger_id = $1 OR opponent_id = $1
	`

	var wins, total int
	if err := r.db.QueryRow(ctx, query, playerID).Scan(&wins, &total); err != nil {
		return 0, 0, fmt.Errorf("failed to get battle stats: %w", err)
	}
	return wins, total, nil
}
