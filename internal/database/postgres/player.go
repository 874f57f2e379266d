package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// PlayerRepository implements the player repository for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetInventory loads a player's full inventory record
func (r *PlayerRepository) GetInventory(ctx context.Context, playerID string) (*domain.PlayerInventory, error) {
	query := `
		SELECT balance, last_daily, units, weapons
		FROM players
		WHERE player_id = $1
	`

	inv := &domain.PlayerInventory{PlayerID: playerID}
	var lastDaily *time.Time
	var unitsJSON, weaponsJSON []byte

	err := r.db.QueryRow(ctx, query, playerID).Scan(&inv.Balance, &lastDaily, &unitsJSON, &weaponsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	if lastDaily != nil {
		inv.LastDaily = *lastDaily
	}
	if err := json.Unmarshal(unitsJSON, &inv.Units); err != nil {
		return nil, fmt.Errorf("failed to unmarshal units: %w", err)
	}
	if err := json.Unmarshal(weaponsJSON, &inv.Weapons); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weapons: %w", err)
	}

	inv.Reconnect()
	return inv, nil
}

// UpsertInventory writes a full inventory snapshot
func (r *PlayerRepository) UpsertInventory(ctx context.Context, inv *domain.PlayerInventory) error {
	unitsJSON, err := json.Marshal(inv.Units)
	if err != nil {
		return fmt.Errorf("failed to marshal units: %w", err)
	}
	weaponsJSON, err := json.Marshal(inv.Weapons)
	if err != nil {
		return fmt.Errorf("failed to marshal weapons: %w", err)
	}

	var lastDaily *time.Time
	if !inv.LastDaily.IsZero() {
		lastDaily = &inv.LastDaily
	}

	query := `
		INSERT INTO players (player_id, balance, last_daily, units, weapons, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (player_id) DO UPDATE
		SET balance = EXCLUDED.balance,
		    last_daily = EXCLUDED.last_daily,
		    units = EXCLUDED.units,
		    weapons = EXCLUDED.weapons,
		    updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, inv.PlayerID, inv.Balance, lastDaily, unitsJSON, weaponsJSON); err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}

// DeleteInventory removes a player record entirely
func (r *PlayerRepository) DeleteInventory(ctx context.Context, playerID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM players WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}

// TopBalances returns players ordered by balance, richest first
func (r *PlayerRepository) TopBalances(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT player_id, balance, jsonb_array_length(units)
		FROM players
		ORDER BY balance DESC, player_id
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.Balance, &e.UnitCount); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard rows: %w", err)
	}
	return entries, nil
}
