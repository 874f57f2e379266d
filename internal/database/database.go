package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the slice of pgxpool the server needs for readiness checks.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// NewPool opens a pgx connection pool sized for the game API and verifies
// connectivity before returning it. maxConns is clamped into
// [DefaultMinConnections, math.MaxInt32].
func NewPool(connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if maxConns < DefaultMinConnections {
		maxConns = DefaultMinConnections
	}
	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MinConns = DefaultMinConnections
	cfg.MaxConnLifetime = maxLife
	cfg.MaxConnIdleTime = maxIdle
	cfg.HealthCheckPeriod = DefaultHealthCheckPeriod

	ctx, cancel := context.WithTimeout(context.Background(), DefaultConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Info(LogMsgDatabaseConnected, "max_conns", cfg.MaxConns, "max_lifetime", maxLife)
	return pool, nil
}
