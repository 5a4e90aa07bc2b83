package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/trivia-loader/internal/config"
	"github.com/heartmarshall/trivia-loader/internal/domain"
)

// NewPool creates a PostgreSQL connection pool configured from DatabaseConfig.
// It builds the DSN, applies pool settings, pings the database for fail-fast
// validation, and returns the ready pool. Every failure wraps domain.ErrConnection.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w: %w", domain.ErrConnection, err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = 0
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w: %w", domain.ErrConnection, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database %s: %w: %w", cfg.Redacted(), domain.ErrConnection, err)
	}

	return pool, nil
}
