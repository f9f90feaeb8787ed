package database

import (
	"context"
	"fmt"
	"time"

	"floralshop/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// connectAttempts bounds how often NewPool pings a database that is still starting.
const connectAttempts = 5

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	logger = logger.With().Str("component", "database").Logger()

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := ping(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool ready")

	return pool, nil
}

func ping(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var err error
	backoff := 500 * time.Millisecond
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = pool.Ping(ctx); err == nil {
			return nil
		}
		if attempt == connectAttempts {
			break
		}
		logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", backoff).Msg("database not reachable yet")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}
