package repository

import (
	"context"
	"errors"
	"fmt"

	"floralshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, is_admin, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, password_hash, is_admin, created_at
		FROM users
		ORDER BY created_at, id
	`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.User, error) {
		var u model.User
		err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
		return u, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan users")
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	return users, nil
}

func (r *userRepository) Upsert(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (LOWER(email)) DO UPDATE SET
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			is_admin = EXCLUDED.is_admin
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.IsAdmin).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("email", u.Email).Msg("failed to upsert user")
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}
