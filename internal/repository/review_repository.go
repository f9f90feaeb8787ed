package repository

import (
	"context"
	"fmt"

	"floralshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

func (r *reviewRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	query := `
		SELECT id, product_id, user_id, name, rating, comment, created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Name, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) Insert(ctx context.Context, tx pgx.Tx, rv *model.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, name, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, user_id) DO UPDATE SET
			name = EXCLUDED.name,
			rating = EXCLUDED.rating,
			comment = EXCLUDED.comment,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query, rv.ID, rv.ProductID, rv.UserID, rv.Name, rv.Rating, rv.Comment,
		rv.CreatedAt, rv.UpdatedAt).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", rv.ProductID).
			Str("user_id", rv.UserID).
			Msg("failed to insert review")
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

func (r *reviewRepository) Update(ctx context.Context, tx pgx.Tx, rv *model.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, name = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, rv.ID, rv.Rating, rv.Comment, rv.Name, rv.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", rv.ID.String()).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %s no longer exists", rv.ID)
	}

	return nil
}
