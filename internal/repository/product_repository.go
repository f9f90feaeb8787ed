package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"floralshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, slug, name, category, image, price, brand, color, description,
	count_in_stock, rating, num_reviews, created_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Category, &p.Image, &p.Price, &p.Brand, &p.Color, &p.Description,
		&p.CountInStock, &p.Rating, &p.NumReviews, &p.CreatedAt,
	)
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves products matching the filter. An empty category or query matches all.
// The query is matched as a substring of name or description, ignoring case; LIKE
// wildcards in it are taken literally.
func (r *productRepository) GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR name ILIKE '%' || $3::text || '%' OR description ILIKE '%' || $3::text || '%')
		ORDER BY name, id
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, query, filter.Category, filter.Query, escapeLike(filter.Query), filter.Limit, filter.Offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("category", filter.Category).
			Str("query", filter.Query).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return r.getOne(ctx, "id", id)
}

// GetBySlug retrieves a single product by its slug.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.getOne(ctx, "slug", slug)
}

// column is always one of the constants passed by GetByID and GetBySlug.
func (r *productRepository) getOne(ctx context.Context, column, value string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + column + ` = $1`

	var p model.Product
	if err := scanProduct(r.pool.QueryRow(ctx, query, value), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str(column, value).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str(column, value).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs. Unknown IDs are skipped.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)
		ORDER BY name, id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	return r.collect(rows)
}

// Categories returns the distinct product categories.
func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories: %w", err)
	}
	return categories, nil
}

// UpdateReviewAggregate stores the review count and mean rating within tx.
func (r *productRepository) UpdateReviewAggregate(ctx context.Context, tx pgx.Tx, productID string, numReviews int, rating float64) error {
	tag, err := tx.Exec(ctx,
		`UPDATE products SET num_reviews = $2, rating = $3 WHERE id = $1`,
		productID, numReviews, rating,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to update review aggregate")
		return fmt.Errorf("failed to update review aggregate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().
		Str("product_id", productID).
		Int("num_reviews", numReviews).
		Float64("rating", rating).
		Msg("review aggregate updated")

	return nil
}

// Upsert inserts or replaces catalogue rows in a single batch.
func (r *productRepository) Upsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `
		INSERT INTO products (id, slug, name, category, image, price, brand, color, description, count_in_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, NOW()))
		ON CONFLICT (id) DO UPDATE SET
			slug = EXCLUDED.slug,
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			image = EXCLUDED.image,
			price = EXCLUDED.price,
			brand = EXCLUDED.brand,
			color = EXCLUDED.color,
			description = EXCLUDED.description,
			count_in_stock = EXCLUDED.count_in_stock
	`

	batch := &pgx.Batch{}
	for _, p := range products {
		var createdAt interface{}
		if !p.CreatedAt.IsZero() {
			createdAt = p.CreatedAt
		}
		batch.Queue(query, p.ID, p.Slug, p.Name, p.Category, p.Image, p.Price, p.Brand, p.Color,
			p.Description, p.CountInStock, createdAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range products {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().Err(err).Str("product_id", products[i].ID).Msg("failed to upsert product")
			return fmt.Errorf("failed to upsert product %s: %w", products[i].ID, err)
		}
	}

	r.logger.Debug().Int("count", len(products)).Msg("products upserted")
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes the LIKE metacharacters in s using the default backslash escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
