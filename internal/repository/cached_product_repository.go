package repository

import (
	"context"
	"encoding/json"
	"time"

	"floralshop/internal/cache"
	"floralshop/internal/model"

	"github.com/rs/zerolog"
)

// ProductCacheInvalidator drops cached product entries after a write.
type ProductCacheInvalidator interface {
	InvalidateProduct(ctx context.Context, product *model.Product)
}

// CachedProductRepository serves single-product lookups from the cache and falls
// through to the wrapped repository on a miss. Cache failures are logged and
// treated as misses. UpdateReviewAggregate runs inside a transaction, so callers
// invalidate with InvalidateProduct once it commits.
type CachedProductRepository struct {
	ProductRepository
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedProductRepository wraps next with a read-through cache.
func NewCachedProductRepository(next ProductRepository, c cache.Cache, ttl time.Duration, logger zerolog.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		ProductRepository: next,
		cache:             c,
		ttl:               ttl,
		logger:            logger.With().Str("repository", "product-cache").Logger(),
	}
}

// GetByID returns the product with the given ID.
func (r *CachedProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return r.readThrough(ctx, r.cache.GenerateKey("product", id), func() (*model.Product, error) {
		return r.ProductRepository.GetByID(ctx, id)
	})
}

// GetBySlug returns the product with the given slug.
func (r *CachedProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.readThrough(ctx, r.cache.GenerateKey("product-slug", slug), func() (*model.Product, error) {
		return r.ProductRepository.GetBySlug(ctx, slug)
	})
}

// Upsert writes through and drops every cached copy of the given products.
func (r *CachedProductRepository) Upsert(ctx context.Context, products []model.Product) error {
	if err := r.ProductRepository.Upsert(ctx, products); err != nil {
		return err
	}
	for i := range products {
		r.InvalidateProduct(ctx, &products[i])
	}
	return nil
}

// InvalidateProduct removes the cached entries for product by ID and slug.
func (r *CachedProductRepository) InvalidateProduct(ctx context.Context, product *model.Product) {
	keys := []string{r.cache.GenerateKey("product", product.ID)}
	if product.Slug != "" {
		keys = append(keys, r.cache.GenerateKey("product-slug", product.Slug))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn().Err(err).Str("product_id", product.ID).Msg("failed to invalidate cached product")
	}
}

func (r *CachedProductRepository) readThrough(ctx context.Context, key string, load func() (*model.Product, error)) (*model.Product, error) {
	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if cached != "" {
		var p model.Product
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			r.logger.Debug().Str("key", key).Msg("cache hit")
			return &p, nil
		}
		r.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	}

	p, err := load()
	if err != nil || p == nil {
		return p, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	return p, nil
}
