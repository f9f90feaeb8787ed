package catalog

import (
	"context"
	"fmt"

	"floralshop/internal/auth"
	"floralshop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductWriter persists catalogue products.
type ProductWriter interface {
	Upsert(ctx context.Context, products []model.Product) error
}

// UserWriter persists accounts.
type UserWriter interface {
	Upsert(ctx context.Context, user *model.User) error
}

// Stats reports what a seed run wrote.
type Stats struct {
	Products int
	Users    int
}

// Seeder writes a loaded Seed into the store.
type Seeder struct {
	loader   Loader
	products ProductWriter
	users    UserWriter
	logger   zerolog.Logger
}

// NewSeeder creates a seeder.
func NewSeeder(loader Loader, products ProductWriter, users UserWriter, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:   loader,
		products: products,
		users:    users,
		logger:   logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Run loads path and upserts its products and users. Re-running with the same file
// is idempotent apart from password re-hashing.
func (s *Seeder) Run(ctx context.Context, path string) (Stats, error) {
	seed, err := s.loader.Load(ctx, path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load catalogue: %w", err)
	}

	if err := s.products.Upsert(ctx, seed.Products); err != nil {
		return Stats{}, fmt.Errorf("failed to seed products: %w", err)
	}

	for _, su := range seed.Users {
		hash, err := auth.HashPassword(su.Password)
		if err != nil {
			return Stats{}, err
		}
		user := &model.User{
			ID:           uuid.NewString(),
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: hash,
			IsAdmin:      su.IsAdmin,
		}
		if err := s.users.Upsert(ctx, user); err != nil {
			return Stats{}, fmt.Errorf("failed to seed user %s: %w", su.Email, err)
		}
	}

	stats := Stats{Products: len(seed.Products), Users: len(seed.Users)}
	s.logger.Info().
		Str("path", path).
		Int("products", stats.Products).
		Int("users", stats.Users).
		Msg("catalogue seeded")

	return stats, nil
}
