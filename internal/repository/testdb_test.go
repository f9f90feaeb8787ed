package repository

import (
	"context"
	"testing"
	"time"

	"floralshop/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the application schema applied.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func testProduct(id, name, category string, price string, stock int) model.Product {
	return model.Product{
		ID:           id,
		Slug:         "slug-" + id,
		Name:         name,
		Category:     category,
		Image:        "/images/" + id + ".jpg",
		Price:        decimal.RequireFromString(price),
		Brand:        "Bloom",
		Color:        "red",
		Description:  name + " bouquet",
		CountInStock: stock,
	}
}

func seedProducts(t *testing.T, pool *pgxpool.Pool, products []model.Product) {
	repo := NewProductRepository(pool, testLogger())
	require.NoError(t, repo.Upsert(context.Background(), products))
}
