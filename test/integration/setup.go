package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"floralshop/internal/auth"
	"floralshop/internal/cart"
	"floralshop/internal/catalog"
	"floralshop/internal/handler"
	"floralshop/internal/repository"
	"floralshop/internal/router"
	"floralshop/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a migrated PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := repository.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// seedLines is the catalogue every integration test starts from.
var seedLines = []string{
	`{"kind":"product","id":"P001","slug":"red-roses","name":"Red Roses","category":"Cut","price":"12.50","countInStock":10}`,
	`{"kind":"product","id":"P002","slug":"white-lilies","name":"White Lilies","category":"Cut","price":"30","countInStock":2}`,
	`{"kind":"product","id":"P003","slug":"tulip-bulbs","name":"Tulip Bulbs","category":"Bulbs","price":"4.20","countInStock":0}`,
	`{"kind":"user","name":"Admin","email":"admin@example.com","password":"admin-pass","isAdmin":true}`,
	`{"kind":"user","name":"Uma","email":"uma@example.com","password":"uma-pass"}`,
	`{"kind":"user","name":"Vic","email":"vic@example.com","password":"vic-pass"}`,
}

// WriteSeedFile writes lines as a gzipped seed file and returns its path.
func WriteSeedFile(t *testing.T, lines []string) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(strings.Join(lines, "\n"))); err != nil {
		t.Fatalf("failed to gzip seed: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "products.jsonl.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

// SeedCatalog loads the default seed file through the catalogue seeder.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) catalog.Stats {
	t.Helper()

	logger := zerolog.Nop()
	seeder := catalog.NewSeeder(catalog.NewFileLoader(logger),
		repository.NewProductRepository(pool, logger),
		repository.NewUserRepository(pool, logger),
		logger)

	stats, err := seeder.Run(context.Background(), WriteSeedFile(t, seedLines))
	if err != nil {
		t.Fatalf("failed to seed catalogue: %v", err)
	}
	return stats
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE order_items, orders, reviews, products, users")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

// NewServer wires the full HTTP stack against pool, without a product cache.
func NewServer(t *testing.T, pool *pgxpool.Pool) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(productRepo, logger)
	reviewService := service.NewReviewService(productRepo, reviewRepo, nil, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)
	userService := service.NewUserService(userRepo, logger)

	issuer := auth.NewIssuer("integration-secret", time.Hour)
	store := cart.NewCookieStore(time.Hour, false)

	return router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Cart:     handler.NewCartHandler(cartService, store, logger),
		Checkout: handler.NewCheckoutHandler(store, logger),
		Order:    handler.NewOrderHandler(orderService, store, logger),
		Admin:    handler.NewAdminHandler(userService, orderService, logger),
		Auth:     handler.NewAuthHandler(userService, issuer, store, false, logger),
		Keys:     handler.NewKeysHandler(""),
	}, issuer, logger)
}
