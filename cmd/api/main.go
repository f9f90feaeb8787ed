package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floralshop/internal/auth"
	"floralshop/internal/cache"
	"floralshop/internal/cart"
	"floralshop/internal/catalog"
	"floralshop/internal/config"
	"floralshop/internal/database"
	"floralshop/internal/handler"
	"floralshop/internal/repository"
	"floralshop/internal/router"
	"floralshop/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting floralshop API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories. Stock checks use productRepo directly; catalogue
	// reads go through the cache when it is enabled.
	productRepo := repository.NewProductRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	catalogRepo := productRepo
	var invalidator repository.ProductCacheInvalidator
	if cfg.Redis.Enabled {
		client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to initialize cache: %w", err)
		}
		defer client.Close()

		cached := repository.NewCachedProductRepository(productRepo, cache.NewRedisCache(client, "floralshop"), cfg.Redis.ProductTTL, logger)
		catalogRepo = cached
		invalidator = cached
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.ProductTTL).Msg("product cache enabled")
	} else {
		logger.Info().Msg("product cache disabled")
	}

	if cfg.Catalog.SeedEnabled {
		if err := seedCatalog(ctx, cfg, catalogRepo, userRepo, logger); err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
	}

	// Initialize services
	productService := service.NewProductService(catalogRepo, logger)
	cartService := service.NewCartService(productRepo, logger)
	reviewService := service.NewReviewService(productRepo, reviewRepo, invalidator, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)
	userService := service.NewUserService(userRepo, logger)

	issuer := auth.NewIssuer(cfg.Session.Secret, cfg.Session.TTL)
	cartStore := cart.NewCookieStore(cfg.Session.CartMaxAge, cfg.Session.CookieSecure)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Cart:     handler.NewCartHandler(cartService, cartStore, logger),
		Checkout: handler.NewCheckoutHandler(cartStore, logger),
		Order:    handler.NewOrderHandler(orderService, cartStore, logger),
		Admin:    handler.NewAdminHandler(userService, orderService, logger),
		Auth:     handler.NewAuthHandler(userService, issuer, cartStore, cfg.Session.CookieSecure, logger),
		Keys:     handler.NewKeysHandler(cfg.Keys.GoogleAPIKey),
	}

	// Initialize router
	mux := router.New(handlers, issuer, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// seedCatalog loads the seed file from S3 when enabled, falling back to disk.
func seedCatalog(ctx context.Context, cfg *config.Config, products catalog.ProductWriter, users catalog.UserWriter, logger zerolog.Logger) error {
	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		l, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for catalogue seed (S3 disabled)")
	}

	loader := catalog.NewFallbackLoader(s3Loader, catalog.NewFileLoader(logger), cfg.S3.Prefix, logger)
	stats, err := catalog.NewSeeder(loader, products, users, logger).Run(ctx, cfg.Catalog.SeedFile)
	if err != nil {
		return err
	}

	logger.Info().
		Int("products", stats.Products).
		Int("users", stats.Users).
		Msg("catalogue seeded")
	return nil
}
