package service

import (
	"context"
	"fmt"
	"strings"

	"floralshop/internal/model"
	"floralshop/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products with pagination. Out-of-range paging is clamped.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Query = strings.TrimSpace(filter.Query)

	products, err := s.productRepo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Str("category", filter.Category).
			Str("query", filter.Query).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", filter.Category).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// GetBySlug retrieves a single product by slug.
func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if slug == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to get product by slug")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.Categories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
