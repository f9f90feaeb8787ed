package service

import (
	"context"
	"fmt"
	"time"

	"floralshop/internal/auth"
	"floralshop/internal/model"
	"floralshop/internal/repository"
	"floralshop/internal/review"

	"github.com/rs/zerolog"
)

type reviewService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	invalidator repository.ProductCacheInvalidator
	now         func() time.Time
	logger      zerolog.Logger
}

// NewReviewService creates a new review service. invalidator may be nil when
// products are not cached.
func NewReviewService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	invalidator repository.ProductCacheInvalidator,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		invalidator: invalidator,
		now:         time.Now,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

func (s *reviewService) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// SubmitReview validates, loads the current reviews, aggregates and writes the
// review together with the product's new count and mean. Concurrent submissions
// for the same product are not serialised; the last aggregate write wins.
func (s *reviewService) SubmitReview(ctx context.Context, productID string, who *auth.Identity, req model.ReviewRequest) (*model.ReviewResponse, error) {
	if who == nil {
		return nil, model.ErrUnauthorised
	}

	sub := review.Submission{
		UserID:  who.UserID,
		Name:    who.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to load reviews")
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	res, err := review.Aggregate(productID, existing, sub, s.now())
	if err != nil {
		return nil, err
	}

	tx, err := s.reviewRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if res.Outcome == review.Created {
		id := res.Review.ID
		err = s.reviewRepo.Insert(ctx, tx, &res.Review)
		if err == nil && res.Review.ID != id {
			// A concurrent first submission by the same user landed between the read and the write.
			res.Outcome = review.Updated
		}
	} else {
		err = s.reviewRepo.Update(ctx, tx, &res.Review)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	if err = s.productRepo.UpdateReviewAggregate(ctx, tx, productID, res.Summary.NumReviews, res.Summary.Rating); err != nil {
		return nil, fmt.Errorf("failed to update product rating: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to commit review")
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateProduct(ctx, product)
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("user_id", who.UserID).
		Stringer("outcome", res.Outcome).
		Int("num_reviews", res.Summary.NumReviews).
		Float64("rating", res.Summary.Rating).
		Msg("review saved")

	resp := &model.ReviewResponse{
		Message:    "Review submitted",
		Created:    res.Outcome == review.Created,
		NumReviews: res.Summary.NumReviews,
		Rating:     res.Summary.Rating,
	}
	if !resp.Created {
		resp.Message = "Review updated"
	}
	return resp, nil
}

func (s *reviewService) loadProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to load product")
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}
