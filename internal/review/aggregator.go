// Package review aggregates product reviews: one review per (product, user),
// with the product's review count and mean rating recomputed on every write.
package review

import (
	"strings"
	"time"

	"floralshop/internal/model"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Outcome says whether a submission created a review or updated an existing one.
type Outcome int

const (
	Created Outcome = iota + 1
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// Submission is one user's review of a product.
type Submission struct {
	UserID  string
	Name    string
	Rating  int
	Comment string
}

// Validate rejects submissions with an empty comment or a rating outside 1-5.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Comment) == "" {
		return model.ErrMissingComment
	}
	if s.Rating < MinRating || s.Rating > MaxRating {
		return model.ErrInvalidRating
	}
	return nil
}

// Summary is the product-level aggregate.
type Summary struct {
	NumReviews int
	Rating     float64
}

// Summarise computes the count and arithmetic mean of reviews.
// The mean is recomputed from every review rather than kept as a running total.
func Summarise(reviews []model.Review) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return Summary{
		NumReviews: len(reviews),
		Rating:     float64(sum) / float64(len(reviews)),
	}
}

// Result is the state after a submission has been applied.
type Result struct {
	Reviews []model.Review
	Review  model.Review
	Outcome Outcome
	Summary Summary
}

// Aggregate applies s to the product's existing reviews. A user's earlier review is
// updated in place; otherwise a new review is appended. The input slice is not modified.
func Aggregate(productID string, reviews []model.Review, s Submission, now time.Time) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	out := make([]model.Review, len(reviews), len(reviews)+1)
	copy(out, reviews)

	res := Result{Outcome: Created}
	for i := range out {
		if out[i].UserID == s.UserID {
			out[i].Rating = s.Rating
			out[i].Comment = s.Comment
			out[i].UpdatedAt = now
			res.Outcome = Updated
			res.Review = out[i]
			break
		}
	}

	if res.Outcome == Created {
		res.Review = model.Review{
			ID:        uuid.New(),
			ProductID: productID,
			UserID:    s.UserID,
			Name:      s.Name,
			Rating:    s.Rating,
			Comment:   s.Comment,
			CreatedAt: now,
			UpdatedAt: now,
		}
		out = append(out, res.Review)
	}

	res.Reviews = out
	res.Summary = Summarise(out)
	return res, nil
}
