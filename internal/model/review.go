package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a single user's review of a product. There is at most one per (product, user).
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID string    `json:"productId" db:"product_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ReviewRequest is the body of a review submission.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse reports the outcome of a submission along with the new aggregate.
type ReviewResponse struct {
	Message    string  `json:"message"`
	Created    bool    `json:"created"`
	NumReviews int     `json:"numReviews"`
	Rating     float64 `json:"rating"`
}
