package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the catalogue.
// Rating is the raw arithmetic mean of all review ratings; rounding is a display concern.
type Product struct {
	ID           string          `json:"id" db:"id"`
	Slug         string          `json:"slug" db:"slug"`
	Name         string          `json:"name" db:"name"`
	Category     string          `json:"category" db:"category"`
	Image        string          `json:"image" db:"image"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Brand        string          `json:"brand" db:"brand"`
	Color        string          `json:"color" db:"color"`
	Description  string          `json:"description" db:"description"`
	CountInStock int             `json:"countInStock" db:"count_in_stock"`
	Rating       float64         `json:"rating" db:"rating"`
	NumReviews   int             `json:"numReviews" db:"num_reviews"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}

// ProductFilter narrows a catalogue listing.
type ProductFilter struct {
	Category string
	Query    string // case-insensitive match on name or description
	Limit    int
	Offset   int
}
