package repository

import (
	"context"

	"floralshop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Not-found lookups return (nil, nil); callers translate that into a domain error.

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products matching the filter, ordered by name.
	GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetBySlug retrieves a single product by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Categories returns the distinct product categories in alphabetical order.
	Categories(ctx context.Context) ([]string, error)

	// UpdateReviewAggregate stores the review count and mean rating within tx.
	UpdateReviewAggregate(ctx context.Context, tx pgx.Tx, productID string, numReviews int, rating float64) error

	// Upsert inserts or replaces catalogue rows, leaving review aggregates intact.
	Upsert(ctx context.Context, products []model.Product) error
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// ListByProduct returns the product's reviews in creation order.
	ListByProduct(ctx context.Context, productID string) ([]model.Review, error)

	// Insert adds a new review within tx. If the user already reviewed the product the
	// existing row is overwritten and review takes its ID and creation time.
	Insert(ctx context.Context, tx pgx.Tx, review *model.Review) error

	// Update rewrites the rating and comment of an existing review within tx.
	Update(ctx context.Context, tx pgx.Tx, review *model.Review) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser returns a user's orders, newest first, without items.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll returns every order, newest first, without items.
	ListAll(ctx context.Context) ([]model.Order, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetByEmail retrieves a user by email, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]model.User, error)

	// Upsert inserts a user or replaces the one with the same email.
	Upsert(ctx context.Context, user *model.User) error
}
