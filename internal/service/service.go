package service

import (
	"context"

	"floralshop/internal/auth"
	"floralshop/internal/cart"
	"floralshop/internal/model"

	"github.com/google/uuid"
)

// ProductService defines read operations on the catalogue.
type ProductService interface {
	// List retrieves products with pagination and an optional category filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetBySlug retrieves a single product by slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Categories lists the distinct product categories.
	Categories(ctx context.Context) ([]string, error)
}

// CartService validates cart mutations against authoritative product data and
// dispatches them on the request's cart session. A failed call leaves the
// session untouched.
type CartService interface {
	// AddItem adds productID. A nil quantity means one more than the cart holds.
	AddItem(ctx context.Context, sess *cart.Session, productID string, quantity *int) (cart.View, error)

	// UpdateQuantity sets the quantity of a product already in the cart.
	UpdateQuantity(ctx context.Context, sess *cart.Session, productID string, quantity int) (cart.View, error)

	// RemoveItem drops productID from the cart.
	RemoveItem(sess *cart.Session, productID string) cart.View

	// SaveShippingAddress stores the address once every field is filled in.
	SaveShippingAddress(sess *cart.Session, addr model.ShippingAddress) (cart.View, error)

	// SavePaymentMethod stores one of the accepted payment methods.
	SavePaymentMethod(sess *cart.Session, method string) (cart.View, error)

	// Reset empties the cart.
	Reset(sess *cart.Session) cart.View
}

// ReviewService defines operations on product reviews.
type ReviewService interface {
	// ListReviews returns a product's reviews in creation order.
	ListReviews(ctx context.Context, productID string) ([]model.Review, error)

	// SubmitReview creates or updates the caller's review and recomputes the product aggregate.
	SubmitReview(ctx context.Context, productID string, who *auth.Identity, req model.ReviewRequest) (*model.ReviewResponse, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// PlaceOrder turns a completed checkout into an order.
	PlaceOrder(ctx context.Context, who *auth.Identity, c cart.Cart) (*model.Order, error)

	// History lists the caller's orders.
	History(ctx context.Context, who *auth.Identity) ([]model.Order, error)

	// GetByID retrieves an order the caller owns, or any order for an admin.
	GetByID(ctx context.Context, who *auth.Identity, id uuid.UUID) (*model.Order, error)

	// ListAll lists every order.
	ListAll(ctx context.Context) ([]model.Order, error)
}

// UserService defines account operations.
type UserService interface {
	// Login verifies credentials and returns the identity to put in a session.
	Login(ctx context.Context, req model.LoginRequest) (*auth.Identity, error)

	// List returns every user.
	List(ctx context.Context) ([]model.User, error)
}
