package service

import (
	"context"
	"fmt"
	"strings"

	"floralshop/internal/cart"
	"floralshop/internal/model"
	"floralshop/internal/repository"

	"github.com/rs/zerolog"
)

type cartService struct {
	// productRepo must read the database directly; stock checks never use the cache.
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) AddItem(ctx context.Context, sess *cart.Session, productID string, quantity *int) (cart.View, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return cart.View{}, err
	}

	qty := 1
	if existing, ok := sess.Cart().Find(productID); ok {
		qty = existing.Quantity + 1
	}
	if quantity != nil {
		qty = *quantity
	}
	if qty <= 0 {
		return cart.View{}, model.ErrInvalidQuantity
	}

	if product.CountInStock < qty {
		s.logger.Info().
			Str("product_id", productID).
			Int("requested", qty).
			Int("in_stock", product.CountInStock).
			Msg("add to cart rejected: out of stock")
		return cart.View{}, model.ErrOutOfStock
	}

	c := sess.Dispatch(cart.AddItem{Item: cart.ItemFromProduct(product, qty), Quantity: qty})
	return cart.NewView(c), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sess *cart.Session, productID string, quantity int) (cart.View, error) {
	if quantity <= 0 {
		return cart.View{}, model.ErrInvalidQuantity
	}
	if _, ok := sess.Cart().Find(productID); !ok {
		return cart.NewView(sess.Cart()), nil
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return cart.View{}, err
	}
	if product.CountInStock < quantity {
		return cart.View{}, model.ErrOutOfStock
	}

	// Refresh the line from the product so price and stock are current.
	c := sess.Dispatch(cart.AddItem{Item: cart.ItemFromProduct(product, quantity), Quantity: quantity})
	return cart.NewView(c), nil
}

func (s *cartService) RemoveItem(sess *cart.Session, productID string) cart.View {
	return cart.NewView(sess.Dispatch(cart.RemoveItem{ProductID: productID}))
}

func (s *cartService) SaveShippingAddress(sess *cart.Session, addr model.ShippingAddress) (cart.View, error) {
	addr = model.ShippingAddress{
		FullName:   strings.TrimSpace(addr.FullName),
		Address:    strings.TrimSpace(addr.Address),
		City:       strings.TrimSpace(addr.City),
		PostalCode: strings.TrimSpace(addr.PostalCode),
		Country:    strings.TrimSpace(addr.Country),
	}

	for _, f := range []struct{ name, value string }{
		{"fullName", addr.FullName},
		{"address", addr.Address},
		{"city", addr.City},
		{"postalCode", addr.PostalCode},
		{"country", addr.Country},
	} {
		if f.value == "" {
			return cart.View{}, model.NewValidationError(model.ErrCodeInvalidShippingField, fmt.Sprintf("%s is required", f.name))
		}
	}

	return cart.NewView(sess.Dispatch(cart.SaveShippingAddress{Address: addr})), nil
}

func (s *cartService) SavePaymentMethod(sess *cart.Session, method string) (cart.View, error) {
	pm, err := cart.ParsePaymentMethod(method)
	if err != nil {
		return cart.View{}, err
	}
	return cart.NewView(sess.Dispatch(cart.SavePaymentMethod{Method: pm})), nil
}

func (s *cartService) Reset(sess *cart.Session) cart.View {
	return cart.NewView(sess.Dispatch(cart.Reset{}))
}

func (s *cartService) loadProduct(ctx context.Context, productID string) (*model.Product, error) {
	if productID == "" {
		return nil, model.NewValidationError(model.ErrCodeMissingField, "productId is required")
	}

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
