package service

import (
	"context"
	"fmt"
	"time"

	"floralshop/internal/auth"
	"floralshop/internal/cart"
	"floralshop/internal/checkout"
	"floralshop/internal/model"
	"floralshop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	now         func() time.Time
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. productRepo must read the
// database directly so the stock re-check sees current counts.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		now:         time.Now,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder checks the wizard preconditions, re-prices every line from current
// product data, re-checks stock and stores the order in one transaction.
func (s *orderService) PlaceOrder(ctx context.Context, who *auth.Identity, c cart.Cart) (*model.Order, error) {
	if who == nil {
		return nil, model.ErrUnauthorised
	}
	if len(c.Items) == 0 {
		return nil, model.ErrEmptyCart
	}
	if d := checkout.Enter(checkout.StepPlaceOrder, c); d.Redirected {
		return nil, model.NewValidationError(model.ErrCodeIncompleteCheckout, d.Reason)
	}
	// The snapshot comes from the client, so the method is re-validated here.
	method, err := cart.ParsePaymentMethod(string(c.PaymentMethod))
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, len(c.Items))
	for i, item := range c.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load products for order")
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	priced := cart.Cart{
		Items:           make([]cart.Item, 0, len(c.Items)),
		ShippingAddress: c.ShippingAddress,
		PaymentMethod:   method,
	}
	for _, item := range c.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", item.ProductID).Msg("cart references a missing product")
			return nil, model.ErrProductNotFound
		}
		if item.Quantity <= 0 {
			return nil, model.ErrInvalidQuantity
		}
		if p.CountInStock < item.Quantity {
			s.logger.Info().
				Str("product_id", p.ID).
				Int("requested", item.Quantity).
				Int("in_stock", p.CountInStock).
				Msg("order rejected: out of stock")
			return nil, model.ErrOutOfStock
		}
		priced.Items = append(priced.Items, cart.ItemFromProduct(p, item.Quantity))
	}

	summary := checkout.Price(priced)
	now := s.now()
	order := &model.Order{
		ID:              uuid.New(),
		UserID:          who.UserID,
		ShippingAddress: c.ShippingAddress,
		PaymentMethod:   string(method),
		ItemsPrice:      summary.ItemsPrice,
		ShippingPrice:   summary.ShippingPrice,
		TaxPrice:        summary.TaxPrice,
		TotalPrice:      summary.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	order.Items = make([]model.OrderItem, len(priced.Items))
	for i, item := range priced.Items {
		order.Items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Slug:      item.Slug,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", who.UserID).
		Int("item_count", len(order.Items)).
		Str("total", order.TotalPrice.StringFixed(2)).
		Msg("order placed")

	return order, nil
}

func (s *orderService) History(ctx context.Context, who *auth.Identity) ([]model.Order, error) {
	if who == nil {
		return nil, model.ErrUnauthorised
	}

	orders, err := s.orderRepo.ListByUser(ctx, who.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", who.UserID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID hides orders the caller may not see behind the same not-found error.
func (s *orderService) GetByID(ctx context.Context, who *auth.Identity, id uuid.UUID) (*model.Order, error) {
	if who == nil {
		return nil, model.ErrUnauthorised
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil || (order.UserID != who.UserID && !who.IsAdmin) {
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list all orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
