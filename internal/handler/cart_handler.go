package handler

import (
	"net/http"

	"floralshop/internal/cart"
	"floralshop/internal/model"
	"floralshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler handles /api/cart. Every request loads the cart from its snapshot
// and writes it back only when the mutation succeeded.
type CartHandler struct {
	service service.CartService
	store   cart.SnapshotStore
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, store cart.SnapshotStore, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		store:   store,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type paymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := cart.Load(h.store, r, h.logger)
	writeJSON(w, http.StatusOK, cart.NewView(sess.Cart()))
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	h.mutate(w, r, func(sess *cart.Session) (cart.View, error) {
		return h.service.AddItem(r.Context(), sess, req.ProductID, req.Quantity)
	})
}

// UpdateItem handles PUT /api/cart/items/{productId}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	h.mutate(w, r, func(sess *cart.Session) (cart.View, error) {
		return h.service.UpdateQuantity(r.Context(), sess, chi.URLParam(r, "productId"), req.Quantity)
	})
}

// RemoveItem handles DELETE /api/cart/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(sess *cart.Session) (cart.View, error) {
		return h.service.RemoveItem(sess, chi.URLParam(r, "productId")), nil
	})
}

// SaveShipping handles PUT /api/cart/shipping.
func (h *CartHandler) SaveShipping(w http.ResponseWriter, r *http.Request) {
	var addr model.ShippingAddress
	if !decodeJSON(w, r, &addr, h.logger) {
		return
	}
	h.mutate(w, r, func(sess *cart.Session) (cart.View, error) {
		return h.service.SaveShippingAddress(sess, addr)
	})
}

// SavePayment handles PUT /api/cart/payment.
func (h *CartHandler) SavePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	h.mutate(w, r, func(sess *cart.Session) (cart.View, error) {
		return h.service.SavePaymentMethod(sess, req.PaymentMethod)
	})
}

// Reset handles DELETE /api/cart.
func (h *CartHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(sess *cart.Session) (cart.View, error) {
		return h.service.Reset(sess), nil
	})
}

func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(*cart.Session) (cart.View, error)) {
	sess := cart.Load(h.store, r, h.logger)

	view, err := fn(sess)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := sess.Persist(w); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
