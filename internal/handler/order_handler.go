package handler

import (
	"net/http"

	"floralshop/internal/auth"
	"floralshop/internal/cart"
	"floralshop/internal/model"
	"floralshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	store   cart.SnapshotStore
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, store cart.SnapshotStore, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		store:   store,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Place handles POST /api/orders. The order is built from the persisted cart,
// which is cleared once the order is stored.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.FromContext(r.Context())
	sess := cart.Load(h.store, r, h.logger)

	order, err := h.service.PlaceOrder(r.Context(), who, sess.Cart())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	sess.Teardown(w)
	writeJSON(w, http.StatusCreated, order)
}

// History handles GET /api/orders/history.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.FromContext(r.Context())

	orders, err := h.service.History(r.Context(), who)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid order ID format", h.logger)
		return
	}

	who, _ := auth.FromContext(r.Context())
	order, err := h.service.GetByID(r.Context(), who, orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
