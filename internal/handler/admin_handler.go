package handler

import (
	"net/http"

	"floralshop/internal/model"
	"floralshop/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler serves the admin listings.
type AdminHandler struct {
	users  service.UserService
	orders service.OrderService
	logger zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(users service.UserService, orders service.OrderService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		users:  users,
		orders: orders,
		logger: logger.With().Str("handler", "admin").Logger(),
	}
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
