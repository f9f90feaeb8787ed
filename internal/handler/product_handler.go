package handler

import (
	"net/http"
	"strconv"

	"floralshop/internal/model"
	"floralshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with pagination, an optional category and a search query.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := model.ProductFilter{Category: query.Get("category"), Query: query.Get("query")}

	var err error
	if s := query.Get("limit"); s != "" {
		if filter.Limit, err = strconv.Atoi(s); err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid limit parameter", h.logger)
			return
		}
	}
	if s := query.Get("offset"); s != "" {
		if filter.Offset, err = strconv.Atoi(s); err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid offset parameter", h.logger)
			return
		}
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// Categories handles GET /api/products/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// GetBySlug handles GET /api/products/slug/{slug}.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
