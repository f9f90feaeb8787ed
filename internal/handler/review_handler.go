package handler

import (
	"net/http"

	"floralshop/internal/auth"
	"floralshop/internal/model"
	"floralshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ReviewHandler handles /api/products/{id}/reviews.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// Reviews serves every method on the reviews route. Only GET and POST are
// supported; anything else is a 400.
func (h *ReviewHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.submit(w, r)
	default:
		writeError(w, http.StatusBadRequest, model.ErrCodeMethodNotAllowed, "Method not allowed", h.logger)
	}
}

func (h *ReviewHandler) list(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) submit(w http.ResponseWriter, r *http.Request) {
	who, ok := auth.FromContext(r.Context())
	if !ok {
		writeServiceError(w, model.ErrUnauthorised, h.logger)
		return
	}

	var req model.ReviewRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.SubmitReview(r.Context(), chi.URLParam(r, "id"), who, req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}
