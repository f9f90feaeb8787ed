package handler

import (
	"net/http"

	"floralshop/internal/cart"
	"floralshop/internal/checkout"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CheckoutHandler answers which wizard step a customer may see.
type CheckoutHandler struct {
	store  cart.SnapshotStore
	logger zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(store cart.SnapshotStore, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		store:  store,
		logger: logger.With().Str("handler", "checkout").Logger(),
	}
}

type stepResponse struct {
	checkout.Decision
	Cart    cart.View         `json:"cart"`
	Summary *checkout.Summary `json:"summary,omitempty"`
}

// Enter handles GET /api/checkout/{step}. A redirect is a normal 200 response
// naming the step the customer lands on.
func (h *CheckoutHandler) Enter(w http.ResponseWriter, r *http.Request) {
	step, err := checkout.ParseStep(chi.URLParam(r, "step"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	c := cart.Load(h.store, r, h.logger).Cart()
	resp := stepResponse{
		Decision: checkout.Enter(step, c),
		Cart:     cart.NewView(c),
	}
	if resp.Step == checkout.StepPlaceOrder {
		summary := checkout.Price(c)
		resp.Summary = &summary
	}

	if resp.Redirected {
		h.logger.Debug().
			Stringer("requested", resp.Requested).
			Stringer("step", resp.Step).
			Str("reason", resp.Reason).
			Msg("checkout step redirected")
	}
	writeJSON(w, http.StatusOK, resp)
}
