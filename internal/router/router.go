package router

import (
	"net/http"

	"floralshop/internal/auth"
	"floralshop/internal/handler"
	"floralshop/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Product  *handler.ProductHandler
	Review   *handler.ReviewHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Admin    *handler.AdminHandler
	Auth     *handler.AuthHandler
	Keys     *handler.KeysHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, issuer *auth.Issuer, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> CORS -> Session
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Session(issuer, logger))

	requireAuth := middleware.RequireAuth(logger)
	requireAdmin := middleware.RequireAdmin(logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/categories", h.Product.Categories)
			r.Get("/slug/{slug}", h.Product.GetBySlug)
			r.Get("/{id}", h.Product.GetByID)
			r.HandleFunc("/{id}/reviews", h.Review.Reviews)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Reset)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{productId}", h.Cart.UpdateItem)
			r.Delete("/items/{productId}", h.Cart.RemoveItem)
			r.Put("/shipping", h.Cart.SaveShipping)
			r.Put("/payment", h.Cart.SavePayment)
		})

		r.Get("/checkout/{step}", h.Checkout.Enter)

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.Order.Place)
			r.Get("/history", h.Order.History)
			r.Get("/{id}", h.Order.GetByID)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/users", h.Admin.Users)
			r.Get("/orders", h.Admin.Orders)
		})

		r.With(requireAuth).Get("/keys/google", h.Keys.Google)

		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)
	})

	return r
}
