package handler

import (
	"net/http"

	"floralshop/internal/auth"
	"floralshop/internal/cart"
	"floralshop/internal/model"
	"floralshop/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler issues and clears sessions.
type AuthHandler struct {
	users  service.UserService
	issuer *auth.Issuer
	store  cart.SnapshotStore
	secure bool
	logger zerolog.Logger
}

// NewAuthHandler creates a new auth handler. store is the cart snapshot store,
// cleared on logout.
func NewAuthHandler(users service.UserService, issuer *auth.Issuer, store cart.SnapshotStore, secureCookies bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		issuer: issuer,
		store:  store,
		secure: secureCookies,
		logger: logger.With().Str("handler", "auth").Logger(),
	}
}

type loginResponse struct {
	User  *auth.Identity `json:"user"`
	Token string         `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	who, err := h.users.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	token, err := h.issuer.Issue(*who)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.issuer.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info().Str("user_id", who.UserID).Bool("admin", who.IsAdmin).Msg("session issued")
	writeJSON(w, http.StatusOK, loginResponse{User: who, Token: token})
}

// Logout handles POST /api/auth/logout. It drops the session and empties the cart.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	cart.Load(h.store, r, h.logger).Teardown(w)

	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

// KeysHandler exposes client-side API keys to signed-in users.
type KeysHandler struct {
	googleAPIKey string
}

// NewKeysHandler creates a new keys handler. An empty key is reported as "nokey".
func NewKeysHandler(googleAPIKey string) *KeysHandler {
	return &KeysHandler{googleAPIKey: googleAPIKey}
}

type keyResponse struct {
	Key string `json:"key"`
}

// Google handles GET /api/keys/google.
func (h *KeysHandler) Google(w http.ResponseWriter, r *http.Request) {
	key := h.googleAPIKey
	if key == "" {
		key = "nokey"
	}
	writeJSON(w, http.StatusOK, keyResponse{Key: key})
}
