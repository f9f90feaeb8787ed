package cart

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotStore reads and writes the persisted cart snapshot for one browsing session.
type SnapshotStore interface {
	// Read returns the raw snapshot value, if one exists.
	Read(r *http.Request) (string, bool)

	// Write stores a new snapshot value.
	Write(w http.ResponseWriter, value string)

	// Clear removes the snapshot.
	Clear(w http.ResponseWriter)
}

// CookieStore keeps the snapshot in a client-side cookie.
type CookieStore struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// NewCookieStore returns a store for the "cart" cookie.
func NewCookieStore(maxAge time.Duration, secure bool) *CookieStore {
	return &CookieStore{
		Name:   SnapshotKey,
		MaxAge: maxAge,
		Secure: secure,
	}
}

// Read returns the cookie value, if set.
func (s *CookieStore) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Write sets the cookie.
func (s *CookieStore) Write(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.MaxAge.Seconds()),
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session is the cart context for a single request. Its lifecycle is
// Load (empty, then rehydrated from the snapshot) -> Dispatch -> Persist, or Teardown on logout.
type Session struct {
	store  SnapshotStore
	state  Cart
	logger zerolog.Logger
}

// Load creates a session and rehydrates it from the store. A corrupt snapshot
// yields an empty cart rather than an error.
func Load(store SnapshotStore, r *http.Request, logger zerolog.Logger) *Session {
	s := &Session{
		store:  store,
		state:  Empty(),
		logger: logger,
	}

	raw, ok := store.Read(r)
	if !ok {
		return s
	}

	c, err := DecodeSnapshot(raw)
	if err != nil {
		logger.Warn().Err(err).Msg("discarding unreadable cart snapshot")
		return s
	}
	s.state = c
	return s
}

// Cart returns the current state.
func (s *Session) Cart() Cart {
	return s.state
}

// Dispatch applies action to the session state and returns the result.
// Nothing is persisted until Persist is called.
func (s *Session) Dispatch(action Action) Cart {
	s.state = Apply(s.state, action)
	s.logger.Debug().
		Str("action", action.Type()).
		Int("items", len(s.state.Items)).
		Msg("cart action applied")
	return s.state
}

// Persist writes the current state back to the store.
func (s *Session) Persist(w http.ResponseWriter) error {
	value, err := EncodeSnapshot(s.state)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to persist cart snapshot")
		return err
	}
	s.store.Write(w, value)
	return nil
}

// Teardown resets the cart and removes the snapshot.
func (s *Session) Teardown(w http.ResponseWriter) {
	s.state = Apply(s.state, Reset{})
	s.store.Clear(w)
}
