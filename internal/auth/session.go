// Package auth issues and verifies session tokens and exposes the
// authenticated identity to the rest of the request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie the session token is stored under.
const SessionCookie = "session"

// Identity is what the rest of the system knows about the caller.
type Identity struct {
	UserID  string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer with the given signing secret and token lifetime.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for id.
func (i *Issuer) Issue(id Identity) (string, error) {
	if id.UserID == "" {
		return "", errors.New("identity has no user ID")
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Name:    id.Name,
		Email:   id.Email,
		IsAdmin: id.IsAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenStr and returns the identity it carries.
func (i *Issuer) Parse(tokenStr string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token subject is required")
	}

	return &Identity{
		UserID:  claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}, nil
}

type identityKey struct{}

// WithIdentity attaches id to ctx.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the authenticated identity, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
