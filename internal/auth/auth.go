// Package auth verifies the bearer credentials issued by the external
// identity service. Token issuance is not this service's job; Issue exists
// for tests and local development.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// MetadataKey is the key used to store auth config in huma operation metadata.
const MetadataKey = "auth"

// EndpointConfig marks an operation's authentication requirement.
type EndpointConfig struct {
	// Required rejects unauthenticated requests with 401. When false, a
	// valid token still populates the creator identity in the context.
	Required bool
}

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims this service consumes. UserID is the creator
// identity everything downstream is scoped by.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Manager verifies HS256 bearer tokens.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager with the shared signing secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Verify parses a token string and returns the creator identity it carries.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, t.Header["alg"])
			}

			return m.secret, nil
		})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// Issue signs a token for the given creator identity.
func (m *Manager) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: userID})

	return token.SignedString(m.secret)
}

type creatorKey struct{}

// ContextWithCreator stores the authenticated creator identity in the context.
func ContextWithCreator(ctx context.Context, creatorID string) context.Context {
	return context.WithValue(ctx, creatorKey{}, creatorID)
}

// CreatorFromContext returns the authenticated creator identity, or "" for
// anonymous requests.
func CreatorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(creatorKey{}).(string); ok {
		return v
	}

	return ""
}
