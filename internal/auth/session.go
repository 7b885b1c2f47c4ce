// Package auth mints and verifies the opaque session token that round-trips
// the externally-authenticated principal. Identity itself is out of scope:
// whatever {id, email, name} the auth provider yields is what goes in.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"noion/internal/config"
	"noion/internal/domain"
	"noion/internal/domain/models"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "noion_user"

// SessionClaims are the JWT claims stored in a session token
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies session tokens with a local HS256
// secret. There is no external identity provider to poll for keys.
type SessionManager struct {
	secret []byte
	logger *slog.Logger
}

// NewSessionManager creates a session manager
func NewSessionManager(secret string, logger *slog.Logger) (*SessionManager, error) {
	if secret == "" {
		return nil, errors.New("session secret cannot be empty")
	}
	return &SessionManager{
		secret: []byte(secret),
		logger: logger,
	}, nil
}

// Issue signs a session token for the principal
func (m *SessionManager) Issue(p *models.Principal) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: p.Email,
		Name:  p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.SessionLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify validates a session token and returns the principal it carries
func (m *SessionManager) Verify(tokenString string) (*models.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		// Reject anything but our own HS256 signing
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}

	return &models.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

// Cookie wraps a token in the session cookie
func (m *SessionManager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.SessionLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie
func (m *SessionManager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
