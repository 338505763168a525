// Package session is the single source of truth for the staff login
// session. The backend bearer token is carried inside a signed cookie; no
// other part of the dashboard touches token storage directly.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the fixed storage key for the session.
const CookieName = "session"

// Expiry is the session cookie lifetime. The backend token inside may
// expire sooner; it is re-verified on every navigation anyway.
const Expiry = 24 * time.Hour

// Claims are the signed session contents: the backend bearer token and the
// staff email, plus a unique session ID used to key order drafts.
type Claims struct {
	BackendToken string `json:"backendToken"`
	Email        string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies session cookies.
type Service struct {
	secret []byte
}

// NewService creates a session service with the given signing secret.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue creates a signed session value wrapping a backend token.
func (s *Service) Issue(backendToken, email string) (string, error) {
	id, err := generateSessionID()
	if err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}

	claims := Claims{
		BackendToken: backendToken,
		Email:        email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(Expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session value, returning its claims.
func (s *Service) Verify(value string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(value, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session")
	}

	return claims, nil
}

// SetCookie writes the session cookie.
func SetCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(Expiry.Seconds()),
	})
}

// ClearCookie deletes the session cookie with consistent attributes.
// Safe to call repeatedly.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func generateSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
