package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rectangle-technologies/jewellery-admin/internal/backend"
	"github.com/rectangle-technologies/jewellery-admin/internal/session"
)

type contextKey string

const claimsKey contextKey = "claims"

// RequireSession gates every authenticated route. The session cookie is
// validated locally and the backend token inside it is then re-verified
// against the backend on every navigation — verification results are never
// cached. Any failure, including network failure, fails closed: the cookie
// is cleared and the request redirected to the login page. Clearing an
// already-absent cookie is harmless, so repeated failures cannot loop.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		claims, err := s.Sessions.Verify(cookie.Value)
		if err != nil {
			session.ClearCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := s.Backend.VerifyToken(r.Context(), claims.BackendToken); err != nil {
			if !errors.Is(err, backend.ErrUnauthorized) {
				slog.Warn("token verification failed", "error", err)
			}
			session.ClearCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Claims retrieves the session claims from the request context.
func Claims(ctx context.Context) *session.Claims {
	claims, _ := ctx.Value(claimsKey).(*session.Claims)
	return claims
}

// token returns the backend bearer token for the current request.
func token(ctx context.Context) string {
	if c := Claims(ctx); c != nil {
		return c.BackendToken
	}
	return ""
}

// authFailed handles a backend auth failure from within a handler: clear
// the session and send the user back to login. Returns true if err was an
// auth failure.
func (s *Server) authFailed(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, backend.ErrUnauthorized) {
		return false
	}
	session.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

// errMessage extracts the server-supplied message from a backend error,
// falling back to a generic string.
func errMessage(err error, generic string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return generic
}

// backLink returns a safe same-site return URL from the request, or the
// fallback. Listing pages pass their own URL along so detail pages can
// restore the prior list state instead of starting over at page 1.
func backLink(r *http.Request, fallback string) string {
	back := r.URL.Query().Get("back")
	if back == "" {
		back = r.FormValue("back")
	}
	if strings.HasPrefix(back, "/") && !strings.HasPrefix(back, "//") {
		return back
	}
	return fallback
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
