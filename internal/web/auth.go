package web

import (
	"log/slog"
	"net/http"

	"github.com/rectangle-technologies/jewellery-admin/internal/session"
	"github.com/rectangle-technologies/jewellery-admin/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Login"})
}

// LoginSubmit handles POST /login. Credentials are exchanged with the
// backend for a bearer token, which is wrapped in a signed session cookie.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Login",
			Error: "Please enter your email and password.",
		})
		return
	}

	backendToken, err := s.Backend.Login(r.Context(), email, password)
	if err != nil {
		slog.Warn("login failed", "email", email, "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Login",
			Error: errMessage(err, "Invalid email or password."),
		})
		return
	}

	value, err := s.Sessions.Issue(backendToken, email)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Login",
			Error: "Something went wrong, please try again.",
		})
		return
	}

	session.SetCookie(w, value)
	slog.Info("staff logged in", "email", email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. The session's order draft, if any, goes
// with the cookie; nothing of the session is left behind.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if claims, err := s.Sessions.Verify(cookie.Value); err == nil {
			if err := store.DeleteDraft(r.Context(), s.DB, claims.ID); err != nil {
				slog.Error("failed to discard draft on logout", "error", err)
			}
		}
	}

	session.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
