package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rectangle-technologies/jewellery-admin/internal/backend"
	"github.com/rectangle-technologies/jewellery-admin/internal/db"
	"github.com/rectangle-technologies/jewellery-admin/internal/session"
)

// stubBackend is a fake shop API. Handlers are registered per path and every
// response is wrapped in the backend's result envelope.
type stubBackend struct {
	mux *http.ServeMux
	srv *httptest.Server
}

func newStubBackend(t *testing.T) *stubBackend {
	t.Helper()
	sb := &stubBackend{mux: http.NewServeMux()}
	sb.srv = httptest.NewServer(sb.mux)
	t.Cleanup(sb.srv.Close)
	return sb
}

func (sb *stubBackend) respond(path string, body any) {
	sb.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		data, _ := json.Marshal(body)
		json.NewEncoder(w).Encode(map[string]any{
			"result": "SUCCESS",
			"body":   json.RawMessage(data),
		})
	})
}

func (sb *stubBackend) fail(path string, status int, message string) {
	sb.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"result":  "FAILURE",
			"message": message,
		})
	})
}

// newTestServer builds the full router against a stub backend and an
// in-memory state database, and returns a valid session cookie for it.
func newTestServer(t *testing.T, sb *stubBackend) (http.Handler, *http.Cookie) {
	t.Helper()

	database := db.NewTestDB(t)
	client := backend.New(sb.srv.URL, 0)
	sessions := session.NewService("746573742d736563726574")

	router, err := NewRouter(client, database, sessions)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	value, err := sessions.Issue("backend-token", "staff@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	return router, &http.Cookie{Name: session.CookieName, Value: value}
}

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	sb := newStubBackend(t)
	router, _ := newTestServer(t, sb)

	paths := []string{"/", "/all-products", "/all-orders", "/all-users", "/metal-prices", "/home-content"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("GET %s redirected to %q, want /login", path, loc)
		}
	}
}

func TestRequireSessionRejectsStaleToken(t *testing.T) {
	sb := newStubBackend(t)
	sb.fail("/user/verify-token", http.StatusUnauthorized, "token expired")
	router, cookie := newTestServer(t, sb)

	req := httptest.NewRequest(http.MethodGet, "/all-orders", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirected to %q, want /login", loc)
	}

	// The stale cookie must be cleared, not just ignored.
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("stale session cookie was not cleared")
	}
}

func TestLoginSetsSessionAndRedirects(t *testing.T) {
	sb := newStubBackend(t)
	sb.respond("/user/login", map[string]string{"token": "fresh-token"})
	router, _ := newTestServer(t, sb)

	form := url.Values{"email": {"staff@example.com"}, "password": {"hunter2"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirected to %q, want /", loc)
	}

	var got *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			got = c
		}
	}
	if got == nil || got.Value == "" {
		t.Fatal("no session cookie set")
	}
	if !got.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
}

func TestLoginFailureShowsBackendMessage(t *testing.T) {
	sb := newStubBackend(t)
	// Business failures come back as a FAILURE envelope with HTTP 200.
	sb.fail("/user/login", http.StatusOK, "Incorrect password")
	router, _ := newTestServer(t, sb)

	form := url.Values{"email": {"staff@example.com"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Incorrect password") {
		t.Error("response does not show the backend's error message")
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			t.Error("session cookie set on failed login")
		}
	}
}

func TestBackLink(t *testing.T) {
	tests := []struct {
		name     string
		back     string
		fallback string
		want     string
	}{
		{"empty uses fallback", "", "/all-orders", "/all-orders"},
		{"same-site path kept", "/all-orders?page=3", "/all-orders", "/all-orders?page=3"},
		{"absolute URL rejected", "https://evil.example/x", "/all-orders", "/all-orders"},
		{"protocol-relative rejected", "//evil.example/x", "/all-orders", "/all-orders"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/order/abc?back="+url.QueryEscape(tt.back), nil)
			if got := backLink(req, tt.fallback); got != tt.want {
				t.Errorf("backLink(%q) = %q, want %q", tt.back, got, tt.want)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 0},
		{1, 1},
		{20, 1},
		{21, 2},
		{200, 10},
	}

	for _, tt := range tests {
		if got := totalPages(tt.total); got != tt.want {
			t.Errorf("totalPages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
