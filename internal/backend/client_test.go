package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"result": "SUCCESS"})
	})
	defer srv.Close()

	if err := c.VerifyToken(context.Background(), "tok123"); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"result": "SUCCESS",
			"body":   map[string]string{"token": "issued"},
		})
	})
	defer srv.Close()

	token, err := c.Login(context.Background(), "staff@example.com", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if token != "issued" {
		t.Errorf("token = %q", token)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestDoSurfacesEnvelopeFailure(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"result":  "ERROR",
			"message": "User not found",
		})
	})
	defer srv.Close()

	_, err := c.UserByPhone(context.Background(), "tok", "9876543210")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "User not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.Error() != "User not found" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestDoFailureResultWith200Status(t *testing.T) {
	// Some backend handlers report failure in the envelope without a
	// matching HTTP status.
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result":  "ERROR",
			"message": "Invalid SKU",
		})
	})
	defer srv.Close()

	_, err := c.ProductBySKU(context.Background(), "tok", "JS-0001")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
}

func TestDoUnauthorized(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	err := c.VerifyToken(context.Background(), "expired")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDoNetworkFailure(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // force connection errors

	err := c.VerifyToken(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("network failure must not masquerade as an auth failure")
	}
}

func TestAPIErrorGenericMessage(t *testing.T) {
	err := &APIError{Status: 500}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("Error() = %q, want a generic message naming the status", err.Error())
	}
}
