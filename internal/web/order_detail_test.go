package web

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func orderBackend(t *testing.T, status string) *stubBackend {
	sb := newStubBackend(t)
	sb.respond("/user/verify-token", nil)
	sb.respond("/order/get/order-1", map[string]any{
		"_id":         "order-1",
		"status":      status,
		"totalAmount": 45000,
		"userId":      map[string]any{"_id": "user-1", "name": "Priya Sharma"},
	})
	sb.respond("/order/update-status/order-1", nil)
	return sb
}

func TestOrderStatusRequiresConfirmation(t *testing.T) {
	sb := orderBackend(t, "Placed")
	router, cookie := newTestServer(t, sb)

	// First POST renders the confirmation page, nothing is updated yet.
	rec := doRequest(t, router, cookie, http.MethodPost, "/order/order-1/status",
		url.Values{"status": {"Shipped"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Confirm") {
		t.Fatal("first POST did not render the confirmation page")
	}

	// The confirmed POST performs the transition.
	rec = doRequest(t, router, cookie, http.MethodPost, "/order/order-1/status",
		url.Values{"status": {"Shipped"}, "confirm": {"1"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("confirmed status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/order/order-1?") {
		t.Errorf("redirected to %q, want the order detail page", loc)
	}
}

func TestOrderStatusRejectsIllegalTransition(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		target string
	}{
		{"terminal delivered", "Delivered", "Shipped"},
		{"terminal cancelled", "Cancelled", "Shipped"},
		{"skipping shipped", "Placed", "Delivered"},
		{"cancel after shipping", "Shipped", "Cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := orderBackend(t, tt.from)
			router, cookie := newTestServer(t, sb)

			rec := doRequest(t, router, cookie, http.MethodPost, "/order/order-1/status",
				url.Values{"status": {tt.target}, "confirm": {"1"}})
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if !strings.Contains(rec.Body.String(), "cannot be marked") {
				t.Errorf("%s -> %s was not rejected", tt.from, tt.target)
			}
		})
	}
}

func TestOrderStatusDeliveredRequiresDate(t *testing.T) {
	sb := orderBackend(t, "Shipped")
	router, cookie := newTestServer(t, sb)

	rec := doRequest(t, router, cookie, http.MethodPost, "/order/order-1/status",
		url.Values{"status": {"Delivered"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Delivery Date") {
		t.Error("missing delivery date was not reported")
	}

	// With a date, the flow proceeds to confirmation.
	rec = doRequest(t, router, cookie, http.MethodPost, "/order/order-1/status",
		url.Values{"status": {"Delivered"}, "deliveredOn": {"2026-03-15"}})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Confirm") {
		t.Fatal("valid delivery date did not reach the confirmation page")
	}
}
