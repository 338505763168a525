package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func doRequest(t *testing.T, router http.Handler, cookie *http.Cookie, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(cookie)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func composerBackend(t *testing.T) *stubBackend {
	sb := newStubBackend(t)
	sb.respond("/user/verify-token", nil)
	sb.respond("/user/get/phone", map[string]any{
		"_id":   "user-1",
		"name":  "Priya Sharma",
		"phone": "9876543210",
	})
	sb.respond("/products/get/RING-001", map[string]any{
		"_id":              "prod-1",
		"skuId":            "RING-001",
		"name":             "Solitaire Ring",
		"images":           []string{"https://cdn.example/ring.jpg"},
		"sizes":            []map[string]any{{"displayName": "12", "weightOfMetal": 2.5}},
		"weightOfGold":     3.2,
		"isNaturalDiamond": true,
		"isLabDiamond":     true,
	})
	return sb
}

func TestComposerRejectsInvalidPhone(t *testing.T) {
	sb := composerBackend(t)
	router, cookie := newTestServer(t, sb)

	rec := doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/customer",
		url.Values{"phone": {"1234567890"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "valid mobile number") {
		t.Error("response does not show the phone validation error")
	}
}

func TestComposerLifecycle(t *testing.T) {
	sb := composerBackend(t)
	sb.respond("/order/create-custom", map[string]any{"_id": "order-99", "status": "Placed"})
	router, cookie := newTestServer(t, sb)

	// Bind the customer.
	rec := doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/customer",
		url.Values{"phone": {"9876543210"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("customer submit status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	// The composing view now shows the customer.
	rec = doRequest(t, router, cookie, http.MethodGet, "/order/create-custom", nil)
	if !strings.Contains(rec.Body.String(), "Priya Sharma") {
		t.Fatal("composing view does not show the bound customer")
	}

	// An incomplete line item is rejected and nothing is stored.
	rec = doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/items", url.Values{
		"sku":      {"RING-001"},
		"quantity": {"0"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("invalid item status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Submitting without items is rejected.
	rec = doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/submit",
		url.Values{"description": {"Engraved initials"}})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "at least one product") {
		t.Fatal("submit without items was not rejected")
	}

	// A complete line item is accepted.
	rec = doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/items", url.Values{
		"sku":         {"RING-001"},
		"quantity":    {"1"},
		"size":        {"12"},
		"price":       {"45000"},
		"diamondType": {"natural"},
		"karatOfGold": {"18"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("valid item status = %d, want %d: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}

	rec = doRequest(t, router, cookie, http.MethodGet, "/order/create-custom", nil)
	if !strings.Contains(rec.Body.String(), "Solitaire Ring") {
		t.Fatal("composing view does not show the added item")
	}

	// Submitting without a description keeps the draft and reports the error.
	rec = doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/submit",
		url.Values{"description": {"  "}})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "valid description") {
		t.Fatal("submit without description was not rejected")
	}

	// A full submit creates the order and clears the draft.
	rec = doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/submit",
		url.Values{"description": {"Engraved initials"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("submit status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/order/order-99" {
		t.Errorf("submit redirected to %q, want /order/order-99", loc)
	}

	rec = doRequest(t, router, cookie, http.MethodGet, "/order/create-custom", nil)
	if strings.Contains(rec.Body.String(), "Priya Sharma") {
		t.Error("draft was not cleared after submit")
	}
}

func TestComposerRemoveItem(t *testing.T) {
	sb := composerBackend(t)
	router, cookie := newTestServer(t, sb)

	doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/customer",
		url.Values{"phone": {"9876543210"}})
	doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/items", url.Values{
		"sku":         {"RING-001"},
		"quantity":    {"2"},
		"size":        {"12"},
		"price":       {"45000"},
		"diamondType": {"lab-grown"},
		"karatOfGold": {"14"},
	})

	rec := doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/items/0/remove", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("remove status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	rec = doRequest(t, router, cookie, http.MethodGet, "/order/create-custom", nil)
	if strings.Contains(rec.Body.String(), "Solitaire Ring") {
		t.Error("removed item still shown")
	}
}

func TestLogoutDiscardsDraft(t *testing.T) {
	sb := composerBackend(t)
	router, cookie := newTestServer(t, sb)

	doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/customer",
		url.Values{"phone": {"9876543210"}})

	rec := doRequest(t, router, cookie, http.MethodPost, "/logout", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	// Even if the old cookie value resurfaces, the draft is gone.
	rec = doRequest(t, router, cookie, http.MethodGet, "/order/create-custom", nil)
	if strings.Contains(rec.Body.String(), "Priya Sharma") {
		t.Error("draft survived logout")
	}
}

func TestComposerDiscard(t *testing.T) {
	sb := composerBackend(t)
	router, cookie := newTestServer(t, sb)

	doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/customer",
		url.Values{"phone": {"9876543210"}})

	rec := doRequest(t, router, cookie, http.MethodPost, "/order/create-custom/cancel", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("cancel status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	rec = doRequest(t, router, cookie, http.MethodGet, "/order/create-custom", nil)
	if strings.Contains(rec.Body.String(), "Priya Sharma") {
		t.Error("discarded draft still shown")
	}
}
