package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		{OrderStatusPlaced, OrderStatusShipped, true},
		{OrderStatusPlaced, OrderStatusCancelled, true},
		{OrderStatusPlaced, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusPlaced, false},
		// Terminal statuses allow nothing, including going backwards.
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusDelivered, OrderStatusPlaced, false},
		{OrderStatusCancelled, OrderStatusPlaced, false},
		{OrderStatusCancelled, OrderStatusShipped, false},
		{"unknown", OrderStatusShipped, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.expected {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	for _, s := range []string{OrderStatusPlaced, OrderStatusShipped} {
		if IsTerminalStatus(s) {
			t.Errorf("IsTerminalStatus(%q) = true, want false", s)
		}
		if len(NextStatuses(s)) == 0 {
			t.Errorf("NextStatuses(%q) is empty for a non-terminal status", s)
		}
	}
	for _, s := range []string{OrderStatusDelivered, OrderStatusCancelled} {
		if !IsTerminalStatus(s) {
			t.Errorf("IsTerminalStatus(%q) = false, want true", s)
		}
		if len(NextStatuses(s)) != 0 {
			t.Errorf("NextStatuses(%q) = %v, want none", s, NextStatuses(s))
		}
	}
}

func TestFormatDeliveredOn(t *testing.T) {
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	got := FormatDeliveredOn(d)
	want := "2024-03-15T00:00:00.000+00:00"
	if got != want {
		t.Errorf("FormatDeliveredOn = %q, want %q", got, want)
	}

	// The offset is fixed regardless of the time's location.
	ist := time.FixedZone("IST", 5*3600+1800)
	got = FormatDeliveredOn(time.Date(2024, 3, 15, 10, 30, 0, 0, ist))
	want = "2024-03-15T10:30:00.000+00:00"
	if got != want {
		t.Errorf("FormatDeliveredOn (IST) = %q, want %q", got, want)
	}
}

func validItem() LineItem {
	return LineItem{
		ProductID:   "prod1",
		SKUID:       "JS-0001",
		Name:        "Solitaire Ring",
		Quantity:    1,
		Size:        "M",
		Price:       decimal.NewFromInt(500),
		DiamondType: DiamondNatural,
	}
}

func TestValidateLineItem(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LineItem)
		karat   bool
		wantErr string // offending field, empty for valid
	}{
		{"valid", func(li *LineItem) {}, false, ""},
		{"zero quantity", func(li *LineItem) { li.Quantity = 0 }, false, "quantity"},
		{"negative quantity", func(li *LineItem) { li.Quantity = -2 }, false, "quantity"},
		{"zero price", func(li *LineItem) { li.Price = decimal.Zero }, false, "price"},
		{"negative price", func(li *LineItem) { li.Price = decimal.NewFromInt(-1) }, false, "price"},
		{"empty size", func(li *LineItem) { li.Size = "  " }, false, "size"},
		{"empty diamond type", func(li *LineItem) { li.DiamondType = "" }, false, "diamondType"},
		{"missing product", func(li *LineItem) { li.ProductID = "" }, false, "productId"},
		{"karat required but absent", func(li *LineItem) {}, true, "karatOfGold"},
		{"karat required and set", func(li *LineItem) { li.KaratOfGold = 18 }, true, ""},
		{"karat not required", func(li *LineItem) { li.KaratOfGold = 0 }, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			li := validItem()
			tt.mutate(&li)
			errs := ValidateLineItem(li, tt.karat)
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			if !errs.Has(tt.wantErr) {
				t.Fatalf("expected error on %q, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestValidateDraftSubmit(t *testing.T) {
	tests := []struct {
		name        string
		description string
		items       []LineItem
		wantFields  []string
	}{
		{"valid", "engrave initials", []LineItem{validItem()}, nil},
		{"empty description", "", []LineItem{validItem()}, []string{"description"}},
		{"whitespace description", "   ", []LineItem{validItem()}, []string{"description"}},
		{"no items", "engrave initials", nil, []string{"items"}},
		{"both missing", "", nil, []string{"description", "items"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateDraftSubmit(OrderDraft{Description: tt.description, Items: tt.items})
			if len(tt.wantFields) == 0 {
				if len(errs) != 0 {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %v", len(tt.wantFields), errs)
			}
			for _, f := range tt.wantFields {
				if !errs.Has(f) {
					t.Errorf("expected error on %q, got %v", f, errs)
				}
			}
		})
	}
}
