package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. The backend stores them capitalized.
const (
	OrderStatusPlaced    = "Placed"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// Diamond types offered on a line item.
const (
	DiamondNatural = "natural"
	DiamondLab     = "lab-grown"
)

// NextStatuses returns the statuses an order may move to from its current
// status. Delivered and Cancelled are terminal.
func NextStatuses(status string) []string {
	switch status {
	case OrderStatusPlaced:
		return []string{OrderStatusShipped, OrderStatusCancelled}
	case OrderStatusShipped:
		return []string{OrderStatusDelivered}
	default:
		return nil
	}
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range NextStatuses(from) {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transitions are possible.
func IsTerminalStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

// FormatDeliveredOn renders a delivery date the way the backend expects it:
// ISO-8601 with milliseconds and a fixed +00:00 offset.
func FormatDeliveredOn(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000") + "+00:00"
}

// LineItem is one product entry in an order draft, carrying its own
// quantity, size, price and diamond type independent of the catalog
// product's defaults.
type LineItem struct {
	ProductID   string          `json:"productId"`
	SKUID       string          `json:"skuId"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Quantity    int             `json:"quantity"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	DiamondType string          `json:"diamondType"`
	KaratOfGold int             `json:"karatOfGold,omitempty"`
}

// ValidateLineItem checks a line item before it enters a draft. requireKarat
// is set when the looked-up product contains gold.
func ValidateLineItem(li LineItem, requireKarat bool) FieldErrors {
	var errs FieldErrors
	if li.ProductID == "" {
		errs = append(errs, FieldError{"productId", "Product reference is missing"})
	}
	if li.Quantity <= 0 {
		errs = append(errs, FieldError{"quantity", "Please enter a valid quantity"})
	}
	if !li.Price.IsPositive() {
		errs = append(errs, FieldError{"price", "Please enter a valid price"})
	}
	if strings.TrimSpace(li.Size) == "" {
		errs = append(errs, FieldError{"size", "Please select a size"})
	}
	if strings.TrimSpace(li.DiamondType) == "" {
		errs = append(errs, FieldError{"diamondType", "Please select a diamond type"})
	}
	if requireKarat && li.KaratOfGold <= 0 {
		errs = append(errs, FieldError{"karatOfGold", "Please select the karat of gold"})
	}
	return errs
}

// OrderDraft is a custom order being assembled for a customer. It lives in
// the local state database until the staff member submits it.
type OrderDraft struct {
	Customer    User       `json:"customer"`
	Description string     `json:"description"`
	Items       []LineItem `json:"items"`
}

// ValidateDraftSubmit is the submit gate for a draft: a non-empty
// description and at least one line item. Items were already validated
// individually when appended.
func ValidateDraftSubmit(d OrderDraft) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, FieldError{"description", "Please enter a valid description"})
	}
	if len(d.Items) == 0 {
		errs = append(errs, FieldError{"items", "Please add at least one product"})
	}
	return errs
}

// ProductRef is the populated product reference the backend embeds in
// fetched order line items.
type ProductRef struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// OrderProduct is a line item as returned by the backend, with the catalog
// product populated.
type OrderProduct struct {
	Product     ProductRef      `json:"productId"`
	Quantity    int             `json:"quantity"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	DiamondType string          `json:"diamondType"`
	KaratOfGold int             `json:"karatOfGold,omitempty"`
}

// Receiver holds the delivery contact on an order.
type Receiver struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// CustomOrderDetails marks an order as custom and carries its free-text
// customization description.
type CustomOrderDetails struct {
	IsCustomOrder bool   `json:"isCustomOrder"`
	Description   string `json:"description,omitempty"`
}

// Order as returned by the backend. Customer is the populated userId
// reference.
type Order struct {
	ID                 string             `json:"_id"`
	Customer           User               `json:"userId"`
	Products           []OrderProduct     `json:"products"`
	CustomOrderDetails CustomOrderDetails `json:"customOrderDetails"`
	Status             string             `json:"status"`
	PaymentStatus      string             `json:"paymentStatus"`
	RazorpayPaymentID  string             `json:"razorpayPaymentId,omitempty"`
	DeliveredOn        *time.Time         `json:"deliveredOn,omitempty"`
	TotalAmount        decimal.Decimal    `json:"totalAmount"`
	ReceiverDetails    Receiver           `json:"receiverDetails"`
	CreatedAt          time.Time          `json:"createdAt"`
}
