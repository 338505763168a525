package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

// OrderPage is one page of the order listing, newest first.
type OrderPage struct {
	Orders      []model.Order `json:"orders"`
	TotalOrders int           `json:"totalOrders"`
}

// Orders fetches one page of orders.
func (c *Client) Orders(ctx context.Context, token string, pageNo, pageSize int) (*OrderPage, error) {
	q := url.Values{
		"pageNo":   {strconv.Itoa(pageNo)},
		"pageSize": {strconv.Itoa(pageSize)},
	}
	var page OrderPage
	if err := c.get(ctx, "/order/get-all", token, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// OrderByID fetches a single order with its products populated.
func (c *Client) OrderByID(ctx context.Context, token, id string) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, "/order/get/"+url.PathEscape(id), token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrdersByUser fetches all orders of one customer (unpaged).
func (c *Client) OrdersByUser(ctx context.Context, token, userID string) ([]model.Order, error) {
	var body struct {
		Orders []model.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/order/get-user/"+url.PathEscape(userID), token, nil, &body); err != nil {
		return nil, err
	}
	return body.Orders, nil
}

// CreateCustomOrderRequest is the one-shot order creation payload built
// from a finished draft.
type CreateCustomOrderRequest struct {
	UserID             string                   `json:"userId"`
	CustomOrderDetails model.CustomOrderDetails `json:"customOrderDetails"`
	Products           []model.LineItem         `json:"products"`
}

// CreateCustomOrder submits a whole draft as one order.
func (c *Client) CreateCustomOrder(ctx context.Context, token string, req CreateCustomOrderRequest) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/order/create-custom", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to a new status. deliveredOn must be a
// fixed-offset ISO-8601 string when status is Delivered and empty otherwise.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, id, status, deliveredOn string) error {
	req := struct {
		Status      string  `json:"status"`
		DeliveredOn *string `json:"deliveredOn"`
	}{Status: status}
	if deliveredOn != "" {
		req.DeliveredOn = &deliveredOn
	}
	return c.do(ctx, http.MethodPost, "/order/update-status/"+url.PathEscape(id), token, req, nil)
}
