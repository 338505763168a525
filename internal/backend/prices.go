package backend

import (
	"context"
	"net/http"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

// MetalPrices fetches the singleton pricing record.
func (c *Client) MetalPrices(ctx context.Context, token string) (*model.MetalPrices, error) {
	var prices model.MetalPrices
	if err := c.do(ctx, http.MethodGet, "/price/get", token, nil, &prices); err != nil {
		return nil, err
	}
	return &prices, nil
}

// UpdateMetalPrices overwrites the pricing record wholesale.
func (c *Client) UpdateMetalPrices(ctx context.Context, token string, prices model.MetalPrices) error {
	return c.do(ctx, http.MethodPost, "/price/update", token, prices, nil)
}
