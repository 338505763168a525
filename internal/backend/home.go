package backend

import (
	"context"
	"net/http"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

// DashboardData fetches the home dashboard stats and recent orders.
func (c *Client) DashboardData(ctx context.Context, token string) (*model.DashboardData, error) {
	var data model.DashboardData
	if err := c.do(ctx, http.MethodGet, "/dashboard/get-data", token, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// HomeContent fetches the home-page elements for editing. An empty list is
// a valid state, not an error.
func (c *Client) HomeContent(ctx context.Context, token string) ([]model.HomeContentEntry, error) {
	var body struct {
		HomeContent []model.HomeContentEntry `json:"homeContent"`
	}
	if err := c.do(ctx, http.MethodGet, "/home-content/get/admin", token, nil, &body); err != nil {
		return nil, err
	}
	return body.HomeContent, nil
}

// HomeContentCategories fetches the available home-page slots.
func (c *Client) HomeContentCategories(ctx context.Context, token string) ([]model.HomeContentCategory, error) {
	var body struct {
		Categories []model.HomeContentCategory `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/home-content/category", token, nil, &body); err != nil {
		return nil, err
	}
	return body.Categories, nil
}

// SaveHomeContent sets one home-page element.
func (c *Client) SaveHomeContent(ctx context.Context, token string, entry model.HomeContentEntry) error {
	return c.do(ctx, http.MethodPost, "/home-content/add", token, entry, nil)
}
