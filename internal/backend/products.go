package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products      []model.Product `json:"products"`
	TotalProducts int             `json:"totalProducts"`
}

// Products fetches one page of products. The products endpoints use
// page/size parameter names, unlike the user and order listings.
func (c *Client) Products(ctx context.Context, token string, page, size int) (*ProductPage, error) {
	q := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	var pp ProductPage
	if err := c.get(ctx, "/products/get-all", token, q, &pp); err != nil {
		return nil, err
	}
	return &pp, nil
}

// ProductBySKU fetches a single product. SKU ID is the canonical lookup key
// for the composer's product search.
func (c *Client) ProductBySKU(ctx context.Context, token, skuID string) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodGet, "/products/get/"+url.PathEscape(skuID), token, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductsByName searches products by (partial) name. Search results are
// not paged.
func (c *Client) ProductsByName(ctx context.Context, token, name string) ([]model.Product, error) {
	q := url.Values{"name": {name}}
	var body struct {
		Products []model.Product `json:"products"`
	}
	if err := c.get(ctx, "/products/get-by-name", token, q, &body); err != nil {
		return nil, err
	}
	return body.Products, nil
}

// CategoryInfo carries the product categories and each category's default
// size template for the product form.
type CategoryInfo struct {
	Categories []model.Category               `json:"categories"`
	Sizes      map[string][]model.ProductSize `json:"sizes"`
}

// Categories fetches product categories and size templates.
func (c *Client) Categories(ctx context.Context, token string) (*CategoryInfo, error) {
	var info CategoryInfo
	if err := c.do(ctx, http.MethodGet, "/products/get-all-categories", token, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateProduct adds a catalog entry.
func (c *Client) CreateProduct(ctx context.Context, token string, p model.Product) error {
	return c.do(ctx, http.MethodPost, "/products/new", token, p, nil)
}

// UpdateProduct overwrites a catalog entry, addressed by its record id
// (not the SKU).
func (c *Client) UpdateProduct(ctx context.Context, token, id string, p model.Product) error {
	return c.do(ctx, http.MethodPost, "/products/update/"+url.PathEscape(id), token, p, nil)
}
