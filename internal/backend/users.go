package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rectangle-technologies/jewellery-admin/internal/model"
)

// Login exchanges staff credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var body struct {
		Token string `json:"token"`
	}
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/user/login", "", req, &body); err != nil {
		return "", err
	}
	return body.Token, nil
}

// VerifyToken asks the backend whether the bearer token is still valid.
// Any failure means the session must be discarded.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/user/verify-token", token, nil, nil)
}

// UserPage is one page of the user listing.
type UserPage struct {
	Users      []model.User `json:"users"`
	TotalUsers int          `json:"totalUsers"`
}

// Users fetches one page of users.
func (c *Client) Users(ctx context.Context, token string, pageNo, pageSize int) (*UserPage, error) {
	q := url.Values{
		"pageNo":   {strconv.Itoa(pageNo)},
		"pageSize": {strconv.Itoa(pageSize)},
	}
	var page UserPage
	if err := c.get(ctx, "/user/get-all", token, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UserByID fetches a single user.
func (c *Client) UserByID(ctx context.Context, token, id string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/user/get/"+url.PathEscape(id), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByPhone looks up a customer by mobile number. The search endpoint is
// unpaged; a match returns exactly one user.
func (c *Client) UserByPhone(ctx context.Context, token, phone string) (*model.User, error) {
	var user model.User
	req := map[string]string{"phone": phone}
	if err := c.do(ctx, http.MethodPost, "/user/get/phone", token, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
