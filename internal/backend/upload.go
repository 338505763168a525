package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Upload posts a single file to the backend's upload endpoint and returns
// the hosted URL to store on the owning entity.
func (c *Client) Upload(ctx context.Context, token, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copying upload data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finishing upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/utils/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if env.Result != resultSuccess {
		return "", &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(env.Body, &body); err != nil {
		return "", fmt.Errorf("decoding upload body: %w", err)
	}
	return body.URL, nil
}

// DeleteImage removes a previously uploaded image from storage.
func (c *Client) DeleteImage(ctx context.Context, token, imageURL string) error {
	req := map[string]string{"imageUrl": imageURL}
	return c.do(ctx, http.MethodDelete, "/utils/delete-image", token, req, nil)
}
