// Package imagehost uploads images to an imgbb compatible host and returns
// their public URL.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"cardhub/breaker"
)

var ErrNotConfigured = errors.New("image host api key not configured")

type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type Client struct {
	url    string
	apiKey string
	http   *http.Client
	cb     *gobreaker.CircuitBreaker[string]
}

func NewClient(url, apiKey string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		http:   &http.Client{Timeout: timeout},
		cb:     breaker.New[string]("imagehost"),
	}
}

type uploadResponse struct {
	Data struct {
		ID         string `json:"id"`
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload posts the image as multipart form data (fields key and image) and
// returns data.display_url.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("key", c.apiKey); err != nil {
		return "", err
	}
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	return c.cb.Execute(func() (string, error) {
		return c.post(ctx, form.FormDataContentType(), body.Bytes())
	})
}

func (c *Client) post(ctx context.Context, contentType string, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload image: unexpected status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload image: decode: %w", err)
	}
	if !out.Success || out.Data.DisplayURL == "" {
		return "", errors.New("upload image: host reported failure")
	}
	return out.Data.DisplayURL, nil
}
