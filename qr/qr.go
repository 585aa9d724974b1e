// Package qr builds QR image URLs for the external generator and downloads
// remote images through the disk cache.
package qr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"cardhub/breaker"
	"cardhub/cache"
	"cardhub/logging"
	"cardhub/metrics"
)

const (
	Size = "300x300"

	maxImageBytes = 5 << 20
)

// ImageURL returns the generator URL that encodes data as a QR image.
func ImageURL(base, data string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "size=" + Size + "&data=" + url.QueryEscape(data)
}

// Fetcher downloads images by URL and keeps them in one cache namespace.
type Fetcher struct {
	namespace string
	cache     *cache.Dir
	maxAge    time.Duration
	http      *http.Client
	cb        *gobreaker.CircuitBreaker[[]byte]
}

// NewFetcher returns a Fetcher. A nil dir disables caching.
func NewFetcher(namespace string, dir *cache.Dir, maxAge, timeout time.Duration) *Fetcher {
	return &Fetcher{
		namespace: namespace,
		cache:     dir,
		maxAge:    maxAge,
		http:      &http.Client{Timeout: timeout},
		cb:        breaker.New[[]byte]("image-" + namespace),
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if f.cache != nil {
		if data, ok := f.cache.Read(f.namespace, rawURL, f.maxAge); ok {
			metrics.ImageFetches.WithLabelValues(f.namespace, "hit").Inc()
			return data, nil
		}
	}

	data, err := f.cb.Execute(func() ([]byte, error) {
		return f.download(ctx, rawURL)
	})
	if err != nil {
		metrics.ImageFetches.WithLabelValues(f.namespace, "error").Inc()
		return nil, err
	}
	metrics.ImageFetches.WithLabelValues(f.namespace, "miss").Inc()

	if f.cache != nil {
		if err := f.cache.Write(f.namespace, rawURL, data); err != nil {
			logging.Warn().Err(err).Str("namespace", f.namespace).Msg("failed to cache image")
		}
	}
	return data, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch image: read: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("fetch image: larger than %d bytes", maxImageBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch image: empty body")
	}
	return data, nil
}
