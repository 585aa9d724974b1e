// Package geo resolves a client IP to a coarse country name.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	gobreaker "github.com/sony/gobreaker/v2"

	"cardhub/breaker"
	"cardhub/metrics"
)

var (
	ErrDisabled = errors.New("geolocation disabled")
	ErrNoLookup = errors.New("address is not publicly routable")
)

type Locator interface {
	Country(ctx context.Context, ip string) (string, error)
}

// Disabled never resolves anything.
type Disabled struct{}

func (Disabled) Country(context.Context, string) (string, error) {
	return "", ErrDisabled
}

// Client queries an ipapi.co compatible service: GET {base}/{ip}/json/.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[string]
	cache   *lru.Cache[string, string]
}

func NewClient(baseURL string, timeout time.Duration, cacheSize int) (*Client, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("geo cache: %w", err)
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cb:      breaker.New[string]("geolocation"),
		cache:   cache,
	}, nil
}

type ipapiResponse struct {
	CountryName string `json:"country_name"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

func (c *Client) Country(ctx context.Context, ip string) (string, error) {
	if !routable(ip) {
		metrics.GeoLookups.WithLabelValues("skipped").Inc()
		return "", ErrNoLookup
	}

	if country, ok := c.cache.Get(ip); ok {
		metrics.GeoLookups.WithLabelValues("hit").Inc()
		return country, nil
	}

	country, err := c.cb.Execute(func() (string, error) {
		return c.lookup(ctx, ip)
	})
	if err != nil {
		if breaker.Rejected(err) {
			metrics.GeoLookups.WithLabelValues("open").Inc()
		} else {
			metrics.GeoLookups.WithLabelValues("error").Inc()
		}
		return "", err
	}

	metrics.GeoLookups.WithLabelValues("miss").Inc()
	c.cache.Add(ip, country)
	return country, nil
}

func (c *Client) lookup(ctx context.Context, ip string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+ip+"/json/", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geo lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geo lookup: unexpected status %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geo lookup: decode: %w", err)
	}
	if body.Error {
		return "", fmt.Errorf("geo lookup: %s", body.Reason)
	}
	if body.CountryName == "" {
		return "", errors.New("geo lookup: empty country")
	}
	return body.CountryName, nil
}

func routable(ip string) bool {
	addr := net.ParseIP(ip)
	if addr == nil {
		return false
	}
	return !(addr.IsPrivate() || addr.IsLoopback() || addr.IsUnspecified() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast())
}
