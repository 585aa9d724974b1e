package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Country(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/8.8.8.8/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"8.8.8.8","country_name":"United States"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/", time.Second, 8)
	require.NoError(t, err)

	country, err := c.Country(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "United States", country)

	country, err = c.Country(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "United States", country)
	assert.Equal(t, int32(1), calls.Load(), "second lookup served from cache")
}

func TestClient_ErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, time.Second, 8)
	require.NoError(t, err)

	_, err = c.Country(context.Background(), "1.1.1.1")
	assert.ErrorContains(t, err, "RateLimited")
}

func TestClient_SkipsPrivateAddresses(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1", time.Second, 8)
	require.NoError(t, err)

	for _, ip := range []string{"", "not-an-ip", "127.0.0.1", "10.1.2.3", "192.168.0.10", "::1"} {
		_, err := c.Country(context.Background(), ip)
		assert.ErrorIs(t, err, ErrNoLookup, ip)
	}
}

func TestClient_BreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, time.Second, 8)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := c.Country(context.Background(), "9.9.9.9")
		assert.Error(t, err)
	}
	assert.Equal(t, int32(5), calls.Load())
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Country(context.Background(), "8.8.8.8")
	assert.ErrorIs(t, err, ErrDisabled)
}
