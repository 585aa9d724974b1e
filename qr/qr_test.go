package qr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardhub/cache"
)

func TestImageURL(t *testing.T) {
	got := ImageURL("https://api.qrserver.com/v1/create-qr-code/", "https://cards.example/c/jane-doe")
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=https%3A%2F%2Fcards.example%2Fc%2Fjane-doe",
		got)

	got = ImageURL("https://qr.example/gen?format=png", "x")
	assert.Equal(t, "https://qr.example/gen?format=png&size=300x300&data=x", got)
}

func TestFetch_CachesResult(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	f := NewFetcher("qr", cache.New(t.TempDir()), time.Hour, time.Second)

	data, err := f.Fetch(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	data, err = f.Fetch(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.EqualValues(t, 1, hits.Load())
}

func TestFetch_NoCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("img"))
	}))
	defer srv.Close()

	f := NewFetcher("avatar", nil, time.Hour, time.Second)
	for i := 0; i < 2; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, hits.Load())
}

func TestFetch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	dir := cache.New(t.TempDir())
	f := NewFetcher("qr", dir, time.Hour, time.Second)

	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "502")

	_, ok := dir.Read("qr", srv.URL, 0)
	assert.False(t, ok)
}

func TestFetch_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	f := NewFetcher("qr", nil, time.Hour, time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
