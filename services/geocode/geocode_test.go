package geocode

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

func TestSearch_ReturnsFirstMatchAndCaches(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "MG Road, Bengaluru", r.URL.Query().Get("q"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"12.97","lon":"77.60","display_name":"MG Road"},{"lat":"0","lon":"0","display_name":"other"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-agent", time.Second)
	got, err := c.Search(context.Background(), "MG Road, Bengaluru")
	require.NoError(t, err)
	assert.Equal(t, "MG Road", got.DisplayName)

	_, err = c.Search(context.Background(), "  mg road,   bengaluru ")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearch_EmptyResultIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Search(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_BadStatusAndBadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "broken" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[{"lat":"north","lon":"1","display_name":"x"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.Search(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = c.Search(context.Background(), "garbled")
	require.Error(t, err)
}

func TestSearch_BlankQuery(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", "", time.Second).Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_CacheExpiresAndStaysBounded(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`[{"lat":"12.97","lon":"77.60","display_name":"somewhere"}]`))
	}))
	defer srv.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClient(srv.URL, "", time.Second)
	c.now = func() time.Time { return now }
	c.maxEntries = 2
	ctx := context.Background()

	for _, q := range []string{"a", "b"} {
		_, err := c.Search(ctx, q)
		require.NoError(t, err)
		now = now.Add(time.Minute)
	}
	_, err := c.Search(ctx, "c")
	require.NoError(t, err)
	assert.Len(t, c.cache, 2)
	assert.NotContains(t, c.cache, "a")

	_, err = c.Search(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	now = now.Add(c.cacheTTL)
	_, err = c.Search(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}
