package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"firstresponse/models"
	"firstresponse/utils"

	"go.uber.org/zap"
)

// ErrNotFound means the lookup returned no match.
var ErrNotFound = errors.New("geocode: no match")

const (
	defaultCacheTTL     = 24 * time.Hour
	defaultCacheEntries = 1024
)

type cacheEntry struct {
	result models.GeocodeResult
	stored time.Time
}

// Client looks up place names against a Nominatim-compatible search API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client

	mu         sync.RWMutex
	cache      map[string]cacheEntry
	cacheTTL   time.Duration
	maxEntries int
	now        func() time.Time
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		http:       &http.Client{Timeout: timeout},
		cache:      make(map[string]cacheEntry),
		cacheTTL:   defaultCacheTTL,
		maxEntries: defaultCacheEntries,
		now:        time.Now,
	}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Search returns the first match for query, or ErrNotFound.
func (c *Client) Search(ctx context.Context, query string) (*models.GeocodeResult, error) {
	key := cacheKey(query)
	if key == "" {
		return nil, ErrNotFound
	}

	if hit, ok := c.cached(key); ok {
		return &hit, nil
	}

	logger := utils.GetLogger()

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("Geocoding request failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Geocoder returned non-OK status", zap.String("query", query), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var matches []models.GeocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}

	first := matches[0]
	if _, _, err := first.Coordinates(); err != nil {
		return nil, err
	}

	c.store(key, first)
	return &first, nil
}

func (c *Client) cached(key string) (models.GeocodeResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || c.now().Sub(entry.stored) >= c.cacheTTL {
		return models.GeocodeResult{}, false
	}
	return entry.result, true
}

// store adds a result, dropping expired entries and then the oldest one when
// the cache is full.
func (c *Client) store(key string, result models.GeocodeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.cache[key]; !exists && len(c.cache) >= c.maxEntries {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.cache {
			if now.Sub(e.stored) >= c.cacheTTL {
				delete(c.cache, k)
				continue
			}
			if oldestKey == "" || e.stored.Before(oldest) {
				oldestKey, oldest = k, e.stored
			}
		}
		if len(c.cache) >= c.maxEntries {
			delete(c.cache, oldestKey)
		}
	}
	c.cache[key] = cacheEntry{result: result, stored: now}
}
