package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// --------- In-memory cache keyed by (kind, query) ---------

type lookupKey struct {
	Kind  string // "find" | "nearby" | "details"
	Query string
}

type lookupCacheEntry struct {
	Places    []PlaceSummary
	ExpiresAt time.Time
}

type PlaceLookupCache interface {
	Get(k lookupKey) ([]PlaceSummary, bool)
	Set(k lookupKey, v []PlaceSummary, ttl time.Duration)
}

type inMemoryLookupCache struct {
	mu    sync.RWMutex
	store map[lookupKey]lookupCacheEntry
}

func NewInMemoryLookupCache() PlaceLookupCache {
	return &inMemoryLookupCache{store: make(map[lookupKey]lookupCacheEntry)}
}

func (c *inMemoryLookupCache) Get(k lookupKey) ([]PlaceSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || time.Now().After(it.ExpiresAt) {
		return nil, false
	}
	return it.Places, true
}

func (c *inMemoryLookupCache) Set(k lookupKey, v []PlaceSummary, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = lookupCacheEntry{Places: v, ExpiresAt: time.Now().Add(ttl)}
}

// -------------- Google Places client ---------------

type PlacesClientInterface interface {
	FindPlace(ctx context.Context, name, city string) (*PlaceSummary, error)
	NearbyRestaurants(ctx context.Context, lat, lng float64, radiusMeters int) ([]PlaceSummary, error)
}

type GooglePlacesClient struct {
	HTTP       *http.Client
	APIKey     string
	Cache      PlaceLookupCache
	DefaultTTL time.Duration
	MaxRetries int
	BaseURL    string // overridable in tests
}

func NewGooglePlacesClient(cache PlaceLookupCache) *GooglePlacesClient {
	key := os.Getenv("GOOGLE_PLACES_API_KEY")
	if key == "" {
		panic("GOOGLE_PLACES_API_KEY is empty")
	}
	return &GooglePlacesClient{
		HTTP:       &http.Client{Timeout: 10 * time.Second},
		APIKey:     key,
		Cache:      cache,
		DefaultTTL: 24 * time.Hour,
		MaxRetries: 2,
		BaseURL:    "https://maps.googleapis.com",
	}
}

// FindPlace resolves a free-text attraction name to a single enriched place.
// Two upstream calls: text search for the base record, details for website
// and editorial summary. A nil result with nil error means no match.
func (c *GooglePlacesClient) FindPlace(ctx context.Context, name, city string) (*PlaceSummary, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return nil, fmt.Errorf("places: empty name")
	}
	if city != "" {
		query = query + " " + city
	}

	k := lookupKey{Kind: "find", Query: strings.ToLower(query)}
	if hit, ok := c.Cache.Get(k); ok {
		if len(hit) == 0 {
			return nil, nil
		}
		found := hit[0]
		return &found, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("key", c.APIKey)

	var sr searchResponse
	if err := c.getJSON(ctx, "/maps/api/place/textsearch/json", q, &sr); err != nil {
		return nil, err
	}
	if sr.Status == "ZERO_RESULTS" || len(sr.Results) == 0 {
		c.Cache.Set(k, []PlaceSummary{}, c.DefaultTTL)
		return nil, nil
	}
	if sr.Status != "OK" {
		return nil, fmt.Errorf("places: text search status %s", sr.Status)
	}

	summary := toSummary(sr.Results[0])
	c.fillDetails(ctx, &summary)

	c.Cache.Set(k, []PlaceSummary{summary}, c.DefaultTTL)
	return &summary, nil
}

// NearbyRestaurants lists restaurants around a coordinate, best rated first.
func (c *GooglePlacesClient) NearbyRestaurants(ctx context.Context, lat, lng float64, radiusMeters int) ([]PlaceSummary, error) {
	if radiusMeters <= 0 {
		radiusMeters = 1500
	}

	k := lookupKey{Kind: "nearby", Query: fmt.Sprintf("%.4f,%.4f,%d", lat, lng, radiusMeters)}
	if hit, ok := c.Cache.Get(k); ok {
		return hit, nil
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("type", "restaurant")
	q.Set("key", c.APIKey)

	var sr searchResponse
	if err := c.getJSON(ctx, "/maps/api/place/nearbysearch/json", q, &sr); err != nil {
		return nil, err
	}
	if sr.Status != "OK" && sr.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places: nearby search status %s", sr.Status)
	}

	out := make([]PlaceSummary, 0, len(sr.Results))
	for _, r := range sr.Results {
		out = append(out, toSummary(r))
	}
	sortByRating(out)

	c.Cache.Set(k, out, c.DefaultTTL)
	return out, nil
}

// fillDetails adds website and editorial summary. Detail failures are not
// fatal, the base record is enough to enrich a block.
func (c *GooglePlacesClient) fillDetails(ctx context.Context, s *PlaceSummary) {
	if s.PlaceID == "" {
		return
	}

	q := url.Values{}
	q.Set("place_id", s.PlaceID)
	q.Set("fields", "website,editorial_summary")
	q.Set("key", c.APIKey)

	var dr detailsResponse
	if err := c.getJSON(ctx, "/maps/api/place/details/json", q, &dr); err != nil {
		return
	}
	if dr.Status != "OK" {
		return
	}
	s.Website = dr.Result.Website
	if dr.Result.EditorialSummary != nil {
		s.EditorialSummary = dr.Result.EditorialSummary.Overview
	}
}

func (c *GooglePlacesClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.BaseURL + path + "?" + q.Encode()

	var lastErr error
	backoff := 300 * time.Millisecond

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("places: upstream status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(body))
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("places: decode response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("places: request failed after %d attempts: %w", c.MaxRetries+1, lastErr)
}

func toSummary(r searchResult) PlaceSummary {
	address := r.FormattedAddress
	if address == "" && r.Vicinity != nil {
		address = *r.Vicinity
	}

	s := PlaceSummary{
		PlaceID:    r.PlaceID,
		Name:       r.Name,
		Rating:     r.Rating,
		Address:    address,
		Types:      r.Types,
		Latitude:   r.Geometry.Location.Lat,
		Longitude:  r.Geometry.Location.Lng,
		PriceLevel: r.PriceLevel,
	}
	if len(r.Photos) > 0 {
		s.PhotoReference = r.Photos[0].PhotoReference
	}
	return s
}

func sortByRating(places []PlaceSummary) {
	sort.SliceStable(places, func(i, j int) bool {
		return ratingOf(places[i]) > ratingOf(places[j])
	})
}

func ratingOf(p PlaceSummary) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}
