// pkg/memcache/itineraries.go
package memcache

import (
	"sync"
	"time"
)

// ItineraryCacheStore holds finished itineraries keyed by a request
// fingerprint so identical requests within the TTL skip the whole
// generation pipeline.
type ItineraryCacheStore interface {
	Set(key string, payload interface{}, ttl time.Duration)

	// Get returns the cached payload for key if not expired.
	Get(key string) (interface{}, bool)

	// Evict removes a key, used when a trip is deleted.
	Evict(key string)
}

type entry struct {
	payload   interface{}
	expiresAt time.Time
}

type ItineraryCache struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewItineraryCache() *ItineraryCache {
	return &ItineraryCache{
		data: make(map[string]entry),
	}
}

func (s *ItineraryCache) Set(key string, payload interface{}, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}

	// Opportunistic cleanup so the map does not grow without bound.
	if len(s.data) > 1000 {
		for k, e := range s.data {
			if time.Now().After(e.expiresAt) {
				delete(s.data, k)
			}
		}
	}
}

func (s *ItineraryCache) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.payload, true
}

func (s *ItineraryCache) Evict(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
