package services

import (
	"strings"
	"sync"
)

var nameStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "at": true,
	"in": true, "on": true, "for": true, "with": true, "and": true, "&": true,
}

// TripRegistry is the trip-wide claim set for attraction names. One instance
// per itinerary request; all mutations go through the mutex so concurrent
// day workers cannot claim the same place twice.
type TripRegistry struct {
	mu    sync.Mutex
	names map[string]string // normalized -> original
	order []string
}

func NewTripRegistry() *TripRegistry {
	return &TripRegistry{names: make(map[string]string)}
}

// Reserve atomically claims a name. Returns false when an equivalent name is
// already claimed anywhere in the trip.
func (r *TripRegistry) Reserve(name string) bool {
	key := normalizeName(name)
	if key == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.names[key]; taken {
		return false
	}
	r.names[key] = name
	r.order = append(r.order, key)
	return true
}

// Release drops a claim. Used only when a day-plan attempt rolls back.
func (r *TripRegistry) Release(name string) {
	key := normalizeName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.names[key]; !ok {
		return
	}
	delete(r.names, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *TripRegistry) Contains(name string) bool {
	key := normalizeName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.names[key]
	return ok
}

// Names returns the claimed original names in claim order, for seeding
// avoidance lists in generative prompts.
func (r *TripRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.names[key])
	}
	return out
}

// normalizeName collapses a display name to its comparable form: lowercase,
// punctuation stripped, stop words removed. "The Museum of Modern Art" and
// "museum modern art" claim the same slot.
func normalizeName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	var kept []string
	for _, word := range strings.Fields(b.String()) {
		if nameStopWords[word] {
			continue
		}
		kept = append(kept, word)
	}
	if len(kept) == 0 {
		return strings.Join(strings.Fields(b.String()), " ")
	}
	return strings.Join(kept, " ")
}
