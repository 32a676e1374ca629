package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"voyago/internal/models/db_models"
	"voyago/pkg/llmclient"
	"voyago/pkg/places"
)

// testConfig keeps retries at zero so failure paths do not sleep.
func testConfig() SchedulerConfig {
	cfg := DefaultSchedulerConfig()
	cfg.UpstreamRetries = 0
	return cfg
}

type fakeGenerator struct {
	mu          sync.Mutex
	suggestions []llmclient.Suggestion
	err         error
	embedErr    error
	calls       int
	lastQuery   llmclient.SuggestionQuery
}

func (f *fakeGenerator) SuggestLandmarks(ctx context.Context, query llmclient.SuggestionQuery) ([]llmclient.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}

	excluded := make(map[string]bool, len(query.Exclude))
	for _, name := range query.Exclude {
		excluded[name] = true
	}

	var out []llmclient.Suggestion
	for _, s := range f.suggestions {
		if excluded[s.Name] {
			continue
		}
		out = append(out, s)
		if len(out) >= query.Count {
			break
		}
	}
	return out, nil
}

func (f *fakeGenerator) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if f.embedErr != nil {
		return pgvector.Vector{}, f.embedErr
	}
	return pgvector.NewVector([]float32{1, 0, 0}), nil
}

func (f *fakeGenerator) Close() error { return nil }

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeGenerator) seenQuery() llmclient.SuggestionQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

type fakePlaces struct {
	mu        sync.Mutex
	find      map[string]*places.PlaceSummary
	nearby    []places.PlaceSummary
	findErr   error
	nearbyErr error
}

func (f *fakePlaces) FindPlace(ctx context.Context, name, city string) (*places.PlaceSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}
	if summary, ok := f.find[name]; ok {
		cp := *summary
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePlaces) NearbyRestaurants(ctx context.Context, lat, lng float64, radiusMeters int) ([]places.PlaceSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.nearbyErr != nil {
		return nil, f.nearbyErr
	}
	out := make([]places.PlaceSummary, len(f.nearby))
	copy(out, f.nearby)
	return out, nil
}

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[string]*db_models.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[string]*db_models.Trip)}
}

func (f *fakeTripRepo) Insert(ctx context.Context, trip *db_models.Trip) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	f.trips[trip.ID.String()] = trip
	return nil
}

func (f *fakeTripRepo) GetByID(ctx context.Context, tripID string) (*db_models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trips[tripID], nil
}

func (f *fakeTripRepo) ListByUserID(ctx context.Context, userID string, page, pageSize int) ([]db_models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []db_models.Trip
	for _, trip := range f.trips {
		if trip.UserID.String() == userID {
			out = append(out, *trip)
		}
	}
	return out, nil
}

type fakeEmbeddingRepo struct {
	mu          sync.Mutex
	stored      []db_models.LandmarkEmbedding
	upsertErrOn string
	upsertErr   error
}

func (f *fakeEmbeddingRepo) ListByVector(ctx context.Context, vector pgvector.Vector, city string, limit int) ([]db_models.LandmarkEmbedding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []db_models.LandmarkEmbedding
	for _, e := range f.stored {
		if strings.EqualFold(e.City, city) {
			out = append(out, e)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeEmbeddingRepo) Upsert(ctx context.Context, embedding *db_models.LandmarkEmbedding) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.upsertErrOn != "" && embedding.LandmarkID == f.upsertErrOn {
		return f.upsertErr
	}
	f.stored = append(f.stored, *embedding)
	return nil
}
