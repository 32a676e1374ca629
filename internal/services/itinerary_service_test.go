package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/llmclient"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
)

func newTestItineraryService(gen *fakeGenerator) (ItineraryServiceInterface, *fakeTripRepo, memcache.ItineraryCacheStore) {
	cfg := testConfig()
	embeddings := &fakeEmbeddingRepo{}
	placesClient := &fakePlaces{}
	expander := NewLandmarkExpander(gen, embeddings, cfg)
	enhancer := NewEnhancementMerger(placesClient)
	mealPlanner := NewMealSlotPlanner(placesClient, cfg)
	timeline := NewTimelineAssembler(expander, mealPlanner, enhancer, cfg)
	trips := newFakeTripRepo()
	cache := memcache.NewItineraryCache()

	svc := NewItineraryService(expander, enhancer, mealPlanner, timeline, gen, trips, embeddings, cache, cfg)
	return svc, trips, cache
}

func suggestionPool() []llmclient.Suggestion {
	return []llmclient.Suggestion{
		{Name: "Lake Eola Park", Description: "Downtown lake with swan boats and a walking path.", Duration: "1h"},
		{Name: "Harry P Leu Gardens", Description: "Botanical oasis north of downtown Orlando.", Duration: "1.5h"},
		{Name: "Orlando Museum of Art", Description: "Regional museum with rotating exhibitions.", Duration: "2h"},
		{Name: "Mennello Museum", Description: "Small museum of American folk art.", Duration: "1h"},
		{Name: "Kraft Azalea Garden", Description: "Lakeside garden with cypress trees.", Duration: "1h"},
		{Name: "Lake Ivanhoe Loop", Description: "Scenic lakeside walk close to downtown.", Duration: "1h"},
		{Name: "Dickson Azalea Park", Description: "Quiet ravine park with boardwalks.", Duration: "1h"},
		{Name: "Winter Park Scenic Boat Tour", Description: "Narrated boat tour through chain of lakes.", Duration: "1h"},
		{Name: "Cornell Fine Arts Museum", Description: "Collection on the Rollins College campus.", Duration: "1.5h"},
	}
}

func threeDayRequest() request_models.ItineraryRequest {
	return request_models.ItineraryRequest{
		Destination: "Orlando",
		Days: []request_models.DaySeed{
			{Day: 1, Attractions: []request_models.SeedAttraction{seed("Orlando Science Center", "landmark")}},
			{Day: 2, Attractions: []request_models.SeedAttraction{seed("Wekiwa Springs", "landmark")}},
			{Day: 3, Attractions: []request_models.SeedAttraction{seed("Lake Baldwin Trail", "landmark")}},
		},
		TargetPerDay: 3,
	}
}

func TestGenerateItineraryUniquenessAndMealCoverage(t *testing.T) {
	svc, _, _ := newTestItineraryService(&fakeGenerator{suggestions: suggestionPool()})

	resp, err := svc.GenerateItinerary(context.Background(), uuid.New().String(), threeDayRequest())
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	seenLandmarks := make(map[string]bool)
	for _, day := range resp.Days {
		landmarks, meals := 0, 0
		for _, block := range day.Blocks {
			switch block.Type {
			case "landmark":
				landmarks++
				key := strings.ToLower(block.Name)
				assert.False(t, seenLandmarks[key], "landmark %q appears on more than one day", block.Name)
				seenLandmarks[key] = true
				assert.GreaterOrEqual(t, len(block.Description), 20)
				assert.NotEqual(t, "Landmark", block.Description)
			case "restaurant":
				meals++
				assert.NotEmpty(t, block.Mealtime)
			}
		}
		assert.GreaterOrEqual(t, landmarks, 1)
		assert.GreaterOrEqual(t, meals, 2, "day %d lacks meal coverage", day.Day)
	}
}

func TestGenerateItineraryThemeParkDay(t *testing.T) {
	svc, _, _ := newTestItineraryService(&fakeGenerator{suggestions: suggestionPool()})

	req := request_models.ItineraryRequest{
		Destination: "Orlando",
		Days: []request_models.DaySeed{
			{Day: 1, Attractions: []request_models.SeedAttraction{seed("Universal Studios Florida", "landmark")}},
		},
		TargetPerDay: 3,
		WithKids:     true,
		KidsAges:     []int{7, 10},
	}

	resp, err := svc.GenerateItinerary(context.Background(), uuid.New().String(), req)
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	day := resp.Days[0]
	assert.True(t, day.ThemePark)

	landmarks := 0
	var lunch *response_models.Block
	for i, block := range day.Blocks {
		if block.Type == "landmark" {
			landmarks++
			assert.Equal(t, "8h", block.Duration)
		}
		if block.Mealtime == MealLunch {
			lunch = &day.Blocks[i]
		}
	}
	assert.Equal(t, 1, landmarks, "theme park day has exactly one landmark")
	require.NotNil(t, lunch)
	assert.True(t, strings.HasPrefix(lunch.StartTime, "12:") || strings.HasPrefix(lunch.StartTime, "1:"))
}

func TestGenerateItineraryCachesByRequest(t *testing.T) {
	gen := &fakeGenerator{suggestions: suggestionPool()}
	svc, _, _ := newTestItineraryService(gen)

	userID := uuid.New().String()
	first, err := svc.GenerateItinerary(context.Background(), userID, threeDayRequest())
	require.NoError(t, err)

	callsAfterFirst := gen.callCount()

	second, err := svc.GenerateItinerary(context.Background(), userID, threeDayRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, gen.callCount(), "cache hit must skip the pipeline")
}

func TestGenerateItineraryCacheScopedToUser(t *testing.T) {
	gen := &fakeGenerator{suggestions: suggestionPool()}
	svc, trips, _ := newTestItineraryService(gen)

	alice := uuid.New().String()
	bob := uuid.New().String()

	aliceResp, err := svc.GenerateItinerary(context.Background(), alice, threeDayRequest())
	require.NoError(t, err)
	callsAfterAlice := gen.callCount()

	bobResp, err := svc.GenerateItinerary(context.Background(), bob, threeDayRequest())
	require.NoError(t, err)

	assert.Greater(t, gen.callCount(), callsAfterAlice, "another caller must not reuse a cached trip")
	assert.NotEqual(t, aliceResp.ID, bobResp.ID)

	for caller, resp := range map[string]*response_models.ItineraryResponse{alice: aliceResp, bob: bobResp} {
		stored, err := trips.GetByID(context.Background(), resp.ID)
		require.NoError(t, err)
		require.NotNil(t, stored, "each caller gets a trip persisted under their own ID")
		assert.Equal(t, caller, stored.UserID.String())
	}
}

func TestGenerateItineraryRejectsBadUserID(t *testing.T) {
	svc, _, _ := newTestItineraryService(&fakeGenerator{suggestions: suggestionPool()})

	_, err := svc.GenerateItinerary(context.Background(), "not-a-uuid", threeDayRequest())
	assert.Error(t, err)
}

func TestGenerateItineraryPersistsTrip(t *testing.T) {
	svc, _, _ := newTestItineraryService(&fakeGenerator{suggestions: suggestionPool()})

	owner := uuid.New().String()
	resp, err := svc.GenerateItinerary(context.Background(), owner, threeDayRequest())
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	reloaded, err := svc.GetItinerary(context.Background(), owner, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, resp.Destination, reloaded.Destination)
	require.Len(t, reloaded.Days, len(resp.Days))
	for i := range resp.Days {
		assert.Equal(t, len(resp.Days[i].Blocks), len(reloaded.Days[i].Blocks))
	}

	_, err = svc.GetItinerary(context.Background(), uuid.New().String(), resp.ID)
	assert.ErrorIs(t, err, utils.ErrTripNotFound, "another caller cannot read the trip")
}

func TestListItinerariesScopedToUser(t *testing.T) {
	svc, _, _ := newTestItineraryService(&fakeGenerator{suggestions: suggestionPool()})

	owner := uuid.New().String()
	_, err := svc.GenerateItinerary(context.Background(), owner, threeDayRequest())
	require.NoError(t, err)

	mine, err := svc.ListItineraries(context.Background(), owner, 1, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Orlando", mine[0].Destination)
	assert.Equal(t, 3, mine[0].DayCount)

	theirs, err := svc.ListItineraries(context.Background(), uuid.New().String(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = svc.ListItineraries(context.Background(), "not-a-uuid", 1, 10)
	assert.Error(t, err)
}

func TestGetItineraryNotFound(t *testing.T) {
	svc, _, _ := newTestItineraryService(&fakeGenerator{})

	_, err := svc.GetItinerary(context.Background(), uuid.New().String(), uuid.New().String())
	assert.Error(t, err)
}

func TestIngestEmbeddingsContinuesPastFailures(t *testing.T) {
	gen := &fakeGenerator{}
	embeddings := &fakeEmbeddingRepo{upsertErrOn: "lake eola park", upsertErr: errors.New("store down")}
	svc := NewItineraryService(nil, nil, nil, nil, gen, newFakeTripRepo(), embeddings, memcache.NewItineraryCache(), testConfig()).(*ItineraryService)

	trip := NewTripContext("Orlando")
	days := []*PlanDay{
		{Number: 1, Landmarks: []*PlanBlock{
			{Kind: BlockLandmark, Name: "Lake Eola Park", Description: "Downtown lake."},
			{Kind: BlockLandmark, Name: "Harry P Leu Gardens", Description: "Botanical oasis."},
		}},
		{Number: 2, Landmarks: []*PlanBlock{
			{Kind: BlockLandmark, Name: "Mennello Museum", Description: "Folk art museum."},
		}},
	}

	svc.ingestEmbeddings(context.Background(), trip, days)

	stored := make([]string, 0, len(embeddings.stored))
	for _, e := range embeddings.stored {
		stored = append(stored, e.Name)
	}
	assert.ElementsMatch(t, []string{"Harry P Leu Gardens", "Mennello Museum"}, stored,
		"one failed upsert must not abort the rest of the ingest")
}

func TestRestaurantBlockAlwaysSerializesWebsite(t *testing.T) {
	block := response_models.Block{Type: "restaurant", Name: "Chez Pierre", Mealtime: MealLunch}

	payload, err := json.Marshal(block)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"website":null`)
}
