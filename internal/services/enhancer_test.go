package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/pkg/places"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func enricherWith(summary *places.PlaceSummary) (EnhancementMergerInterface, *fakePlaces) {
	fp := &fakePlaces{find: map[string]*places.PlaceSummary{}}
	if summary != nil {
		fp.find[summary.Name] = summary
	}
	return NewEnhancementMerger(fp), fp
}

func TestEnhanceBlockAdoptsEnrichmentFields(t *testing.T) {
	m, _ := enricherWith(&places.PlaceSummary{
		PlaceID:          "place-123",
		Name:             "Eiffel Tower",
		Rating:           floatPtr(4.6),
		Address:          "Champ de Mars, Paris",
		Website:          strPtr("https://www.toureiffel.paris"),
		PhotoReference:   "photo-ref-1",
		EditorialSummary: "Wrought-iron lattice tower and the symbol of Paris.",
		Latitude:         48.8584,
		Longitude:        2.2945,
	})

	trip := NewTripContext("Paris")
	block := &PlanBlock{Kind: BlockLandmark, Name: "Eiffel Tower"}

	m.EnhanceBlock(context.Background(), trip, block)

	assert.Equal(t, "place-123", block.PlaceID)
	require.NotNil(t, block.Rating)
	assert.InDelta(t, 4.6, *block.Rating, 0.001)
	assert.Equal(t, "Champ de Mars, Paris", block.Address)
	require.NotNil(t, block.Website)
	assert.Equal(t, "https://www.toureiffel.paris", *block.Website)
	require.NotNil(t, block.PhotoURL)
	assert.Equal(t, "/photo-proxy/photo-ref-1?maxwidth=400&maxheight=400", *block.PhotoURL)
	require.NotNil(t, block.Latitude)
	assert.InDelta(t, 48.8584, *block.Latitude, 0.001)
	assert.Equal(t, "Wrought-iron lattice tower and the symbol of Paris.", block.Description)
}

func TestEnhanceBlockKeepsDescriptiveText(t *testing.T) {
	m, _ := enricherWith(&places.PlaceSummary{
		Name:             "Eiffel Tower",
		EditorialSummary: "Wrought-iron lattice tower and the symbol of Paris.",
	})

	trip := NewTripContext("Paris")
	original := "A stunning iron tower built for the 1889 World Fair."
	block := &PlanBlock{Kind: BlockLandmark, Name: "Eiffel Tower", Description: original}

	m.EnhanceBlock(context.Background(), trip, block)

	assert.Equal(t, original, block.Description, "descriptive caller text must survive enrichment")
}

func TestEnhanceBlockReplacesGenericPlaceholder(t *testing.T) {
	m, _ := enricherWith(&places.PlaceSummary{
		Name:             "Eiffel Tower",
		EditorialSummary: "Wrought-iron lattice tower and the symbol of Paris.",
	})

	trip := NewTripContext("Paris")
	block := &PlanBlock{Kind: BlockLandmark, Name: "Eiffel Tower", Description: "Landmark"}

	m.EnhanceBlock(context.Background(), trip, block)

	assert.Equal(t, "Wrought-iron lattice tower and the symbol of Paris.", block.Description)
}

func TestEnhanceBlockIgnoresOutOfRangeRating(t *testing.T) {
	m, _ := enricherWith(&places.PlaceSummary{
		Name:   "Eiffel Tower",
		Rating: floatPtr(0.4),
	})

	trip := NewTripContext("Paris")
	block := &PlanBlock{Kind: BlockLandmark, Name: "Eiffel Tower"}

	m.EnhanceBlock(context.Background(), trip, block)

	assert.Nil(t, block.Rating)
}

func TestEnhanceBlockSurvivesLookupFailure(t *testing.T) {
	fp := &fakePlaces{findErr: errors.New("timeout")}
	m := NewEnhancementMerger(fp)

	trip := NewTripContext("Paris")
	block := &PlanBlock{Kind: BlockLandmark, Name: "Eiffel Tower"}

	m.EnhanceBlock(context.Background(), trip, block)

	assert.GreaterOrEqual(t, len(block.Description), minLandmarkDescription,
		"landmark descriptions are backfilled even when enrichment fails")
	assert.Empty(t, block.PlaceID)
}

func TestEnhanceBlockNoMatchBackfillsLandmarkDescription(t *testing.T) {
	m, _ := enricherWith(nil)

	trip := NewTripContext("Paris")
	block := &PlanBlock{Kind: BlockLandmark, Name: "Eiffel Tower", Description: "short"}

	m.EnhanceBlock(context.Background(), trip, block)

	assert.GreaterOrEqual(t, len(block.Description), minLandmarkDescription)
	assert.NotEqual(t, "Landmark", block.Description)
}

func TestEnhanceBlockRestaurantDescriptionOptional(t *testing.T) {
	m, _ := enricherWith(&places.PlaceSummary{
		Name:             "Chez Pierre",
		EditorialSummary: "Too short",
	})

	trip := NewTripContext("Paris")
	block := &PlanBlock{Kind: BlockRestaurant, Name: "Chez Pierre"}

	m.EnhanceBlock(context.Background(), trip, block)

	assert.Empty(t, block.Description, "restaurants may carry no description")
}
