package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"voyago/pkg/places"
	"voyago/pkg/utils"
)

const (
	minLandmarkDescription   = 20
	minRestaurantDescription = 15
)

type EnhancementMergerInterface interface {
	EnhanceDay(ctx context.Context, trip *TripContext, day *PlanDay)
	EnhanceBlock(ctx context.Context, trip *TripContext, block *PlanBlock)
}

type EnhancementMerger struct {
	places places.PlacesClientInterface
}

func NewEnhancementMerger(placesClient places.PlacesClientInterface) EnhancementMergerInterface {
	return &EnhancementMerger{places: placesClient}
}

func (m *EnhancementMerger) EnhanceDay(ctx context.Context, trip *TripContext, day *PlanDay) {
	for _, block := range day.Landmarks {
		m.EnhanceBlock(ctx, trip, block)
	}
}

// EnhanceBlock merges place metadata into one block. A lookup failure or a
// missing match leaves the block as it was, the day never aborts over
// enrichment.
func (m *EnhancementMerger) EnhanceBlock(ctx context.Context, trip *TripContext, block *PlanBlock) {
	summary, err := m.places.FindPlace(ctx, block.Name, trip.Destination)
	if err != nil {
		log.Printf("enrichment lookup failed for %q: %v", block.Name, err)
		m.ensureDescription(trip, block)
		return
	}
	if summary == nil {
		log.Printf("%v: %q in %s", utils.ErrNoPlaceMatch, block.Name, trip.Destination)
		m.ensureDescription(trip, block)
		return
	}

	block.PlaceID = summary.PlaceID
	block.Address = summary.Address
	block.Website = summary.Website
	if summary.Rating != nil && *summary.Rating >= 1.0 && *summary.Rating <= 5.0 {
		rating := *summary.Rating
		block.Rating = &rating
	}
	if summary.PhotoReference != "" {
		photoURL := photoProxyURL(summary.PhotoReference)
		block.PhotoURL = &photoURL
	}
	if block.Latitude == nil && (summary.Latitude != 0 || summary.Longitude != 0) {
		lat, lng := summary.Latitude, summary.Longitude
		block.Latitude = &lat
		block.Longitude = &lng
	}

	m.mergeDescription(block, summary.EditorialSummary)
	m.ensureDescription(trip, block)
}

// mergeDescription keeps a caller-supplied description that is already
// descriptive enough; otherwise the editorial summary wins.
func (m *EnhancementMerger) mergeDescription(block *PlanBlock, editorial string) {
	editorial = strings.TrimSpace(editorial)

	switch block.Kind {
	case BlockLandmark:
		if descriptionIsSufficient(block.Description, minLandmarkDescription) {
			return
		}
		if len(editorial) >= minLandmarkDescription {
			block.Description = editorial
		}
	case BlockRestaurant:
		if descriptionIsSufficient(block.Description, minRestaurantDescription) {
			return
		}
		if len(editorial) >= minRestaurantDescription && !isGenericPlaceholder(editorial) {
			block.Description = editorial
		} else {
			block.Description = ""
		}
	}
}

// ensureDescription backfills landmark descriptions so every landmark block
// leaves the merger with real text. Restaurants may stay empty.
func (m *EnhancementMerger) ensureDescription(trip *TripContext, block *PlanBlock) {
	if block.Kind != BlockLandmark {
		return
	}
	if descriptionIsSufficient(block.Description, minLandmarkDescription) {
		return
	}
	block.Description = fmt.Sprintf("%s, a popular stop in %s that is well worth a visit.", block.Name, trip.Destination)
}

func descriptionIsSufficient(description string, minLen int) bool {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) < minLen {
		return false
	}
	return !isGenericPlaceholder(trimmed)
}

func isGenericPlaceholder(description string) bool {
	switch strings.ToLower(strings.TrimSpace(description)) {
	case "landmark", "restaurant", "attraction", "point of interest":
		return true
	}
	return false
}

func photoProxyURL(reference string) string {
	return fmt.Sprintf("/photo-proxy/%s?maxwidth=400&maxheight=400", reference)
}
