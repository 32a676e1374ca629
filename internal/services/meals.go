package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"voyago/internal/models/request_models"
	"voyago/pkg/places"
	"voyago/pkg/utils"
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"

	breakfastMinutes = 45
	lunchMinutes     = 60
	dinnerMinutes    = 90
)

type MealSlotPlannerInterface interface {
	PlanMeals(ctx context.Context, trip *TripContext, day *PlanDay, seedRestaurants []request_models.SeedAttraction)
	AnchorMeals(day *PlanDay)
}

type MealSlotPlanner struct {
	places places.PlacesClientInterface
	cfg    SchedulerConfig
}

func NewMealSlotPlanner(placesClient places.PlacesClientInterface, cfg SchedulerConfig) MealSlotPlannerInterface {
	return &MealSlotPlanner{
		places: placesClient,
		cfg:    cfg,
	}
}

// PlanMeals attaches breakfast, lunch and dinner blocks to a day and anchors
// their start times against the placed landmarks. Restaurant picks go
// through the trip-wide restaurant registry so two days never share a spot.
func (p *MealSlotPlanner) PlanMeals(ctx context.Context, trip *TripContext, day *PlanDay, seedRestaurants []request_models.SeedAttraction) {
	meals := []string{MealBreakfast, MealLunch, MealDinner}

	day.Meals = day.Meals[:0]
	for _, mealtime := range meals {
		block := p.pickRestaurant(ctx, trip, day, mealtime, seedRestaurants)
		block.Mealtime = mealtime
		block.DurationMin = mealDuration(mealtime)
		day.Meals = append(day.Meals, block)
	}

	p.AnchorMeals(day)
}

// AnchorMeals recomputes meal start times from the current landmark layout.
// Safe to call again after a regeneration pass reshuffles the landmarks.
func (p *MealSlotPlanner) AnchorMeals(day *PlanDay) {
	if day.Mode == DayModeThemePark {
		p.anchorThemeParkMeals(day)
		return
	}

	firstStart, lastEnd := landmarkSpan(day, p.cfg)

	for _, meal := range day.Meals {
		switch meal.Mealtime {
		case MealBreakfast:
			start := firstStart - 60
			if start < 7*60 {
				start = 7 * 60
			}
			meal.StartMin = start
		case MealLunch:
			meal.StartMin = p.lunchAnchor(day)
		}
	}

	lunchEnd := 12*60 + lunchMinutes
	for _, meal := range day.Meals {
		if meal.Mealtime == MealLunch {
			lunchEnd = meal.StartMin + meal.DurationMin
		}
	}

	for _, meal := range day.Meals {
		if meal.Mealtime != MealDinner {
			continue
		}
		dinner := lunchEnd + 120
		if dinner < 17*60 {
			dinner = 17 * 60
		}
		if lastEnd+30 > dinner {
			dinner = lastEnd + 30
		}
		if dinner-lunchEnd > p.cfg.MaxAfternoonGap {
			dinner = lunchEnd + p.cfg.MaxAfternoonGap
			if lastEnd+30 > dinner {
				dinner = lastEnd + 30
			}
		}
		if dinner > 20*60 {
			dinner = 20 * 60
		}
		meal.StartMin = dinner
	}
}

// anchorThemeParkMeals keeps all meals around the single park block: lunch
// inside the park in the 12:00-13:00 band, breakfast before the gates,
// dinner after closing.
func (p *MealSlotPlanner) anchorThemeParkMeals(day *PlanDay) {
	parkStart := p.cfg.ThemeParkStart
	parkEnd := parkStart + p.cfg.ThemeParkMinutes
	if len(day.Landmarks) > 0 {
		parkStart = day.Landmarks[0].StartMin
		parkEnd = parkStart + day.Landmarks[0].DurationMin
	}

	for _, meal := range day.Meals {
		switch meal.Mealtime {
		case MealBreakfast:
			start := parkStart - 60
			if start < 7*60 {
				start = 7 * 60
			}
			meal.StartMin = start
		case MealLunch:
			meal.StartMin = 12*60 + 30
		case MealDinner:
			meal.StartMin = parkEnd + 30
		}
	}
}

// lunchAnchor fits lunch into the widest idle stretch between landmarks
// inside the 11:00-14:00 band, defaulting to noon.
func (p *MealSlotPlanner) lunchAnchor(day *PlanDay) int {
	const bandStart, bandEnd = 11 * 60, 14 * 60

	placed := placedLandmarks(day)
	bestStart, bestWidth := 12*60, 0

	for i := 0; i < len(placed)-1; i++ {
		gapStart := placed[i].StartMin + placed[i].DurationMin
		gapEnd := placed[i+1].StartMin
		width := gapEnd - gapStart
		if width < lunchMinutes {
			continue
		}
		mid := gapStart + width/2
		if mid < bandStart || mid > bandEnd {
			continue
		}
		if width > bestWidth {
			bestWidth = width
			bestStart = gapStart
		}
	}

	if bestStart < bandStart {
		bestStart = bandStart
	}
	if bestStart > bandEnd-lunchMinutes {
		bestStart = bandEnd - lunchMinutes
	}
	return bestStart
}

// pickRestaurant chooses a restaurant block for one meal slot. Preference
// order: caller-supplied restaurant seeds, then an enriched nearby lookup,
// then a plain unenriched block so meal coverage never fails.
func (p *MealSlotPlanner) pickRestaurant(ctx context.Context, trip *TripContext, day *PlanDay, mealtime string, seeds []request_models.SeedAttraction) *PlanBlock {
	for _, seed := range seeds {
		if !trip.Restaurants.Reserve(seed.Name) {
			continue
		}
		return &PlanBlock{
			Kind:        BlockRestaurant,
			Name:        seed.Name,
			Description: restaurantDescription(seed.Description),
			StartMin:    -1,
			Latitude:    seed.Latitude,
			Longitude:   seed.Longitude,
		}
	}

	if lat, lng, ok := dayCentroid(day); ok {
		nearby, err := p.places.NearbyRestaurants(ctx, lat, lng, 2000)
		if err != nil {
			log.Printf("day %d: restaurant lookup failed for %s: %v", day.Number, mealtime, err)
		}
		for _, candidate := range nearby {
			if !trip.Restaurants.Reserve(candidate.Name) {
				continue
			}
			return restaurantBlock(candidate)
		}
	}

	return &PlanBlock{
		Kind:     BlockRestaurant,
		Name:     fmt.Sprintf("%s in %s", utils.TitleCase(mealtime), trip.Destination),
		StartMin: -1,
	}
}

func restaurantBlock(summary places.PlaceSummary) *PlanBlock {
	block := &PlanBlock{
		Kind:        BlockRestaurant,
		Name:        summary.Name,
		Description: restaurantDescription(summary.EditorialSummary),
		StartMin:    -1,
		PlaceID:     summary.PlaceID,
		Address:     summary.Address,
		Website:     summary.Website,
	}
	if summary.Rating != nil && *summary.Rating >= 1.0 && *summary.Rating <= 5.0 {
		rating := *summary.Rating
		block.Rating = &rating
	}
	if summary.PhotoReference != "" {
		photoURL := photoProxyURL(summary.PhotoReference)
		block.PhotoURL = &photoURL
	}
	if summary.Latitude != 0 || summary.Longitude != 0 {
		lat, lng := summary.Latitude, summary.Longitude
		block.Latitude = &lat
		block.Longitude = &lng
	}
	return block
}

// restaurantDescription keeps a description only when it is long enough to
// say something. Empty is fine for restaurants.
func restaurantDescription(description string) string {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) < minRestaurantDescription || isGenericPlaceholder(trimmed) {
		return ""
	}
	return trimmed
}

func mealDuration(mealtime string) int {
	switch mealtime {
	case MealBreakfast:
		return breakfastMinutes
	case MealLunch:
		return lunchMinutes
	default:
		return dinnerMinutes
	}
}

func landmarkSpan(day *PlanDay, cfg SchedulerConfig) (firstStart, lastEnd int) {
	placed := placedLandmarks(day)
	if len(placed) == 0 {
		return cfg.DayStartMin, cfg.DayStartMin
	}

	firstStart = placed[0].StartMin
	lastEnd = placed[0].StartMin + placed[0].DurationMin
	for _, lm := range placed[1:] {
		if lm.StartMin < firstStart {
			firstStart = lm.StartMin
		}
		if end := lm.StartMin + lm.DurationMin; end > lastEnd {
			lastEnd = end
		}
	}
	return firstStart, lastEnd
}

func placedLandmarks(day *PlanDay) []*PlanBlock {
	out := make([]*PlanBlock, 0, len(day.Landmarks))
	for _, lm := range day.Landmarks {
		if lm.StartMin >= 0 {
			out = append(out, lm)
		}
	}
	return out
}

func dayCentroid(day *PlanDay) (lat, lng float64, ok bool) {
	count := 0
	for _, lm := range day.Landmarks {
		if lm.Latitude == nil || lm.Longitude == nil {
			continue
		}
		lat += *lm.Latitude
		lng += *lm.Longitude
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	return lat / float64(count), lng / float64(count), true
}
