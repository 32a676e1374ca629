package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"voyago/internal/models/request_models"
	"voyago/internal/repositories"
	"voyago/pkg/llmclient"
	"voyago/pkg/utils"
)

type LandmarkExpanderInterface interface {
	ExpandDay(ctx context.Context, trip *TripContext, day *PlanDay, seeds []request_models.SeedAttraction, target int) error
	FillGap(ctx context.Context, trip *TripContext, day *PlanDay, maxDurationMin int) (*PlanBlock, error)
}

type LandmarkExpander struct {
	generator  llmclient.LandmarkClientInterface
	embeddings repositories.LandmarkEmbeddingRepository
	cfg        SchedulerConfig
}

func NewLandmarkExpander(
	generator llmclient.LandmarkClientInterface,
	embeddings repositories.LandmarkEmbeddingRepository,
	cfg SchedulerConfig,
) LandmarkExpanderInterface {
	return &LandmarkExpander{
		generator:  generator,
		embeddings: embeddings,
		cfg:        cfg,
	}
}

// ExpandDay fills a day with landmarks up to target. Seeds are reserved
// first; a theme-park seed short-circuits the whole day to that single
// attraction. Generative rounds are bounded and every failure degrades to
// whatever was already reserved.
func (e *LandmarkExpander) ExpandDay(ctx context.Context, trip *TripContext, day *PlanDay, seeds []request_models.SeedAttraction, target int) error {
	if target < 1 {
		target = e.cfg.TargetLandmarks
	}

	for _, seed := range seeds {
		if class := ClassifyThemePark(seed.Name, seed.Description); class.IsThemePark {
			if !trip.Landmarks.Reserve(seed.Name) {
				continue
			}
			day.Mode = DayModeThemePark
			day.Landmarks = []*PlanBlock{{
				Kind:        BlockLandmark,
				Name:        seed.Name,
				Description: seed.Description,
				StartMin:    e.cfg.ThemeParkStart,
				DurationMin: e.cfg.ThemeParkMinutes,
				Latitude:    seed.Latitude,
				Longitude:   seed.Longitude,
			}}
			log.Printf("day %d: theme park %q, expansion skipped", day.Number, seed.Name)
			return nil
		}
	}

	for _, seed := range seeds {
		if !trip.Landmarks.Reserve(seed.Name) {
			log.Printf("day %d: %v: seed %q discarded", day.Number, utils.ErrDuplicateLandmark, seed.Name)
			continue
		}
		day.Landmarks = append(day.Landmarks, &PlanBlock{
			Kind:        BlockLandmark,
			Name:        seed.Name,
			Description: seed.Description,
			StartMin:    -1,
			DurationMin: utils.ParseDurationMinutes(seed.Duration),
			Latitude:    seed.Latitude,
			Longitude:   seed.Longitude,
		})
	}

	for round := 0; round < e.cfg.ExpansionRounds && len(day.Landmarks) < target; round++ {
		need := target - len(day.Landmarks)

		suggestions, err := e.suggestWithRetry(ctx, llmclient.SuggestionQuery{
			Destination:     trip.Destination,
			Count:           need,
			Day:             day.Number,
			Anchors:         dayAnchors(day),
			Exclude:         trip.Landmarks.Names(),
			WithKids:        trip.WithKids,
			KidsAges:        trip.KidsAges,
			WithElderly:     trip.WithElderly,
			SpecialRequests: trip.SpecialRequests,
		})
		if err != nil {
			log.Printf("day %d: generative expansion failed: %v", day.Number, err)
			e.expandFromVectors(ctx, trip, day, target)
			break
		}

		added := 0
		for _, s := range suggestions {
			if len(day.Landmarks) >= target {
				break
			}
			if ClassifyThemePark(s.Name, s.Description).IsThemePark {
				continue
			}
			if !trip.Landmarks.Reserve(s.Name) {
				continue
			}
			day.Landmarks = append(day.Landmarks, suggestionToBlock(s))
			added++
		}
		if added == 0 {
			break
		}
	}

	if len(day.Landmarks) < target {
		// Non-fatal, the day simply carries fewer stops.
		log.Printf("day %d: %v: reserved %d of %d landmarks", day.Number, utils.ErrInsufficientCandidates, len(day.Landmarks), target)
	}
	return nil
}

// FillGap requests a single extra landmark for the regeneration loop. The
// returned block is already reserved; nil means nothing novel was available.
func (e *LandmarkExpander) FillGap(ctx context.Context, trip *TripContext, day *PlanDay, maxDurationMin int) (*PlanBlock, error) {
	if maxDurationMin <= 0 || maxDurationMin > e.cfg.GapFillerMaxMin {
		maxDurationMin = e.cfg.GapFillerMaxMin
	}

	suggestions, err := e.suggestWithRetry(ctx, llmclient.SuggestionQuery{
		Destination:     trip.Destination,
		Count:           3,
		Day:             day.Number,
		Anchors:         dayAnchors(day),
		Exclude:         trip.Landmarks.Names(),
		WithKids:        trip.WithKids,
		KidsAges:        trip.KidsAges,
		WithElderly:     trip.WithElderly,
		SpecialRequests: trip.SpecialRequests,
	})
	if err != nil {
		return nil, err
	}

	for _, s := range suggestions {
		if ClassifyThemePark(s.Name, s.Description).IsThemePark {
			continue
		}
		if !trip.Landmarks.Reserve(s.Name) {
			continue
		}
		block := suggestionToBlock(s)
		if block.DurationMin > maxDurationMin {
			block.DurationMin = maxDurationMin
		}
		return block, nil
	}
	return nil, nil
}

// expandFromVectors is the degraded path when the generative service is
// down: nearest stored landmarks by embedding similarity for the city.
func (e *LandmarkExpander) expandFromVectors(ctx context.Context, trip *TripContext, day *PlanDay, target int) {
	if e.embeddings == nil {
		return
	}

	vector, err := e.generator.GetEmbedding(ctx, "top landmarks in "+trip.Destination)
	if err != nil {
		log.Printf("day %d: embedding fallback unavailable: %v", day.Number, err)
		return
	}

	stored, err := e.embeddings.ListByVector(ctx, vector, trip.Destination, target*2)
	if err != nil {
		log.Printf("day %d: vector lookup failed: %v", day.Number, err)
		return
	}

	for _, candidate := range stored {
		if len(day.Landmarks) >= target {
			return
		}
		if !trip.Landmarks.Reserve(candidate.Name) {
			continue
		}
		day.Landmarks = append(day.Landmarks, &PlanBlock{
			Kind:        BlockLandmark,
			Name:        candidate.Name,
			Description: candidate.Description,
			StartMin:    -1,
			DurationMin: 60,
		})
	}
}

func (e *LandmarkExpander) suggestWithRetry(ctx context.Context, query llmclient.SuggestionQuery) ([]llmclient.Suggestion, error) {
	var lastErr error
	backoff := 500 * time.Millisecond

	for attempt := 0; attempt <= e.cfg.UpstreamRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		suggestions, err := e.generator.SuggestLandmarks(ctx, query)
		if err == nil {
			return suggestions, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, lastErr)
}

// dayAnchors lists the names already placed on a day so the provider can
// suggest places that pair with them.
func dayAnchors(day *PlanDay) []string {
	names := make([]string, 0, len(day.Landmarks))
	for _, lm := range day.Landmarks {
		names = append(names, lm.Name)
	}
	return names
}

func suggestionToBlock(s llmclient.Suggestion) *PlanBlock {
	block := &PlanBlock{
		Kind:        BlockLandmark,
		Name:        s.Name,
		Description: s.Description,
		StartMin:    -1,
		DurationMin: utils.ParseDurationMinutes(s.Duration),
	}
	if s.Latitude != 0 || s.Longitude != 0 {
		lat, lng := s.Latitude, s.Longitude
		block.Latitude = &lat
		block.Longitude = &lng
	}
	return block
}
