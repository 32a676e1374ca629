package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/llmclient"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
)

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, userID string, req request_models.ItineraryRequest) (*response_models.ItineraryResponse, error)
	GetItinerary(ctx context.Context, userID, tripID string) (*response_models.ItineraryResponse, error)
	ListItineraries(ctx context.Context, userID string, page, pageSize int) ([]response_models.TripSummary, error)
}

type ItineraryService struct {
	expander   LandmarkExpanderInterface
	enhancer   EnhancementMergerInterface
	meals      MealSlotPlannerInterface
	timeline   TimelineAssemblerInterface
	generator  llmclient.LandmarkClientInterface
	trips      repositories.TripRepository
	embeddings repositories.LandmarkEmbeddingRepository
	cache      memcache.ItineraryCacheStore
	cfg        SchedulerConfig
}

func NewItineraryService(
	expander LandmarkExpanderInterface,
	enhancer EnhancementMergerInterface,
	meals MealSlotPlannerInterface,
	timeline TimelineAssemblerInterface,
	generator llmclient.LandmarkClientInterface,
	trips repositories.TripRepository,
	embeddings repositories.LandmarkEmbeddingRepository,
	cache memcache.ItineraryCacheStore,
	cfg SchedulerConfig,
) ItineraryServiceInterface {
	return &ItineraryService{
		expander:   expander,
		enhancer:   enhancer,
		meals:      meals,
		timeline:   timeline,
		generator:  generator,
		trips:      trips,
		embeddings: embeddings,
		cache:      cache,
		cfg:        cfg,
	}
}

// GenerateItinerary runs the full pipeline: expansion day by day, then
// enrichment, meal planning and assembly fanned out one goroutine per day.
// The registries inside the trip context are the only shared mutable state.
func (s *ItineraryService) GenerateItinerary(ctx context.Context, userID string, req request_models.ItineraryRequest) (*response_models.ItineraryResponse, error) {
	startTime := time.Now()

	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	key := requestFingerprint(userID, req)
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.(*response_models.ItineraryResponse); ok {
			log.Printf("itinerary cache hit for %s", req.Destination)
			return resp, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestDeadline)
	defer cancel()

	trip := NewTripContext(req.Destination)
	trip.WithKids = req.WithKids
	trip.KidsAges = req.KidsAges
	trip.WithElderly = req.WithElderly
	trip.SpecialRequests = req.SpecialRequests

	seeds := make([]request_models.DaySeed, len(req.Days))
	copy(seeds, req.Days)
	sort.SliceStable(seeds, func(i, j int) bool { return seeds[i].Day < seeds[j].Day })

	days := make([]*PlanDay, len(seeds))
	restaurantSeeds := make([][]request_models.SeedAttraction, len(seeds))

	// Expansion is sequential so registry claim order stays deterministic.
	for i, seed := range seeds {
		day := &PlanDay{Number: i + 1}
		landmarks, restaurants := splitSeeds(seed.Attractions)
		restaurantSeeds[i] = restaurants

		if err := s.expander.ExpandDay(ctx, trip, day, landmarks, req.TargetPerDay); err != nil {
			return nil, err
		}
		s.timeline.PlaceLandmarks(day)
		days[i] = day
	}

	log.Printf("ts: %d - expansion done for %d days", time.Since(startTime).Milliseconds(), len(days))

	var wg sync.WaitGroup
	for _, day := range days {
		wg.Add(1)
		go func(day *PlanDay, idx int) {
			defer wg.Done()
			s.enhancer.EnhanceDay(ctx, trip, day)
			s.meals.PlanMeals(ctx, trip, day, restaurantSeeds[idx])
			s.timeline.Finalize(ctx, trip, day)
		}(day, day.Number-1)
	}
	wg.Wait()

	log.Printf("ts: %d - enrichment and assembly done", time.Since(startTime).Milliseconds())

	resp := buildResponse(req.Destination, days)

	saved, err := s.persistTrip(ctx, ownerID, req, days, resp.ResidualGap)
	if err != nil {
		// The itinerary is still good; persistence is best effort here.
		log.Printf("trip persistence failed: %v", err)
	} else {
		resp.ID = saved.ID.String()
		s.ingestEmbeddings(ctx, trip, days)
	}

	s.cache.Set(key, resp, time.Hour)

	log.Printf("ts: %d - itinerary for %s complete", time.Since(startTime).Milliseconds(), req.Destination)
	return resp, nil
}

func (s *ItineraryService) GetItinerary(ctx context.Context, userID, tripID string) (*response_models.ItineraryResponse, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	// Another caller's trip reads as absent rather than forbidden.
	if trip == nil || trip.UserID.String() != userID {
		return nil, utils.ErrTripNotFound
	}

	resp := &response_models.ItineraryResponse{
		ID:          trip.ID.String(),
		Destination: trip.Destination,
		ResidualGap: trip.ResidualGap,
	}
	for _, day := range trip.Days {
		plan := response_models.DayPlan{
			Day:       day.DayNumber,
			ThemePark: day.ThemePark,
			Blocks:    make([]response_models.Block, 0, len(day.Blocks)),
		}
		for _, b := range day.Blocks {
			block := response_models.Block{
				Type:        b.BlockType,
				Name:        b.Name,
				Description: b.Description,
				StartTime:   b.StartTime,
				Duration:    utils.FormatDurationMinutes(b.DurationMinutes),
				Mealtime:    b.Mealtime,
				PlaceID:     b.PlaceID,
				Rating:      b.Rating,
				Address:     b.Address,
				Website:     b.Website,
				PhotoURL:    b.PhotoURL,
			}
			if b.Latitude != nil && b.Longitude != nil {
				block.Location = &response_models.Location{
					Latitude:  *b.Latitude,
					Longitude: *b.Longitude,
				}
			}
			plan.Blocks = append(plan.Blocks, block)
		}
		resp.Days = append(resp.Days, plan)
	}
	return resp, nil
}

func (s *ItineraryService) ListItineraries(ctx context.Context, userID string, page, pageSize int) ([]response_models.TripSummary, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, utils.ErrInvalidInput
	}

	trips, err := s.trips.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TripSummary, 0, len(trips))
	for _, trip := range trips {
		out = append(out, response_models.TripSummary{
			ID:          trip.ID.String(),
			Destination: trip.Destination,
			DayCount:    trip.DayCount,
			ResidualGap: trip.ResidualGap,
		})
	}
	return out, nil
}

func (s *ItineraryService) persistTrip(ctx context.Context, ownerID uuid.UUID, req request_models.ItineraryRequest, days []*PlanDay, residual bool) (*db_models.Trip, error) {
	kidsAges := make([]int64, 0, len(req.KidsAges))
	for _, age := range req.KidsAges {
		kidsAges = append(kidsAges, int64(age))
	}

	trip := &db_models.Trip{
		UserID:      ownerID,
		Destination: req.Destination,
		DayCount:    len(days),
		WithKids:    req.WithKids,
		KidsAges:    kidsAges,
		WithElderly: req.WithElderly,
		ResidualGap: residual,
	}

	for _, day := range days {
		tripDay := db_models.TripDay{
			DayNumber: day.Number,
			ThemePark: day.Mode == DayModeThemePark,
		}
		for pos, b := range day.Blocks {
			tripDay.Blocks = append(tripDay.Blocks, db_models.TripBlock{
				Position:        pos,
				BlockType:       string(b.Kind),
				Name:            b.Name,
				Description:     b.Description,
				StartTime:       utils.FormatClock(b.StartMin),
				DurationMinutes: b.DurationMin,
				Mealtime:        b.Mealtime,
				PlaceID:         b.PlaceID,
				Rating:          b.Rating,
				Address:         b.Address,
				Website:         b.Website,
				PhotoURL:        b.PhotoURL,
				Latitude:        b.Latitude,
				Longitude:       b.Longitude,
			})
		}
		trip.Days = append(trip.Days, tripDay)
	}

	if err := s.trips.Insert(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ingestEmbeddings records this trip's landmarks in the vector store so
// future requests can fall back to similarity lookups when the generative
// service is down. Best effort, failures only logged.
func (s *ItineraryService) ingestEmbeddings(ctx context.Context, trip *TripContext, days []*PlanDay) {
	if s.embeddings == nil || s.generator == nil {
		return
	}

	for _, day := range days {
		for _, lm := range day.Landmarks {
			vector, err := s.generator.GetEmbedding(ctx, lm.Name+" "+lm.Description)
			if err != nil {
				log.Printf("embedding ingest skipped for %q: %v", lm.Name, err)
				continue
			}
			record := &db_models.LandmarkEmbedding{
				LandmarkID:  normalizeName(lm.Name),
				Name:        lm.Name,
				Description: lm.Description,
				City:        trip.Destination,
				Embedding:   vector,
			}
			if err := s.embeddings.Upsert(ctx, record); err != nil {
				log.Printf("embedding ingest failed for %q: %v", lm.Name, err)
				continue
			}
		}
	}
}

func buildResponse(destination string, days []*PlanDay) *response_models.ItineraryResponse {
	resp := &response_models.ItineraryResponse{Destination: destination}

	for _, day := range days {
		if day.ResidualGap {
			resp.ResidualGap = true
		}
		plan := response_models.DayPlan{
			Day:       day.Number,
			ThemePark: day.Mode == DayModeThemePark,
			Blocks:    make([]response_models.Block, 0, len(day.Blocks)),
		}
		for _, b := range day.Blocks {
			plan.Blocks = append(plan.Blocks, blockToResponse(b))
		}
		resp.Days = append(resp.Days, plan)
	}
	return resp
}

func blockToResponse(b *PlanBlock) response_models.Block {
	block := response_models.Block{
		Type:        string(b.Kind),
		Name:        b.Name,
		Description: b.Description,
		StartTime:   utils.FormatClock(b.StartMin),
		Duration:    utils.FormatDurationMinutes(b.DurationMin),
		Mealtime:    b.Mealtime,
		PlaceID:     b.PlaceID,
		Rating:      b.Rating,
		Address:     b.Address,
		Website:     b.Website,
		PhotoURL:    b.PhotoURL,
	}
	if b.Latitude != nil && b.Longitude != nil {
		block.Location = &response_models.Location{
			Latitude:  *b.Latitude,
			Longitude: *b.Longitude,
		}
	}
	return block
}

func splitSeeds(attractions []request_models.SeedAttraction) (landmarks, restaurants []request_models.SeedAttraction) {
	for _, a := range attractions {
		if a.Kind == string(BlockRestaurant) {
			restaurants = append(restaurants, a)
		} else {
			landmarks = append(landmarks, a)
		}
	}
	return landmarks, restaurants
}

// requestFingerprint hashes the caller plus the request fields that
// influence the output. Scoping by user keeps one caller's persisted
// trip out of another caller's cached response.
func requestFingerprint(userID string, req request_models.ItineraryRequest) string {
	payload, err := json.Marshal(req)
	if err != nil {
		return userID + ":" + req.Destination
	}
	sum := sha256.Sum256(append([]byte(userID+":"), payload...))
	return fmt.Sprintf("%x", sum)
}
