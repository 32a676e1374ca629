package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"voyago/internal/repositories"
	"voyago/internal/services"
	"voyago/pkg/llmclient"
	mem "voyago/pkg/memcache"
	"voyago/pkg/places"
)

var Module = fx.Provide(
	provideSchedulerConfig,
	provideTripRepo,
	provideEmbeddingRepo,
	provideExpander,
	provideEnhancer,
	provideMealPlanner,
	provideTimeline,
	provideItineraryService,
)

func provideSchedulerConfig() services.SchedulerConfig {
	return services.DefaultSchedulerConfig()
}

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideEmbeddingRepo(db *gorm.DB) repositories.LandmarkEmbeddingRepository {
	return repositories.NewLandmarkEmbeddingRepository(db)
}

func provideExpander(
	generator llmclient.LandmarkClientInterface,
	embeddings repositories.LandmarkEmbeddingRepository,
	cfg services.SchedulerConfig,
) services.LandmarkExpanderInterface {
	return services.NewLandmarkExpander(generator, embeddings, cfg)
}

func provideEnhancer(placesClient places.PlacesClientInterface) services.EnhancementMergerInterface {
	return services.NewEnhancementMerger(placesClient)
}

func provideMealPlanner(placesClient places.PlacesClientInterface, cfg services.SchedulerConfig) services.MealSlotPlannerInterface {
	return services.NewMealSlotPlanner(placesClient, cfg)
}

func provideTimeline(
	expander services.LandmarkExpanderInterface,
	meals services.MealSlotPlannerInterface,
	enhancer services.EnhancementMergerInterface,
	cfg services.SchedulerConfig,
) services.TimelineAssemblerInterface {
	return services.NewTimelineAssembler(expander, meals, enhancer, cfg)
}

func provideItineraryService(
	expander services.LandmarkExpanderInterface,
	enhancer services.EnhancementMergerInterface,
	meals services.MealSlotPlannerInterface,
	timeline services.TimelineAssemblerInterface,
	generator llmclient.LandmarkClientInterface,
	trips repositories.TripRepository,
	embeddings repositories.LandmarkEmbeddingRepository,
	cache mem.ItineraryCacheStore,
	cfg services.SchedulerConfig,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(expander, enhancer, meals, timeline, generator, trips, embeddings, cache, cfg)
}
