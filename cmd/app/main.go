package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"voyago/cmd/fx/account_fx"
	"voyago/cmd/fx/controllers_fx"
	"voyago/cmd/fx/db_fx"
	"voyago/cmd/fx/itinerary_fx"
	"voyago/cmd/fx/llm_fx"
	"voyago/cmd/fx/memcache_fx"
	"voyago/cmd/fx/places_fx"
	"voyago/internal/api/controllers"
	"voyago/internal/infra"
	"voyago/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		llm_fx.Module,
		places_fx.Module,
		account_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.Invoke(infra.AutoMigrate),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	accountController *controllers.AccountController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, itineraryController, accountController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	accountController *controllers.AccountController) {

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", accountController.Register)
	accountGroup.POST("/login", accountController.Login)
	accountGroup.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.Use(middleware.JWTAuthMiddleware())
	itineraryGroup.POST("/generate", itineraryController.GenerateItinerary)
	itineraryGroup.GET("", itineraryController.ListItineraries)
	itineraryGroup.GET("/:tripId", itineraryController.GetItinerary)
}
