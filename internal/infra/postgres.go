package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"voyago/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	return connectionPool
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Trip{},
		&db_models.TripDay{},
		&db_models.TripBlock{},
		&db_models.LandmarkEmbedding{},
	)
	if err != nil {
		log.Printf("Error running migrations: %v", err)
	}
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
