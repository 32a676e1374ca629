package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"voyago/internal/models/db_models"
)

type LandmarkEmbeddingRepository interface {
	ListByVector(ctx context.Context, vector pgvector.Vector, city string, limit int) ([]db_models.LandmarkEmbedding, error)
	Upsert(ctx context.Context, embedding *db_models.LandmarkEmbedding) error
}

type landmarkEmbeddingRepository struct {
	db *gorm.DB
}

func NewLandmarkEmbeddingRepository(db *gorm.DB) LandmarkEmbeddingRepository {
	return &landmarkEmbeddingRepository{
		db: db,
	}
}

func (r *landmarkEmbeddingRepository) ListByVector(ctx context.Context, vector pgvector.Vector, city string, limit int) ([]db_models.LandmarkEmbedding, error) {
	if limit <= 0 {
		limit = 15
	}

	var results []db_models.LandmarkEmbedding

	vecStr := vector.String()

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM landmark_embeddings
        WHERE lower(city) = lower($2)
          AND (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $3
    `

	err := r.db.WithContext(ctx).Raw(query, vecStr, city, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *landmarkEmbeddingRepository) Upsert(ctx context.Context, embedding *db_models.LandmarkEmbedding) error {
	return r.db.WithContext(ctx).Save(embedding).Error
}
