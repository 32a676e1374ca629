package db_models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type LandmarkEmbedding struct {
	LandmarkID  string `gorm:"primaryKey;column:landmark_id"`
	Name        string
	Description string
	City        string `gorm:"index"`
	Kinds       pq.StringArray  `gorm:"type:text[]"`
	Embedding   pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}
