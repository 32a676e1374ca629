package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"voyago/internal/models/db_models"
)

type TripRepository interface {
	Insert(ctx context.Context, trip *db_models.Trip) error
	GetByID(ctx context.Context, tripID string) (*db_models.Trip, error)
	ListByUserID(ctx context.Context, userID string, page, pageSize int) ([]db_models.Trip, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{
		db: db,
	}
}

func (r *tripRepository) Insert(ctx context.Context, trip *db_models.Trip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(trip).Error
	})
}

func (r *tripRepository) GetByID(ctx context.Context, tripID string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC")
		}).
		Preload("Days.Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&trip, "id = ?", tripID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (r *tripRepository) ListByUserID(ctx context.Context, userID string, page, pageSize int) ([]db_models.Trip, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}
