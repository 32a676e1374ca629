package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Trip struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	Destination string
	DayCount    int
	WithKids    bool
	KidsAges    pq.Int64Array `gorm:"type:bigint[]"`
	WithElderly bool
	ResidualGap bool

	Days []TripDay `gorm:"constraint:OnDelete:CASCADE"`
}

type TripDay struct {
	BaseModel
	TripID    uuid.UUID `gorm:"type:uuid;index"`
	DayNumber int
	ThemePark bool

	Blocks []TripBlock `gorm:"constraint:OnDelete:CASCADE"`
}

type TripBlock struct {
	BaseModel
	TripDayID       uuid.UUID `gorm:"type:uuid;index"`
	Position        int
	BlockType       string // landmark | restaurant
	Name            string
	Description     string
	StartTime       string // HH:MM
	DurationMinutes int
	Mealtime        string
	PlaceID         string
	Rating          *float64
	Address         string
	Website         *string
	PhotoURL        *string
	Latitude        *float64
	Longitude       *float64
}
