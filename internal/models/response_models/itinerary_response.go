package response_models

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Block struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   string    `json:"start_time"`
	Duration    string    `json:"duration"`
	Mealtime    string    `json:"mealtime,omitempty"`
	PlaceID     string    `json:"place_id,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Address     string    `json:"address,omitempty"`
	Website     *string   `json:"website"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

type DayPlan struct {
	Day       int     `json:"day"`
	ThemePark bool    `json:"theme_park,omitempty"`
	Blocks    []Block `json:"blocks"`
}

type ItineraryResponse struct {
	ID          string    `json:"id,omitempty"`
	Destination string    `json:"destination"`
	Days        []DayPlan `json:"days"`
	ResidualGap bool      `json:"residual_gap,omitempty"`
}

// TripSummary is the trip-history listing row; full days load via GetItinerary.
type TripSummary struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	DayCount    int    `json:"day_count"`
	ResidualGap bool   `json:"residual_gap,omitempty"`
}
