package request_models

type SeedAttraction struct {
	Name        string   `json:"name" binding:"required"`
	Kind        string   `json:"kind" binding:"required,oneof=landmark restaurant"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

type DaySeed struct {
	Day         int              `json:"day" binding:"required,min=1"`
	Attractions []SeedAttraction `json:"attractions" binding:"dive"`
}

type ItineraryRequest struct {
	Destination     string    `json:"destination" binding:"required,min=2"`
	Days            []DaySeed `json:"days" binding:"required,min=1,max=30,dive"`
	TargetPerDay    int       `json:"target_per_day" binding:"omitempty,min=1,max=8"`
	WithKids        bool      `json:"with_kids"`
	KidsAges        []int     `json:"kids_ages" binding:"omitempty,dive,min=0,max=17"`
	WithElderly     bool      `json:"with_elderly"`
	SpecialRequests string    `json:"special_requests" binding:"omitempty,max=500"`
}
