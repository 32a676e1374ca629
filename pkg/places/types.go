package places

// PlaceSummary is the slice of Google Places data the planner cares about.
type PlaceSummary struct {
	PlaceID          string
	Name             string
	Rating           *float64
	Address          string
	Website          *string
	PhotoReference   string
	EditorialSummary string
	Types            []string
	Latitude         float64
	Longitude        float64
	PriceLevel       *int
}

type searchResponse struct {
	Results []searchResult `json:"results"`
	Status  string         `json:"status"`
}

type searchResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Rating           *float64 `json:"rating,omitempty"`
	FormattedAddress string   `json:"formatted_address"`
	Vicinity         *string  `json:"vicinity,omitempty"`
	Types            []string `json:"types"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	Geometry         geometry `json:"geometry"`
	Photos           []photo  `json:"photos,omitempty"`
}

type geometry struct {
	Location location `json:"location"`
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type photo struct {
	Height         int    `json:"height"`
	Width          int    `json:"width"`
	PhotoReference string `json:"photo_reference"`
}

type detailsResponse struct {
	Result detailsResult `json:"result"`
	Status string        `json:"status"`
}

type detailsResult struct {
	Website          *string `json:"website,omitempty"`
	EditorialSummary *struct {
		Overview string `json:"overview"`
	} `json:"editorial_summary,omitempty"`
}
