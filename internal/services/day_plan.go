package services

type BlockKind string

const (
	BlockLandmark   BlockKind = "landmark"
	BlockRestaurant BlockKind = "restaurant"
)

type DayMode int

const (
	DayModeNormal DayMode = iota
	DayModeThemePark
)

// PlanBlock is the internal scheduling unit. Times are minutes since
// midnight; StartMin == -1 means not yet placed on the timeline.
type PlanBlock struct {
	Kind        BlockKind
	Name        string
	Description string
	StartMin    int
	DurationMin int
	Mealtime    string
	PlaceID     string
	Rating      *float64
	Address     string
	Website     *string
	PhotoURL    *string
	Latitude    *float64
	Longitude   *float64
}

// PlanDay is the mutable working state for one trip day. A day is owned by
// exactly one goroutine after expansion; only the registries are shared.
type PlanDay struct {
	Number      int
	Mode        DayMode
	Landmarks   []*PlanBlock
	Meals       []*PlanBlock
	Blocks      []*PlanBlock
	ResidualGap bool
}

// TripContext carries the per-request state every component reads. The two
// registries are the only members mutated concurrently.
type TripContext struct {
	Destination     string
	Landmarks       *TripRegistry
	Restaurants     *TripRegistry
	WithKids        bool
	KidsAges        []int
	WithElderly     bool
	SpecialRequests string
}

func NewTripContext(destination string) *TripContext {
	return &TripContext{
		Destination: destination,
		Landmarks:   NewTripRegistry(),
		Restaurants: NewTripRegistry(),
	}
}
