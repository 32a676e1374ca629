package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyThemePark(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        bool
	}{
		{"Universal Studios Florida", "", true},
		{"Magic Kingdom", "", true},
		{"Disneyland Paris", "", true},
		{"EPCOT", "", true},
		{"SeaWorld Orlando", "", true},
		{"Busch Gardens Tampa", "", true},
		{"Busch Gardens Williamsburg", "Family theme park with roller coasters", true},
		{"Legoland California", "", true},
		{"Six Flags Magic Mountain", "", true},
		{"Volcano Bay", "", true},
		{"Universal CityWalk", "", true},
		{"Wild Rapids", "A thrilling water park with slides", true},

		{"Orlando Science Center", "", false},
		{"The Louvre", "World famous art museum", false},
		{"Yosemite National Park", "", false},
		{"Central Park", "", false},
		{"Balboa Park", "Urban cultural park with a garden", false},
		{"Harry P Leu Gardens", "Botanical oasis near downtown", false},
		{"Kraft Azalea Garden", "Lakeside garden with cypress trees", false},
		{"Skate Park Downtown", "", false},
		{"Airport Parking Garage", "", false},
		{"Eiffel Tower", "Iconic iron lattice tower", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyThemePark(tt.name, tt.description)
			assert.Equal(t, tt.want, got.IsThemePark)
			if tt.want {
				assert.NotEmpty(t, got.Matched)
			}
		})
	}
}

func TestClassifyThemeParkExclusionWins(t *testing.T) {
	// A museum about a park operator is still a museum.
	got := ClassifyThemePark("Disney Family Museum", "Museum about the Disney family")
	assert.False(t, got.IsThemePark)
}

func TestClassifyThemeParkOperatorNameNotSwallowedByExclusion(t *testing.T) {
	// "garden" excludes botanical gardens but must not match the word
	// "gardens" inside an operator name.
	got := ClassifyThemePark("Busch Gardens Tampa", "African-themed park with coasters and animals")
	assert.True(t, got.IsThemePark)
	assert.Equal(t, "busch gardens", got.Matched)

	assert.False(t, ClassifyThemePark("Leu Gardens", "Botanical garden").IsThemePark)
}

func TestClassifyThemeParkIdempotent(t *testing.T) {
	first := ClassifyThemePark("Universal Studios Florida", "theme park")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ClassifyThemePark("Universal Studios Florida", "theme park"))
	}
}
