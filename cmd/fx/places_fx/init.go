package places_fx

import (
	"go.uber.org/fx"
	"voyago/pkg/places"
)

var Module = fx.Provide(providePlacesClient)

func providePlacesClient() places.PlacesClientInterface {
	return places.NewGooglePlacesClient(places.NewInMemoryLookupCache())
}
