package memcache_fx

import (
	"go.uber.org/fx"
	mem "voyago/pkg/memcache"
)

var Module = fx.Provide(provideItineraryCache)

func provideItineraryCache() mem.ItineraryCacheStore {
	return mem.NewItineraryCache()
}
