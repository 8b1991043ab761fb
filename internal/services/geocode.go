package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

const geocodeKeyPrefix = "geocode:"

// GeocodeResolver turns free-text locations into coordinates, caching
// successful lookups. Locations rarely move, so cached entries live for a
// day by default.
type GeocodeResolver struct {
	Cache        ports.Cache
	Geocoder     ports.Geocoder
	CountryScope string
	TTL          time.Duration
}

func NewGeocodeResolver(cache ports.Cache, geocoder ports.Geocoder) *GeocodeResolver {
	return &GeocodeResolver{
		Cache:        cache,
		Geocoder:     geocoder,
		CountryScope: "USA",
		TTL:          24 * time.Hour,
	}
}

// Normalize produces the stable form of a location used for cache keys.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve returns the first coordinate for the given location text.
// The external lookup uses the original, un-normalized text; only the
// cache key is normalized. Not-found results are never cached, so a later
// request retries the lookup. endpoint names the side of the route being
// resolved ("Start" or "Finish") for error messages.
func (r *GeocodeResolver) Resolve(
	ctx context.Context,
	text string,
	endpoint string,
) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.Resolve")(&err)

	key := geocodeKeyPrefix + Normalize(text)

	if raw, cacheErr := r.Cache.Get(ctx, key); cacheErr == nil {
		var cached []domain.Coordinates
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil && len(cached) > 0 {
			return cached[0], nil
		}
	}

	coords, err := r.Geocoder.Search(ctx, text, r.CountryScope)
	if err != nil {
		return domain.Coordinates{}, &domain.LocationNotFoundError{Endpoint: endpoint, Err: err}
	}
	if len(coords) == 0 {
		return domain.Coordinates{}, &domain.LocationNotFoundError{Endpoint: endpoint}
	}

	if raw, jsonErr := json.Marshal(coords); jsonErr == nil {
		// Set is fail-soft; a write failure costs one extra lookup later.
		_ = r.Cache.Set(ctx, key, raw, r.TTL)
	}

	return coords[0], nil
}
