package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// memCache is an in-memory Cache for tests. TTLs are ignored.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) hasKeyWithPrefix(prefix string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

type stubGeocoder struct {
	coords map[string][]domain.Coordinates
	err    error
	calls  int
}

func (g *stubGeocoder) Search(_ context.Context, text, _ string) ([]domain.Coordinates, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.coords[text], nil
}

type stubRouteProvider struct {
	route domain.Route
	err   error
	calls int
}

func (r *stubRouteProvider) Directions(_ context.Context, _, _ domain.Coordinates) (domain.Route, error) {
	r.calls++
	if r.err != nil {
		return domain.Route{}, r.err
	}
	return r.route, nil
}

type stubStationStore struct {
	stations     []domain.Station
	err          error
	calls        int
	gotTolerance float64
}

func (s *stubStationStore) NearRoute(_ context.Context, _ []domain.Coordinates, tolerance float64) ([]domain.Station, error) {
	s.calls++
	s.gotTolerance = tolerance
	if s.err != nil {
		return nil, s.err
	}
	return s.stations, nil
}

// northboundRoute builds a route along a meridian whose projected mile
// markers equal latitude * 69.
func northboundRoute(totalMiles float64) domain.Route {
	return domain.Route{
		Polyline: []domain.Coordinates{
			{Lon: 0, Lat: 0},
			{Lon: 0, Lat: totalMiles / DegreesToMiles},
		},
		TotalMiles: totalMiles,
	}
}

func stationAtMile(id int, mile, price float64, city string) domain.Station {
	return domain.Station{
		OpisID:      id,
		City:        city,
		State:       "OK",
		RetailPrice: price,
		Location:    domain.Coordinates{Lon: 0, Lat: mile / DegreesToMiles},
	}
}

func newTestPlanner(cache ports.Cache, geocoder ports.Geocoder, routes ports.RouteProvider, stations ports.StationStore) *Planner {
	return NewPlanner(cache, geocoder, routes, stations, DefaultFuelParams())
}

func TestPlannerWorkedScenario(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string][]domain.Coordinates{
		"Boston, MA": {{Lon: -71.06, Lat: 42.36}},
		"NYC":        {{Lon: -74.00, Lat: 40.71}},
	}}
	router := &stubRouteProvider{route: northboundRoute(1000)}
	store := &stubStationStore{stations: []domain.Station{
		stationAtMile(1, 100, 2.50, "Springfield"),
		stationAtMile(2, 480, 2.00, "Cheapville"),
		stationAtMile(3, 900, 3.00, "Lastgas"),
	}}

	planner := newTestPlanner(newMemCache(), geocoder, router, store)

	result, err := planner.PlanRoute(context.Background(), "Boston, MA", "NYC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalMiles != 1000.0 {
		t.Fatalf("total miles = %v, want 1000.0", result.TotalMiles)
	}
	if len(result.FuelStops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(result.FuelStops))
	}
	if result.FuelStops[0].MileMarker != 480.0 || result.FuelStops[0].City != "Cheapville" {
		t.Fatalf("first stop = %+v, want Cheapville at 480.0", result.FuelStops[0])
	}
	if result.FuelStops[1].MileMarker != 900.0 || result.FuelStops[1].City != "Lastgas" {
		t.Fatalf("second stop = %+v, want Lastgas at 900.0", result.FuelStops[1])
	}
	if result.TotalFuelCost != 210.00 {
		t.Fatalf("total cost = %v, want 210.00", result.TotalFuelCost)
	}

	for i := 1; i < len(result.FuelStops); i++ {
		if result.FuelStops[i].MileMarker <= result.FuelStops[i-1].MileMarker {
			t.Fatalf("mile markers not strictly increasing: %+v", result.FuelStops)
		}
	}
}

func TestPlannerNormalizationIdempotence(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string][]domain.Coordinates{
		"Boston, MA": {{Lon: -71.06, Lat: 42.36}},
		"NYC":        {{Lon: -74.00, Lat: 40.71}},
	}}
	router := &stubRouteProvider{route: northboundRoute(300)}
	store := &stubStationStore{}

	planner := newTestPlanner(newMemCache(), geocoder, router, store)

	first, err := planner.PlanRoute(context.Background(), "Boston, MA", "NYC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	geocoderCalls := geocoder.calls
	routerCalls := router.calls
	storeCalls := store.calls

	// Whitespace and casing variants normalize to the same cache key, so
	// the repeat request must issue zero external calls.
	second, err := planner.PlanRoute(context.Background(), "  BOSTON, MA ", "nyc")
	if err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}

	if geocoder.calls != geocoderCalls || router.calls != routerCalls || store.calls != storeCalls {
		t.Fatalf("repeat call hit external services: geocoder %d->%d router %d->%d store %d->%d",
			geocoderCalls, geocoder.calls, routerCalls, router.calls, storeCalls, store.calls)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatalf("cached result differs: %s vs %s", firstJSON, secondJSON)
	}
}

func TestPlannerCacheRoundTripIgnoresBackingChanges(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string][]domain.Coordinates{
		"A": {{Lon: 0, Lat: 0}},
		"B": {{Lon: 0, Lat: 1}},
	}}
	router := &stubRouteProvider{route: northboundRoute(300)}
	store := &stubStationStore{}

	planner := newTestPlanner(newMemCache(), geocoder, router, store)

	first, err := planner.PlanRoute(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Staleness within TTL is intentional: changed backing data must not
	// leak into a cached result.
	router.err = errors.New("provider rotated")
	geocoder.err = errors.New("provider rotated")

	second, err := planner.PlanRoute(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("unexpected error on cached call: %v", err)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatalf("cached result not byte-identical: %s vs %s", firstJSON, secondJSON)
	}
}

func TestPlannerRouterFailure(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string][]domain.Coordinates{
		"A": {{Lon: 0, Lat: 0}},
		"B": {{Lon: 0, Lat: 1}},
	}}
	router := &stubRouteProvider{err: errors.New("ORS is down")}
	store := &stubStationStore{}
	cache := newMemCache()

	planner := newTestPlanner(cache, geocoder, router, store)

	result, err := planner.PlanRoute(context.Background(), "A", "B")
	if result != nil {
		t.Fatalf("expected no result, got %+v", result)
	}

	var routingErr *domain.RoutingError
	if !errors.As(err, &routingErr) {
		t.Fatalf("expected RoutingError, got %v", err)
	}
	if !strings.Contains(err.Error(), "ORS is down") {
		t.Fatalf("routing reason not surfaced: %q", err.Error())
	}

	if cache.hasKeyWithPrefix(fullResultKeyPrefix) {
		t.Fatal("failed plan must not write a full-result cache entry")
	}
}

func TestPlannerStranded(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string][]domain.Coordinates{
		"A": {{Lon: 0, Lat: 0}},
		"B": {{Lon: 0, Lat: 1}},
	}}
	router := &stubRouteProvider{route: northboundRoute(1000)}
	store := &stubStationStore{} // no stations anywhere

	planner := newTestPlanner(newMemCache(), geocoder, router, store)

	_, err := planner.PlanRoute(context.Background(), "A", "B")
	if !errors.Is(err, domain.ErrStranded) {
		t.Fatalf("expected ErrStranded, got %v", err)
	}
}

func TestPlannerLocationNotFoundNamesEndpoint(t *testing.T) {
	geocoder := &stubGeocoder{coords: map[string][]domain.Coordinates{
		"A": {{Lon: 0, Lat: 0}},
		// "Atlantis" resolves to nothing.
	}}
	router := &stubRouteProvider{route: northboundRoute(300)}

	planner := newTestPlanner(newMemCache(), geocoder, router, &stubStationStore{})

	_, err := planner.PlanRoute(context.Background(), "A", "Atlantis")
	var locErr *domain.LocationNotFoundError
	if !errors.As(err, &locErr) {
		t.Fatalf("expected LocationNotFoundError, got %v", err)
	}
	if err.Error() != "Finish location not found" {
		t.Fatalf("message = %q, want %q", err.Error(), "Finish location not found")
	}
}
