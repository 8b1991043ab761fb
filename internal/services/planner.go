package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

const fullResultKeyPrefix = "route:result:"

// Planner runs the full planning pipeline behind a single cached lookup:
// geocode both endpoints, route between them, project nearby stations onto
// the route, and select fuel stops.
type Planner struct {
	Cache     ports.Cache
	Geocodes  *GeocodeResolver
	Routes    ports.RouteProvider
	Stations  ports.StationStore
	Params    FuelParams
	ResultTTL time.Duration
}

func NewPlanner(
	cache ports.Cache,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	stations ports.StationStore,
	params FuelParams,
) *Planner {
	return &Planner{
		Cache:     cache,
		Geocodes:  NewGeocodeResolver(cache, geocoder),
		Routes:    routes,
		Stations:  stations,
		Params:    params,
		ResultTTL: time.Hour,
	}
}

// PlanRoute produces the refueling plan for a (start, finish) pair of
// free-text locations. Results are cached as a single unit keyed by the
// normalized pair; a cached result is returned as-is, staleness within the
// TTL is intentional. Failures short-circuit the pipeline and cache
// nothing; a result is never partially populated.
func (p *Planner) PlanRoute(
	ctx context.Context,
	startText string,
	finishText string,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "planner.PlanRoute")(&err)

	key := fullResultKeyPrefix + Normalize(startText) + ":" + Normalize(finishText)

	if raw, cacheErr := p.Cache.Get(ctx, key); cacheErr == nil {
		var cached domain.RouteResult
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}
	}

	start, err := p.Geocodes.Resolve(ctx, startText, "Start")
	if err != nil {
		return nil, err
	}

	finish, err := p.Geocodes.Resolve(ctx, finishText, "Finish")
	if err != nil {
		return nil, err
	}

	route, err := p.Routes.Directions(ctx, start, finish)
	if err != nil {
		return nil, &domain.RoutingError{Err: err}
	}

	candidates, err := BuildCandidates(ctx, p.Stations, route)
	if err != nil {
		return nil, err
	}

	stops, totalCost, err := OptimizeStops(route.TotalMiles, candidates, p.Params)
	if err != nil {
		return nil, err
	}

	result := &domain.RouteResult{
		TotalMiles:    math.Round(route.TotalMiles*10) / 10,
		FuelStops:     stops,
		TotalFuelCost: math.Round(totalCost*100) / 100,
	}

	if raw, jsonErr := json.Marshal(result); jsonErr == nil {
		_ = p.Cache.Set(ctx, key, raw, p.ResultTTL)
	}

	return result, nil
}
