package services

import (
	"context"
	"fmt"
	"sort"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

// NearRouteTolerance is the coarse prefilter corridor width in degrees
// (~10 miles) used when querying the station store.
const NearRouteTolerance = 0.15

// DegreesToMiles converts projected polyline distance to miles.
// Latitude-scale approximation; not geodesic.
const DegreesToMiles = 69.0

// BuildCandidates projects stations near the route onto its polyline and
// returns them ordered by ascending mile marker. The sort is stable, so
// stations with equal markers keep store order.
func BuildCandidates(
	ctx context.Context,
	store ports.StationStore,
	route domain.Route,
) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "planner.BuildCandidates")(&err)

	stations, err := store.NearRoute(ctx, route.Polyline, NearRouteTolerance)
	if err != nil {
		return nil, fmt.Errorf("build candidates: stations near route: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(stations))
	for _, st := range stations {
		distDeg := geo.ProjectAlong(route.Polyline, st.Location)
		candidates = append(candidates, domain.Candidate{
			Station:    st,
			MileMarker: distDeg * DegreesToMiles,
			Price:      st.RetailPrice,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MileMarker < candidates[j].MileMarker
	})

	return candidates, nil
}
