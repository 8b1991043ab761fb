package services

import (
	"math"

	"fuel-route-service/internal/domain"
)

// FuelParams control the greedy refuel optimizer.
type FuelParams struct {
	RangeMiles   float64 // maximum miles per tank
	MPG          float64 // miles per gallon
	DefaultPrice float64 // fallback $/gal when no stop has been made yet
}

func DefaultFuelParams() FuelParams {
	return FuelParams{RangeMiles: 500, MPG: 10, DefaultPrice: 3.50}
}

// OptimizeStops selects refueling stops along a route using a myopic
// greedy policy: at each step, refuel at the cheapest station reachable on
// the current tank. Each leg is charged at the previous stop's price; the
// first leg uses the arrival station's own price (there is no starting
// fuel price), and the final leg uses the last stop's price, or
// DefaultPrice when the whole route fits in one tank with no stop.
//
// Candidates must be sorted by ascending mile marker. The policy looks one
// stop ahead only; it does not attempt global cost optimization.
func OptimizeStops(
	totalMiles float64,
	candidates []domain.Candidate,
	params FuelParams,
) ([]domain.Stop, float64, error) {
	stops := []domain.Stop{}
	currentMiles := 0.0
	totalCost := 0.0
	lastPrice := 0.0
	haveStop := false

	for {
		if currentMiles+params.RangeMiles >= totalMiles {
			remaining := totalMiles - currentMiles
			price := params.DefaultPrice
			if haveStop {
				price = lastPrice
			}
			totalCost += (remaining / params.MPG) * price
			return stops, totalCost, nil
		}

		maxReach := currentMiles + params.RangeMiles

		var best *domain.Candidate
		for i := range candidates {
			c := &candidates[i]
			if c.MileMarker <= currentMiles || c.MileMarker > maxReach {
				continue
			}
			// Strictly-less keeps the nearer station on price ties,
			// since candidates arrive in marker order.
			if best == nil || c.Price < best.Price {
				best = c
			}
		}

		if best == nil {
			return nil, 0, domain.ErrStranded
		}

		dist := best.MileMarker - currentMiles
		prevPrice := best.Price
		if haveStop {
			prevPrice = lastPrice
		}
		totalCost += (dist / params.MPG) * prevPrice

		stops = append(stops, domain.Stop{
			City:       best.Station.City,
			State:      best.Station.State,
			Price:      best.Station.RetailPrice,
			MileMarker: math.Round(best.MileMarker*10) / 10,
			Location:   best.Station.Location,
		})

		// Advance with the unrounded marker; rounding is output-only.
		currentMiles = best.MileMarker
		lastPrice = best.Price
		haveStop = true
	}
}
