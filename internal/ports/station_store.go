package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Port: a boundary for retrieving Station entities from the spatial store.
type StationStore interface {
	// Return stations within toleranceDegrees of the route polyline,
	// in deterministic order.
	NearRoute(ctx context.Context, polyline []domain.Coordinates, toleranceDegrees float64) ([]domain.Station, error)
}
