package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Contract for obtaining a driving route between two coordinates.
type RouteProvider interface {
	// Return the route polyline and total distance in miles for the
	// fixed driving profile.
	Directions(ctx context.Context, from, to domain.Coordinates) (domain.Route, error)
}
