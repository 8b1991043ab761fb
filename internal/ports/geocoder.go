package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Contract for resolving free-text locations into coordinates.
type Geocoder interface {
	// Return candidate coordinates for text, restricted to a country scope.
	// An empty slice means no match; an error means a transport or
	// provider failure.
	Search(ctx context.Context, text string, countryScope string) ([]domain.Coordinates, error)
}
