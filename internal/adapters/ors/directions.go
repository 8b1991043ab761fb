package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Units       string      `json:"units"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Directions fetches a driving route between two coordinates using the
// GeoJSON directions endpoint, with distances reported in miles.
func (c *Client) Directions(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
) (_ domain.Route, err error) {
	defer obs.Time(ctx, "ors.Directions")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{from.CoordsToList(), to.CoordsToList()},
		Units:       "mi",
	})
	if err != nil {
		return domain.Route{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return domain.Route{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Route{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Route{}, errors.New("directions response contains no routes")
	}

	feature := decoded.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return domain.Route{}, errors.New("directions response contains no geometry")
	}

	polyline := make([]domain.Coordinates, 0, len(feature.Geometry.Coordinates))
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) != 2 {
			return domain.Route{}, errors.New("directions response contains malformed coordinates")
		}
		polyline = append(polyline, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	return domain.Route{
		Polyline:   polyline,
		TotalMiles: feature.Properties.Summary.Distance,
	}, nil
}
