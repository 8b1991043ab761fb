package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Search resolves a free-text location using OpenRouteService
// (/geocode/search). The query text is passed through un-normalized;
// cache keying happens upstream. An empty result is not an error.
func (c *Client) Search(
	ctx context.Context,
	text string,
	countryScope string,
) (_ []domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Search")(&err)

	endpoint := c.baseURL + "/geocode/search"

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", text)
		q.Set("boundary.country", countryScope)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("geocode search %q: %w", text, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	out := make([]domain.Coordinates, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		coords := f.Geometry.Coordinates
		if len(coords) != 2 {
			continue
		}
		out = append(out, domain.Coordinates{Lon: coords[0], Lat: coords[1]})
	}

	return out, nil
}
