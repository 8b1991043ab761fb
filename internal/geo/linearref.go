// Package geo provides planar linear-referencing math over [lon, lat]
// polylines. All distances are in degrees; callers apply their own
// degrees-to-miles conversion.
package geo

import (
	"math"

	"fuel-route-service/internal/domain"
)

type projection struct {
	along float64 // distance along the polyline to the projected point
	dist  float64 // distance from the point to the polyline
}

// project walks the polyline once, tracking the nearest segment and the
// cumulative length up to the projected point on that segment.
func project(line []domain.Coordinates, p domain.Coordinates) projection {
	best := projection{dist: math.Inf(1)}

	if len(line) == 1 {
		return projection{
			along: 0,
			dist:  math.Hypot(p.Lon-line[0].Lon, p.Lat-line[0].Lat),
		}
	}

	cum := 0.0
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		dx := b.Lon - a.Lon
		dy := b.Lat - a.Lat
		segLen := math.Hypot(dx, dy)

		t := 0.0
		if segLen > 0 {
			t = ((p.Lon-a.Lon)*dx + (p.Lat-a.Lat)*dy) / (segLen * segLen)
			t = math.Max(0, math.Min(1, t))
		}

		cx := a.Lon + t*dx
		cy := a.Lat + t*dy
		d := math.Hypot(p.Lon-cx, p.Lat-cy)

		if d < best.dist {
			best = projection{along: cum + t*segLen, dist: d}
		}

		cum += segLen
	}

	return best
}

// ProjectAlong returns the distance along the polyline, in degrees, at
// which p projects onto its nearest segment.
func ProjectAlong(line []domain.Coordinates, p domain.Coordinates) float64 {
	return project(line, p).along
}

// DistanceToPolyline returns the minimum planar distance, in degrees,
// between p and the polyline.
func DistanceToPolyline(line []domain.Coordinates, p domain.Coordinates) float64 {
	return project(line, p).dist
}
