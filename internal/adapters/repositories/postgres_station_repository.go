package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"fuel-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the StationStore port.
type PostgresStationRepository struct{ DB *sql.DB }

func NewPostgresStationRepository(db *sql.DB) *PostgresStationRepository {
	return &PostgresStationRepository{DB: db}
}

// NearRoute returns stations within toleranceDegrees of the polyline.
// A bounding-box query bounds the candidate set in SQL before the exact
// point-to-segment distance check; rows come back ordered by opis_id so
// candidate order is deterministic.
func (s *PostgresStationRepository) NearRoute(
	ctx context.Context,
	polyline []domain.Coordinates,
	toleranceDegrees float64,
) (_ []domain.Station, err error) {
	defer obs.Time(ctx, "stations.NearRoute")(&err)

	if s.DB == nil {
		return nil, errors.New("station repository: DB is nil")
	}

	if len(polyline) == 0 {
		return []domain.Station{}, nil
	}

	minLon, maxLon := polyline[0].Lon, polyline[0].Lon
	minLat, maxLat := polyline[0].Lat, polyline[0].Lat
	for _, c := range polyline[1:] {
		if c.Lon < minLon {
			minLon = c.Lon
		}
		if c.Lon > maxLon {
			maxLon = c.Lon
		}
		if c.Lat < minLat {
			minLat = c.Lat
		}
		if c.Lat > maxLat {
			maxLat = c.Lat
		}
	}

	q := `
	SELECT opis_id, name, address, city, state, retail_price, lon, lat
	FROM fuel_stations
	WHERE lon BETWEEN $1 AND $2
	  AND lat BETWEEN $3 AND $4
	ORDER BY opis_id;
	`

	rows, err := s.DB.QueryContext(ctx, q,
		minLon-toleranceDegrees, maxLon+toleranceDegrees,
		minLat-toleranceDegrees, maxLat+toleranceDegrees,
	)
	if err != nil {
		return nil, fmt.Errorf("near route: query fuel_stations table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Station, 0, 64)
	for rows.Next() {
		var st domain.Station
		if err := rows.Scan(
			&st.OpisID, &st.Name, &st.Address, &st.City, &st.State,
			&st.RetailPrice, &st.Location.Lon, &st.Location.Lat,
		); err != nil {
			return nil, fmt.Errorf("near route: scan row: %w", err)
		}

		if geo.DistanceToPolyline(polyline, st.Location) <= toleranceDegrees {
			out = append(out, st)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("near route: row iteration: %w", err)
	}

	return out, nil
}
