package repositories

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// Initialize the Postgres schema for the station store.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS fuel_stations (
		opis_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		retail_price DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_fuel_stations_lon_lat
	ON fuel_stations(lon, lat);
	`

	statements := []string{
		createStationsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Expected fuel_prices.csv header columns.
const (
	colOpisID = "OPIS Truckstop ID"
	colName   = "Truckstop Name"
	colAddr   = "Address"
	colCity   = "City"
	colState  = "State"
	colPrice  = "Retail Price"
)

// Delay between geocoding calls during ingestion, to stay polite with the
// provider's rate limits.
const seedGeocodeDelay = time.Second

// SeedFromCSV loads fuel price rows from csvPath, geocodes each station,
// and upserts the result. Rows whose opis_id is already present are
// skipped, so an interrupted run resumes where it left off.
//
// Geocoding tries the truckstop name with city and state first, then falls
// back to the city center, which is precise enough for corridor matching.
// Rows that fail both lookups are logged and skipped.
func SeedFromCSV(ctx context.Context, db *sql.DB, geocoder ports.Geocoder, csvPath string) error {
	if db == nil {
		return errors.New("seed stations: DB is nil")
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("seed stations: open %q: %w", csvPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("seed stations: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colOpisID, colName, colAddr, colCity, colState, colPrice} {
		if _, ok := idx[required]; !ok {
			return fmt.Errorf("seed stations: missing column %q", required)
		}
	}

	existing, err := existingIDs(ctx, db)
	if err != nil {
		return err
	}

	upsert := `
	INSERT INTO fuel_stations (opis_id, name, address, city, state, retail_price, lon, lat)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (opis_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		retail_price = EXCLUDED.retail_price,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`

	loaded := 0
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			log.Printf("seed stations: interrupted after %d rows (resume supported)", loaded)
			return err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("seed stations: read row: %w", err)
		}

		opisID, err := strconv.Atoi(strings.TrimSpace(record[idx[colOpisID]]))
		if err != nil {
			return fmt.Errorf("seed stations: invalid opis id %q: %w", record[idx[colOpisID]], err)
		}
		if _, ok := existing[opisID]; ok {
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[idx[colPrice]]), 64)
		if err != nil {
			return fmt.Errorf("seed stations: invalid price for opis_id=%d: %w", opisID, err)
		}

		name := strings.TrimSpace(record[idx[colName]])
		city := strings.TrimSpace(record[idx[colCity]])
		state := strings.TrimSpace(record[idx[colState]])

		coord, ok := seedGeocode(ctx, geocoder, name, city, state)
		if !ok {
			log.Printf("seed stations: geocode failed opis_id=%d name=%q", opisID, name)
			skipped++
			continue
		}

		if _, err := db.ExecContext(ctx, upsert,
			opisID, name, strings.TrimSpace(record[idx[colAddr]]), city, state,
			price, coord.Lon, coord.Lat,
		); err != nil {
			return fmt.Errorf("seed stations: insert opis_id=%d: %w", opisID, err)
		}

		existing[opisID] = struct{}{}
		loaded++

		timer := time.NewTimer(seedGeocodeDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	log.Printf("seed stations: loaded=%d skipped=%d", loaded, skipped)
	return nil
}

func existingIDs(ctx context.Context, db *sql.DB) (map[int]struct{}, error) {
	rows, err := db.QueryContext(ctx, `SELECT opis_id FROM fuel_stations;`)
	if err != nil {
		return nil, fmt.Errorf("seed stations: query existing ids: %w", err)
	}
	defer rows.Close()

	out := make(map[int]struct{}, 1024)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("seed stations: scan existing id: %w", err)
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("seed stations: existing id iteration: %w", err)
	}

	return out, nil
}

// seedGeocode resolves a station location, preferring the named truckstop
// and falling back to the city center.
func seedGeocode(ctx context.Context, geocoder ports.Geocoder, name, city, state string) (domain.Coordinates, bool) {
	queries := []string{
		fmt.Sprintf("%s, %s, %s", name, city, state),
		fmt.Sprintf("%s, %s, USA", city, state),
	}

	for i, q := range queries {
		coords, err := geocoder.Search(ctx, q, "US")
		if err != nil || len(coords) == 0 {
			continue
		}
		if i > 0 {
			log.Printf("seed stations: fallback to city center for %q", name)
		}
		return coords[0], true
	}

	return domain.Coordinates{}, false
}
