package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"fuel-route-service/internal/adapters/ors"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/platform/db"
)

// dbtool initializes the station schema and ingests the fuel price CSV,
// geocoding each station along the way. Ingestion skips rows that are
// already loaded, so an interrupted run can be re-run to resume.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(pool); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	geocoder, err := ors.NewClient(cfg.ORSAPIKey, cfg.ORSBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Seeding stations from %s...", cfg.CSVPath)
	if err := repositories.SeedFromCSV(ctx, pool, geocoder, cfg.CSVPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
