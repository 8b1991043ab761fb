package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/ors"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and
// starts the HTTP server.
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

	if err := repositories.InitSchema(pool); err != nil {
		log.Fatal(err)
	}

	// The cache is fail-soft: an unreachable Redis degrades every lookup
	// to a miss instead of failing requests, so startup proceeds either way.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("WARN: redis unavailable at %s: %v (planning continues uncached)", cfg.RedisAddr, err)
	}
	resultCache := cache.NewFailSoft(cache.NewRedisCache(rdb))

	orsClient, err := ors.NewClient(cfg.ORSAPIKey, cfg.ORSBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	stations := repositories.NewPostgresStationRepository(pool)

	planner := services.NewPlanner(resultCache, orsClient, orsClient, stations, services.FuelParams{
		RangeMiles:   cfg.RangeMiles,
		MPG:          cfg.MPG,
		DefaultPrice: cfg.DefaultPrice,
	})
	planner.ResultTTL = cfg.ResultTTL
	planner.Geocodes.TTL = cfg.GeocodeTTL
	planner.Geocodes.CountryScope = cfg.CountryScope

	router := api.NewRouter(planner)

	// Timeouts are tuned for cold-cache planning (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		log.Fatal(err)
	case <-ctx.Done():
		log.Println("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
