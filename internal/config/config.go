package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	DatabaseURL string
	RedisAddr   string

	ORSAPIKey  string
	ORSBaseURL string

	// Country scope passed to the geocoder.
	CountryScope string

	// Vehicle model for the fuel optimizer.
	RangeMiles   float64
	MPG          float64
	DefaultPrice float64

	// Cache TTLs.
	ResultTTL  time.Duration
	GeocodeTTL time.Duration

	// Station ingestion input for dbtool.
	CSVPath string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	cfg.RedisAddr = getenvDefault("REDIS_ADDR", "localhost:6379")

	cfg.ORSAPIKey = os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(cfg.ORSAPIKey) == "" {
		return nil, errors.New("ORS_API_KEY is required")
	}
	cfg.ORSBaseURL = getenvDefault("ORS_BASE_URL", "https://api.openrouteservice.org")

	cfg.CountryScope = getenvDefault("GEOCODE_COUNTRY", "USA")

	cfg.RangeMiles = getenvFloat("FUEL_RANGE_MILES", 500)
	cfg.MPG = getenvFloat("FUEL_MPG", 10)
	cfg.DefaultPrice = getenvFloat("FUEL_DEFAULT_PRICE", 3.50)

	var err error
	cfg.ResultTTL, err = getenvDuration("RESULT_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.GeocodeTTL, err = getenvDuration("GEOCODE_CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.CSVPath = getenvDefault("CSV_PATH", "fuel_prices.csv")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
