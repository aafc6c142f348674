package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	Port             string
	DBPath           string
	DatabaseURL      string
	RedisURL         string
	OSRMBaseURL      string
	NominatimBaseURL string
	UserAgent        string

	VehicleRangeMiles      float64
	FuelEfficiencyMPG      float64
	CorridorHalfWidthMiles float64

	GeocodeInterval time.Duration
}

// Load reads configuration from the environment, after loading a .env
// file when one is present. Missing values fall back to defaults that
// suit local development.
func Load() (Config, error) {
	// Absence of a .env file is the normal case in production.
	_ = godotenv.Load()

	cfg := Config{
		Port:             envOr("PORT", "8080"),
		DBPath:           envOr("DB_PATH", "fuel_routes.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		OSRMBaseURL:      envOr("OSRM_BASE_URL", "https://router.project-osrm.org/route/v1"),
		NominatimBaseURL: envOr("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		UserAgent:        envOr("GEOCODER_USER_AGENT", "fuel-route-service/2.0"),
	}

	var err error
	if cfg.VehicleRangeMiles, err = envFloat("VEHICLE_RANGE_MILES", 500); err != nil {
		return Config{}, err
	}
	if cfg.FuelEfficiencyMPG, err = envFloat("FUEL_EFFICIENCY_MPG", 10); err != nil {
		return Config{}, err
	}
	if cfg.CorridorHalfWidthMiles, err = envFloat("CORRIDOR_HALF_WIDTH_MILES", 15); err != nil {
		return Config{}, err
	}
	if cfg.GeocodeInterval, err = envDuration("GEOCODE_INTERVAL", time.Second); err != nil {
		return Config{}, err
	}

	if cfg.VehicleRangeMiles <= 0 {
		return Config{}, fmt.Errorf("config: VEHICLE_RANGE_MILES must be positive, got %v", cfg.VehicleRangeMiles)
	}
	if cfg.FuelEfficiencyMPG <= 0 {
		return Config{}, fmt.Errorf("config: FUEL_EFFICIENCY_MPG must be positive, got %v", cfg.FuelEfficiencyMPG)
	}
	if cfg.CorridorHalfWidthMiles <= 0 {
		return Config{}, fmt.Errorf("config: CORRIDOR_HALF_WIDTH_MILES must be positive, got %v", cfg.CorridorHalfWidthMiles)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return d, nil
}
