// Command stationtool loads an OPIS-style fuel price CSV into the station
// catalog and resolves station coordinates through the geocoding pipeline.
//
// Usage:
//
//	stationtool -csv prices.csv                 # load and geocode
//	stationtool -csv prices.csv -skip-geocoding # load only
//	stationtool -geocode-only                   # resume pending geocoding
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/ingest"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
)

func main() {
	csvPath := flag.String("csv", "", "path to the fuel price CSV to load")
	skipGeocoding := flag.Bool("skip-geocoding", false, "load the CSV without geocoding")
	geocodeOnly := flag.Bool("geocode-only", false, "geocode pending stations without loading a CSV")
	flag.Parse()

	if *csvPath == "" && !*geocodeOnly {
		flag.Usage()
		os.Exit(2)
	}
	if *skipGeocoding && *geocodeOnly {
		log.Fatal("-skip-geocoding and -geocode-only are mutually exclusive")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	database, store, err := openStationStore(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *csvPath != "" {
		stations, err := ingest.LoadCSV(*csvPath)
		if err != nil {
			log.Fatalf("load csv: %v", err)
		}
		if err := store.ReplaceAll(ctx, stations); err != nil {
			log.Fatalf("replace stations: %v", err)
		}
		log.Printf("loaded csv=%s stations=%d", *csvPath, len(stations))
	}

	if *skipGeocoding {
		return
	}

	geocodeCache, err := openGeocodeCache(cfg, database)
	if err != nil {
		log.Fatalf("open geocode cache: %v", err)
	}

	geocoder := routing.NewClient(cfg.OSRMBaseURL, cfg.NominatimBaseURL, cfg.UserAgent)
	pipeline := ingest.NewPipeline(store, geocodeCache, geocoder)
	pipeline.Interval = cfg.GeocodeInterval

	stats, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatalf("geocode run: %v (resolved=%d failed=%d)", err, stats.Resolved, stats.Failed)
	}

	log.Printf(
		"geocoding done resolved=%d failed=%d skipped=%d cache_hits=%d",
		stats.Resolved, stats.Failed, stats.Skipped, stats.CacheHits,
	)
}

func openStationStore(cfg config.Config) (*sql.DB, ports.StationStore, error) {
	if cfg.DatabaseURL != "" {
		database, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchemaPostgres(context.Background(), database); err != nil {
			database.Close()
			return nil, nil, err
		}
		return database, repositories.NewPostgresStationRepository(database), nil
	}

	database, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(database); err != nil {
		database.Close()
		return nil, nil, err
	}
	return database, repositories.NewSqliteStationRepository(database), nil
}

// openGeocodeCache prefers Redis when REDIS_URL is set so repeated ingest
// runs share lookups; otherwise the cache lives next to the stations.
func openGeocodeCache(cfg config.Config, database *sql.DB) (ports.GeocodeCache, error) {
	if cfg.RedisURL == "" {
		if cfg.DatabaseURL != "" {
			return cache.NewPostgresGeocodeCache(database), nil
		}
		return cache.NewSqliteGeocodeCache(database), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return cache.NewRedisGeocodeCache(redis.NewClient(opts), 30*24*time.Hour), nil
}
