package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/metrics"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	database, repo, err := openStationRepo(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	provider := routing.NewClient(cfg.OSRMBaseURL, cfg.NominatimBaseURL, cfg.UserAgent)
	collector := metrics.NewCollector()

	handler := api.NewRouter(api.RouterConfig{
		Repo:    repo,
		Routing: provider,
		Vehicle: domain.Vehicle{
			RangeMiles: cfg.VehicleRangeMiles,
			MPG:        cfg.FuelEfficiencyMPG,
		},
		CorridorHalfWidthMiles: cfg.CorridorHalfWidthMiles,
		Metrics:                collector,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("listening addr=%s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// openStationRepo picks Postgres when DATABASE_URL is set, local SQLite
// otherwise.
func openStationRepo(cfg config.Config) (*sql.DB, ports.StationRepository, error) {
	if cfg.DatabaseURL != "" {
		database, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
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
