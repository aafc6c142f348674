package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
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
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		opis_truckstop_id INTEGER NOT NULL,
		truckstop_name TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		rack_id INTEGER NOT NULL,
		retail_price REAL NOT NULL,
		latitude REAL,
		longitude REAL,
		geocoded INTEGER NOT NULL DEFAULT 0,
		UNIQUE (truckstop_name, address, city, state)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        city TEXT NOT NULL,
        state TEXT NOT NULL,
        lon REAL NOT NULL,
        lat REAL NOT NULL,
        PRIMARY KEY (city, state)
    );
	`

	createGeocodedIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_fuel_stations_geocoded
    ON fuel_stations(geocoded);
	`

	createLocationIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_fuel_stations_city_state
    ON fuel_stations(city, state);
	`

	statements := []string{
		createStationsQuery,
		createGeocodeCacheQuery,
		createGeocodedIndexQuery,
		createLocationIndexQuery,
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
