package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

// Postgres-backed implementation of the StationRepository and StationStore
// ports, used when the service runs against a shared database instead of a
// local SQLite file.
type PostgresStationRepository struct{ DB *sql.DB }

func NewPostgresStationRepository(db *sql.DB) *PostgresStationRepository {
	return &PostgresStationRepository{DB: db}
}

// Initialize the Postgres schema.
func InitSchemaPostgres(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS fuel_stations (
			id BIGSERIAL PRIMARY KEY,
			opis_truckstop_id INTEGER NOT NULL,
			truckstop_name TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			rack_id INTEGER NOT NULL,
			retail_price DOUBLE PRECISION NOT NULL,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			geocoded BOOLEAN NOT NULL DEFAULT FALSE,
			UNIQUE (truckstop_name, address, city, state)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS geocode_cache (
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (city, state)
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_fuel_stations_geocoded
		ON fuel_stations(geocoded);
		`,
	}

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}

// Return all stations whose location has been resolved.
func (s *PostgresStationRepository) ListGeocoded(ctx context.Context) (_ []domain.Station, err error) {
	defer obs.Time(ctx, "stations.ListGeocoded")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres station repository: DB is nil")
	}

	query := `
	SELECT
		id,
		opis_truckstop_id,
		truckstop_name,
		address,
		city,
		state,
		rack_id,
		retail_price,
		latitude,
		longitude
	FROM fuel_stations
	WHERE geocoded
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list geocoded stations: query fuel_stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.Station, 0, 1024)
	for rows.Next() {
		var st domain.Station
		err := rows.Scan(
			&st.ID, &st.OPISID, &st.Name, &st.Address, &st.City, &st.State,
			&st.RackID, &st.RetailPrice, &st.Latitude, &st.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("list geocoded stations: scan row: %w", err)
		}
		st.Geocoded = true
		stations = append(stations, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list geocoded stations: row iteration: %w", err)
	}

	return stations, nil
}

// Report total and geocoded station counts for the health surface.
func (s *PostgresStationRepository) Counts(ctx context.Context) (_ ports.StationCounts, err error) {
	defer obs.Time(ctx, "stations.Counts")(&err)

	if s.DB == nil {
		return ports.StationCounts{}, errors.New("postgres station repository: DB is nil")
	}

	query := `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE geocoded)
	FROM fuel_stations;
	`
	var counts ports.StationCounts
	if err := s.DB.QueryRowContext(ctx, query).Scan(&counts.Total, &counts.Geocoded); err != nil {
		return ports.StationCounts{}, fmt.Errorf("station counts: %w", err)
	}

	return counts, nil
}

// Replace the whole catalog with the given stations.
func (s *PostgresStationRepository) ReplaceAll(ctx context.Context, stations []domain.Station) error {
	if s.DB == nil {
		return errors.New("postgres station repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `TRUNCATE fuel_stations;`); err != nil {
		return fmt.Errorf("replace stations: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO fuel_stations (
		opis_truckstop_id,
		truckstop_name,
		address,
		city,
		state,
		rack_id,
		retail_price,
		geocoded
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
	ON CONFLICT (truckstop_name, address, city, state) DO NOTHING;
	`)
	if err != nil {
		return fmt.Errorf("replace stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range stations {
		_, err := stmt.ExecContext(ctx, st.OPISID, st.Name, st.Address, st.City, st.State, st.RackID, st.RetailPrice)
		if err != nil {
			return fmt.Errorf("replace stations: insert opis_id=%d: %w", st.OPISID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace stations: commit tx: %w", err)
	}

	return nil
}

// Distinct (city, state) pairs of stations still awaiting geocoding.
func (s *PostgresStationRepository) ListPendingLocations(ctx context.Context) ([]domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("postgres station repository: DB is nil")
	}

	query := `
	SELECT DISTINCT city, state
	FROM fuel_stations
	WHERE NOT geocoded
	ORDER BY state, city;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending locations: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0, 64)
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.City, &loc.State); err != nil {
			return nil, fmt.Errorf("list pending locations: scan row: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending locations: row iteration: %w", err)
	}

	return locations, nil
}

// Record coordinates for every station at the given location and mark
// them geocoded.
func (s *PostgresStationRepository) SetLocation(ctx context.Context, loc domain.Location, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("postgres station repository: DB is nil")
	}

	query := `
	UPDATE fuel_stations
	SET latitude = $1, longitude = $2, geocoded = TRUE
	WHERE city = $3 AND state = $4;
	`
	if _, err := s.DB.ExecContext(ctx, query, c.Lat, c.Lon, loc.City, loc.State); err != nil {
		return fmt.Errorf("set location %s, %s: %w", loc.City, loc.State, err)
	}

	return nil
}
