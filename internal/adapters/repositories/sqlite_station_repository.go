package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// SQLite-backed implementation of the StationRepository and StationStore
// ports.
type SqliteStationRepository struct{ DB *sql.DB }

func NewSqliteStationRepository(db *sql.DB) *SqliteStationRepository {
	return &SqliteStationRepository{DB: db}
}

// Return all stations whose location has been resolved.
func (s *SqliteStationRepository) ListGeocoded(ctx context.Context) ([]domain.Station, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite station repository: DB is nil")
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
	WHERE geocoded = 1
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
func (s *SqliteStationRepository) Counts(ctx context.Context) (ports.StationCounts, error) {
	if s.DB == nil {
		return ports.StationCounts{}, errors.New("sqlite station repository: DB is nil")
	}

	query := `
	SELECT
		COUNT(*),
		COALESCE(SUM(geocoded), 0)
	FROM fuel_stations;
	`
	var counts ports.StationCounts
	if err := s.DB.QueryRowContext(ctx, query).Scan(&counts.Total, &counts.Geocoded); err != nil {
		return ports.StationCounts{}, fmt.Errorf("station counts: %w", err)
	}

	return counts, nil
}

// Replace the whole catalog with the given stations. Coordinates and the
// geocoded flag are reset; the geocoding pipeline fills them back in.
func (s *SqliteStationRepository) ReplaceAll(ctx context.Context, stations []domain.Station) error {
	if s.DB == nil {
		return errors.New("sqlite station repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fuel_stations;`); err != nil {
		return fmt.Errorf("replace stations: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR IGNORE INTO fuel_stations (
		opis_truckstop_id,
		truckstop_name,
		address,
		city,
		state,
		rack_id,
		retail_price,
		geocoded
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, 0);
	`)
	if err != nil {
		return fmt.Errorf("replace stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range stations {
		if strings.TrimSpace(st.Name) == "" {
			return fmt.Errorf("replace stations: opis_id=%d has empty name", st.OPISID)
		}

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
func (s *SqliteStationRepository) ListPendingLocations(ctx context.Context) ([]domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite station repository: DB is nil")
	}

	query := `
	SELECT DISTINCT city, state
	FROM fuel_stations
	WHERE geocoded = 0
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
func (s *SqliteStationRepository) SetLocation(ctx context.Context, loc domain.Location, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("sqlite station repository: DB is nil")
	}

	query := `
	UPDATE fuel_stations
	SET latitude = ?, longitude = ?, geocoded = 1
	WHERE city = ? AND state = ?;
	`
	if _, err := s.DB.ExecContext(ctx, query, c.Lat, c.Lon, loc.City, loc.State); err != nil {
		return fmt.Errorf("set location %s, %s: %w", loc.City, loc.State, err)
	}

	return nil
}
