package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
)

// SQLite-backed (city, state) -> coordinates cache. Shares the database
// file with the station tables so the ingest tool needs no extra
// infrastructure.
type SqliteGeocodeCache struct{ DB *sql.DB }

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

func (c *SqliteGeocodeCache) Get(ctx context.Context, loc domain.Location) (domain.Coordinates, bool, error) {
	if c.DB == nil {
		return domain.Coordinates{}, false, errors.New("sqlite geocode cache: DB is nil")
	}

	query := `
	SELECT lon, lat
	FROM geocode_cache
	WHERE city = ? AND state = ?;
	`
	var coords domain.Coordinates
	err := c.DB.QueryRowContext(ctx, query, loc.City, loc.State).Scan(&coords.Lon, &coords.Lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode cache get %s, %s: %w", loc.City, loc.State, err)
	}

	return coords, true, nil
}

func (c *SqliteGeocodeCache) Put(ctx context.Context, loc domain.Location, coords domain.Coordinates) error {
	if c.DB == nil {
		return errors.New("sqlite geocode cache: DB is nil")
	}

	query := `
	INSERT INTO geocode_cache (city, state, lon, lat)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (city, state) DO UPDATE SET lon = excluded.lon, lat = excluded.lat;
	`
	if _, err := c.DB.ExecContext(ctx, query, loc.City, loc.State, coords.Lon, coords.Lat); err != nil {
		return fmt.Errorf("geocode cache put %s, %s: %w", loc.City, loc.State, err)
	}

	return nil
}
