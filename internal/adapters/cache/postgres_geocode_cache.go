package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
)

// Postgres flavor of the (city, state) -> coordinates cache.
type PostgresGeocodeCache struct{ DB *sql.DB }

func NewPostgresGeocodeCache(db *sql.DB) *PostgresGeocodeCache {
	return &PostgresGeocodeCache{DB: db}
}

func (c *PostgresGeocodeCache) Get(ctx context.Context, loc domain.Location) (domain.Coordinates, bool, error) {
	if c.DB == nil {
		return domain.Coordinates{}, false, errors.New("postgres geocode cache: DB is nil")
	}

	query := `
	SELECT lon, lat
	FROM geocode_cache
	WHERE city = $1 AND state = $2;
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

func (c *PostgresGeocodeCache) Put(ctx context.Context, loc domain.Location, coords domain.Coordinates) error {
	if c.DB == nil {
		return errors.New("postgres geocode cache: DB is nil")
	}

	query := `
	INSERT INTO geocode_cache (city, state, lon, lat)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (city, state) DO UPDATE SET lon = excluded.lon, lat = excluded.lat;
	`
	if _, err := c.DB.ExecContext(ctx, query, loc.City, loc.State, coords.Lon, coords.Lat); err != nil {
		return fmt.Errorf("geocode cache put %s, %s: %w", loc.City, loc.State, err)
	}

	return nil
}
