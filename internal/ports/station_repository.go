package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Catalog counts reported by the health surface.
type StationCounts struct {
	Total    int
	Geocoded int
}

// Port: read-side boundary of the fuel station catalog.
type StationRepository interface {
	// Retrieve all stations whose location has been resolved.
	// Ordering is irrelevant; the corridor filter re-sorts by chainage.
	ListGeocoded(ctx context.Context) ([]domain.Station, error)
	// Report total and geocoded station counts.
	Counts(ctx context.Context) (StationCounts, error)
}

// Port: write-side boundary used by the offline ingestion job.
type StationStore interface {
	// Replace the whole catalog with the given stations.
	ReplaceAll(ctx context.Context, stations []domain.Station) error
	// Distinct (city, state) pairs of stations still awaiting geocoding.
	ListPendingLocations(ctx context.Context) ([]domain.Location, error)
	// Record coordinates for every station at the given location and mark
	// them geocoded.
	SetLocation(ctx context.Context, loc domain.Location, c domain.Coordinates) error
}
