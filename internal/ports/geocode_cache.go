package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Port: cache of geocoding results keyed by (city, state), consulted by the
// ingestion pipeline before issuing remote lookups.
type GeocodeCache interface {
	// Fetch cached coordinates. The second return reports a hit.
	Get(ctx context.Context, loc domain.Location) (domain.Coordinates, bool, error)
	// Store coordinates for a location.
	Put(ctx context.Context, loc domain.Location, c domain.Coordinates) error
}
