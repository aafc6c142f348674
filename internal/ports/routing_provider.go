package ports

import (
	"context"
	"errors"

	"fuel-route-service/internal/domain"
)

// Boundary error taxonomy for the routing/geocoding collaborators.
// Handlers map these to client errors; everything else is a server error.
var (
	// The geocoder returned no result for the address.
	ErrAddressNotFound = errors.New("address not found")
	// The routing engine returned a non-success result or could not be reached.
	ErrRouteUnavailable = errors.New("routing service unavailable")
	// Transient geocoder failure (timeout, rate limit, 5xx). The ingestion
	// retry policy retries these; all other geocoder errors are permanent.
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
)

// Result of a route calculation between two coordinate points.
type RouteResult struct {
	DistanceMiles float64
	DurationHours float64
	Geometry      domain.LineString
}

// Contract for resolving an address string to coordinates.
type Geocoder interface {
	// Resolve an address to coordinates. Returns ErrAddressNotFound (wrapped)
	// when the address cannot be resolved.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Contract for the external routing collaborator: geocoding plus a single
// route call returning distance, duration, and the route polyline.
type RoutingProvider interface {
	Geocoder
	// Compute the driving route between two points.
	Route(ctx context.Context, start, end domain.Coordinates) (RouteResult, error)
}
