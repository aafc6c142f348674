package routing

import (
	"context"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// In-memory RoutingProvider for tests.
type MockProvider struct {
	Coords   map[string]domain.Coordinates
	Result   ports.RouteResult
	RouteErr error
}

func (m *MockProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok := m.Coords[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrAddressNotFound)
	}
	return c, nil
}

func (m *MockProvider) Route(ctx context.Context, start, end domain.Coordinates) (ports.RouteResult, error) {
	if m.RouteErr != nil {
		return ports.RouteResult{}, m.RouteErr
	}
	return m.Result, nil
}
