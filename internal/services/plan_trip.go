package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

type PlanTripRequest struct {
	Start                  string
	End                    string
	Vehicle                domain.Vehicle
	CorridorHalfWidthMiles float64
}

// PlanTrip orchestrates a single planning request: geocode both endpoints,
// fetch the route, corridor-filter the station catalog, and compute the
// refuel schedule. Given immutable inputs the result is deterministic, and
// concurrent requests share no mutable state.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	repo ports.StationRepository,
	routing ports.RoutingProvider,
) (*domain.TripPlan, error) {
	if strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.End) == "" {
		return nil, errors.New("plan trip: start and end must be non-empty")
	}
	if req.Vehicle.RangeMiles <= 0 || req.Vehicle.MPG <= 0 {
		return nil, errors.New("plan trip: vehicle range and efficiency must be positive")
	}
	halfWidth := req.CorridorHalfWidthMiles
	if halfWidth <= 0 {
		halfWidth = DefaultCorridorHalfWidthMiles
	}

	startCoord, err := routing.Geocode(ctx, req.Start)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode start %q: %w", req.Start, err)
	}

	endCoord, err := routing.Geocode(ctx, req.End)
	if err != nil {
		return nil, fmt.Errorf("plan trip: geocode end %q: %w", req.End, err)
	}

	route, err := routing.Route(ctx, startCoord, endCoord)
	if err != nil {
		return nil, fmt.Errorf("plan trip: route %q -> %q: %w", req.Start, req.End, err)
	}

	stations, err := repo.ListGeocoded(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan trip: list stations: %w", err)
	}

	onRoute := FilterOnRoute(route.Geometry.Points(), stations, halfWidth)

	// The polyline arc length can drift slightly from the routing engine's
	// reported distance; clamp so the virtual end node stays last.
	for i := range onRoute {
		if onRoute[i].ChainageMiles > route.DistanceMiles {
			onRoute[i].ChainageMiles = route.DistanceMiles
		}
	}

	plan := &domain.TripPlan{
		Route: domain.RouteInfo{
			DistanceMiles: route.DistanceMiles,
			DurationHours: route.DurationHours,
			Geometry:      route.Geometry,
		},
		Stops:              []domain.FuelStop{},
		TotalGallons:       round2(route.DistanceMiles / req.Vehicle.MPG),
		Start:              domain.Endpoint{Address: req.Start, Coordinate: startCoord},
		End:                domain.Endpoint{Address: req.End, Coordinate: endCoord},
		Method:             domain.MethodNoStations,
		StationsConsidered: len(onRoute),
	}

	if len(onRoute) == 0 {
		return plan, nil
	}

	stops, feasible := PlanRefuels(route.DistanceMiles, onRoute, req.Vehicle)
	plan.Stops = stops
	plan.Method = domain.MethodDynamicProgramming
	if !feasible {
		plan.Method = domain.MethodGreedyFallback
		if gap := maxGapMiles(route.DistanceMiles, stops); gap > req.Vehicle.RangeMiles {
			log.Printf(
				"greedy fallback exceeds range: gap=%.1fmi range=%.0fmi start=%q end=%q",
				gap, req.Vehicle.RangeMiles, req.Start, req.End,
			)
		}
	}

	total := 0.0
	for _, s := range stops {
		total += s.Cost
	}
	plan.TotalFuelCost = round2(total)

	return plan, nil
}

// maxGapMiles is the largest leg between consecutive positions in
// {0} ∪ stop chainages ∪ {route end}.
func maxGapMiles(routeDistanceMiles float64, stops []domain.FuelStop) float64 {
	prev, max := 0.0, 0.0
	for _, s := range stops {
		if g := s.ChainageMiles - prev; g > max {
			max = g
		}
		prev = s.ChainageMiles
	}
	if g := routeDistanceMiles - prev; g > max {
		max = g
	}
	return max
}
