package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

type stubStationRepo struct {
	stations []domain.Station
}

func (r *stubStationRepo) ListGeocoded(ctx context.Context) ([]domain.Station, error) {
	return r.stations, nil
}

func (r *stubStationRepo) Counts(ctx context.Context) (ports.StationCounts, error) {
	return ports.StationCounts{Total: len(r.stations), Geocoded: len(r.stations)}, nil
}

// latAtChainage places a point on the test meridian a given number of
// miles from its southern end.
func latAtChainage(startLat, miles float64) float64 {
	return startLat + miles/milesPerDegree
}

func testRouteResult(distanceMiles float64) ports.RouteResult {
	// Straight line north along longitude -100, one vertex per degree.
	coords := make([][]float64, 0, 20)
	endLat := latAtChainage(30, distanceMiles)
	for lat := 30.0; lat < endLat; lat++ {
		coords = append(coords, []float64{-100, lat})
	}
	coords = append(coords, []float64{-100, endLat})

	return ports.RouteResult{
		DistanceMiles: distanceMiles,
		DurationHours: 18.46,
		Geometry:      domain.LineString{Type: "LineString", Coordinates: coords},
	}
}

func TestPlanTripDynamicProgramming(t *testing.T) {
	provider := &routing.MockProvider{
		Coords: map[string]domain.Coordinates{
			"New York, NY":  {Lon: -100, Lat: 30},
			"Somewhere Far": {Lon: -100, Lat: 47.4},
		},
		Result: testRouteResult(1200),
	}

	repo := &stubStationRepo{stations: []domain.Station{
		{ID: 1, Name: "A", City: "Alpha", State: "TX", RetailPrice: 3.00,
			Latitude: latAtChainage(30, 100), Longitude: -100, Geocoded: true},
		{ID: 2, Name: "B", City: "Bravo", State: "KS", RetailPrice: 2.80,
			Latitude: latAtChainage(30, 450), Longitude: -100, Geocoded: true},
		{ID: 3, Name: "C", City: "Charlie", State: "NE", RetailPrice: 2.90,
			Latitude: latAtChainage(30, 900), Longitude: -100, Geocoded: true},
		{ID: 4, Name: "OFF ROUTE", City: "Delta", State: "MO", RetailPrice: 2.00,
			Latitude: 36, Longitude: -90, Geocoded: true},
	}}

	req := PlanTripRequest{
		Start:   "New York, NY",
		End:     "Somewhere Far",
		Vehicle: domain.Vehicle{RangeMiles: 500, MPG: 10},
	}

	plan, err := PlanTrip(context.Background(), req, repo, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Method != domain.MethodDynamicProgramming {
		t.Fatalf("method = %q, want %q", plan.Method, domain.MethodDynamicProgramming)
	}
	if plan.StationsConsidered != 3 {
		t.Fatalf("stations considered = %d, want 3", plan.StationsConsidered)
	}
	if len(plan.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d: %+v", len(plan.Stops), plan.Stops)
	}
	if plan.Stops[0].Station.Name != "B" || plan.Stops[1].Station.Name != "C" {
		t.Fatalf("unexpected stops: %q, %q", plan.Stops[0].Station.Name, plan.Stops[1].Station.Name)
	}
	if math.Abs(plan.Stops[0].ChainageMiles-450) > 2 {
		t.Errorf("first stop chainage = %.2f, want about 450", plan.Stops[0].ChainageMiles)
	}
	if plan.TotalFuelCost != 285.00 {
		t.Errorf("total cost = %.2f, want 285.00", plan.TotalFuelCost)
	}
	if plan.TotalGallons != 120.00 {
		t.Errorf("total gallons = %.2f, want 120.00", plan.TotalGallons)
	}
	if plan.Start.Coordinate.Lat != 30 || plan.End.Coordinate.Lat != 47.4 {
		t.Errorf("endpoint coordinates not propagated: %+v, %+v", plan.Start, plan.End)
	}
}

func TestPlanTripEmptyCorridor(t *testing.T) {
	provider := &routing.MockProvider{
		Coords: map[string]domain.Coordinates{
			"Here":  {Lon: -100, Lat: 30},
			"There": {Lon: -100, Lat: 47.4},
		},
		Result: testRouteResult(1200),
	}

	// Every station is far off the route.
	repo := &stubStationRepo{stations: []domain.Station{
		{ID: 1, Name: "REMOTE", RetailPrice: 2.50, Latitude: 36, Longitude: -80, Geocoded: true},
	}}

	req := PlanTripRequest{
		Start:   "Here",
		End:     "There",
		Vehicle: domain.Vehicle{RangeMiles: 500, MPG: 10},
	}

	plan, err := PlanTrip(context.Background(), req, repo, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Method != domain.MethodNoStations {
		t.Fatalf("method = %q, want %q", plan.Method, domain.MethodNoStations)
	}
	if len(plan.Stops) != 0 || plan.TotalFuelCost != 0 {
		t.Fatalf("expected an empty plan, got %+v", plan)
	}
	if plan.TotalGallons != 120.00 {
		t.Errorf("total gallons = %.2f, want 120.00 regardless of stops", plan.TotalGallons)
	}
}

func TestPlanTripGreedyFallbackLabel(t *testing.T) {
	provider := &routing.MockProvider{
		Coords: map[string]domain.Coordinates{
			"Here":  {Lon: -100, Lat: 30},
			"There": {Lon: -100, Lat: 47.4},
		},
		Result: testRouteResult(1200),
	}

	// One station at ~460 miles leaves a 740 mile uncovered tail.
	repo := &stubStationRepo{stations: []domain.Station{
		{ID: 1, Name: "LONE", RetailPrice: 3.00,
			Latitude: latAtChainage(30, 460), Longitude: -100, Geocoded: true},
	}}

	req := PlanTripRequest{
		Start:   "Here",
		End:     "There",
		Vehicle: domain.Vehicle{RangeMiles: 500, MPG: 10},
	}

	plan, err := PlanTrip(context.Background(), req, repo, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Method != domain.MethodGreedyFallback {
		t.Fatalf("method = %q, want %q", plan.Method, domain.MethodGreedyFallback)
	}
	if len(plan.Stops) != 1 {
		t.Fatalf("expected 1 best-effort stop, got %d", len(plan.Stops))
	}
}

func TestPlanTripGeocodeFailure(t *testing.T) {
	provider := &routing.MockProvider{
		Coords: map[string]domain.Coordinates{"Here": {Lon: -100, Lat: 30}},
	}
	repo := &stubStationRepo{}

	req := PlanTripRequest{
		Start:   "Here",
		End:     "Nowhere, ZZ",
		Vehicle: domain.Vehicle{RangeMiles: 500, MPG: 10},
	}

	_, err := PlanTrip(context.Background(), req, repo, provider)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ports.ErrAddressNotFound) {
		t.Fatalf("error %v does not wrap ErrAddressNotFound", err)
	}
}
