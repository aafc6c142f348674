package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

const milesPerDegreeLat = 3959.0 * math.Pi / 180

type stubRepo struct {
	stations []domain.Station
	countErr error
}

func (r *stubRepo) ListGeocoded(ctx context.Context) ([]domain.Station, error) {
	return r.stations, nil
}

func (r *stubRepo) Counts(ctx context.Context) (ports.StationCounts, error) {
	if r.countErr != nil {
		return ports.StationCounts{}, r.countErr
	}
	geocoded := 0
	for _, s := range r.stations {
		if s.Geocoded {
			geocoded++
		}
	}
	return ports.StationCounts{Total: len(r.stations), Geocoded: geocoded}, nil
}

// Route running due north along longitude -100 from latitude 30.
func meridianRoute(distanceMiles float64) ports.RouteResult {
	degrees := distanceMiles / milesPerDegreeLat
	coords := [][]float64{}
	for lat := 30.0; lat < 30.0+degrees; lat++ {
		coords = append(coords, []float64{-100, lat})
	}
	coords = append(coords, []float64{-100, 30.0 + degrees})

	return ports.RouteResult{
		DistanceMiles: distanceMiles,
		DurationHours: distanceMiles / 55,
		Geometry:      domain.LineString{Type: "LineString", Coordinates: coords},
	}
}

func stationAtChainage(name string, miles, price float64) domain.Station {
	return domain.Station{
		Name:        name,
		Address:     "I-27",
		City:        "LUBBOCK",
		State:       "TX",
		RetailPrice: price,
		Latitude:    30.0 + miles/milesPerDegreeLat,
		Longitude:   -100,
		Geocoded:    true,
	}
}

func newTestPlanHandler(repo *stubRepo, provider *routing.MockProvider) *PlanHandler {
	return &PlanHandler{
		Repo:                   repo,
		Routing:                provider,
		Vehicle:                domain.Vehicle{RangeMiles: 500, MPG: 10},
		CorridorHalfWidthMiles: 15,
	}
}

func postRoute(t *testing.T, h *PlanHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestPlanHandlerSuccess(t *testing.T) {
	repo := &stubRepo{stations: []domain.Station{
		stationAtChainage("CHEAP DIESEL", 450, 2.8456),
	}}
	provider := &routing.MockProvider{
		Coords: map[string]domain.Coordinates{
			"Dallas, TX":  {Lon: -100, Lat: 30},
			"Chicago, IL": {Lon: -100, Lat: 44},
		},
		Result: meridianRoute(900),
	}

	rec := postRoute(t, newTestPlanHandler(repo, provider), `{"start": "Dallas, TX", "end": "Chicago, IL"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.RouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.OptimizationMethod != domain.MethodDynamicProgramming {
		t.Fatalf("optimization_method = %q", res.OptimizationMethod)
	}
	if res.StationsConsidered != 1 {
		t.Fatalf("stations_considered = %d, want 1", res.StationsConsidered)
	}
	if len(res.FuelStops) != 1 {
		t.Fatalf("fuel_stops = %+v, want one stop", res.FuelStops)
	}

	stop := res.FuelStops[0]
	if stop.Name != "CHEAP DIESEL" {
		t.Fatalf("stop name = %q", stop.Name)
	}
	if stop.PricePerGallon != 2.846 {
		t.Fatalf("price_per_gallon = %v, want 2.846", stop.PricePerGallon)
	}
	if stop.GallonsNeeded != 50 {
		t.Fatalf("gallons_needed = %v, want 50", stop.GallonsNeeded)
	}
	if res.TotalGallons != 90 {
		t.Fatalf("total_gallons = %v, want 90", res.TotalGallons)
	}
	if res.StartLocation.Address != "Dallas, TX" {
		t.Fatalf("start_location = %+v", res.StartLocation)
	}
}

func TestPlanHandlerValidation(t *testing.T) {
	h := newTestPlanHandler(&stubRepo{}, &routing.MockProvider{})

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"start":`},
		{"unknown field", `{"start": "A", "end": "B", "via": "C"}`},
		{"two objects", `{"start": "A", "end": "B"}{}`},
		{"missing end", `{"start": "A"}`},
		{"blank start", `{"start": "   ", "end": "B"}`},
		{"oversized", fmt.Sprintf(`{"start": %q, "end": "B"}`, strings.Repeat("x", 201))},
	}

	for _, tc := range cases {
		if rec := postRoute(t, h, tc.body); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestPlanHandlerGeocodeFailure(t *testing.T) {
	provider := &routing.MockProvider{Coords: map[string]domain.Coordinates{}}
	h := newTestPlanHandler(&stubRepo{}, provider)

	rec := postRoute(t, h, `{"start": "Nowhere", "end": "Elsewhere"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlanHandlerRouteUnavailable(t *testing.T) {
	provider := &routing.MockProvider{
		Coords: map[string]domain.Coordinates{
			"A": {Lon: -100, Lat: 30},
			"B": {Lon: -100, Lat: 44},
		},
		RouteErr: fmt.Errorf("osrm: %w", ports.ErrRouteUnavailable),
	}
	h := newTestPlanHandler(&stubRepo{}, provider)

	rec := postRoute(t, h, `{"start": "A", "end": "B"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	repo := &stubRepo{stations: []domain.Station{
		{Name: "A", Geocoded: true},
		{Name: "B"},
	}}
	h := &HealthHandler{Repo: repo}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res dto.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != "healthy" || res.Database.TotalStations != 2 || res.Database.PendingGeocoding != 1 {
		t.Fatalf("response = %+v", res)
	}
}

func TestHealthHandlerDatabaseDown(t *testing.T) {
	h := &HealthHandler{Repo: &stubRepo{countErr: fmt.Errorf("db gone")}}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
