package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/metrics"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
)

const maxAddressLen = 200

type PlanHandler struct {
	Repo                   ports.StationRepository
	Routing                ports.RoutingProvider
	Vehicle                domain.Vehicle
	CorridorHalfWidthMiles float64
	Metrics                *metrics.Collector
}

// Plan computes the cheapest set of fuel stops between two addresses.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.Metrics != nil {
		h.Metrics.PlanRequests.Inc()
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	startAddr := strings.TrimSpace(req.Start)
	endAddr := strings.TrimSpace(req.End)
	if startAddr == "" || endAddr == "" {
		writeError(w, r, http.StatusBadRequest, "start and end are required")
		return
	}
	if len(startAddr) > maxAddressLen || len(endAddr) > maxAddressLen {
		writeError(w, r, http.StatusBadRequest, "start and end must be at most 200 characters")
		return
	}

	svcReq := services.PlanTripRequest{
		Start:                  startAddr,
		End:                    endAddr,
		Vehicle:                h.Vehicle,
		CorridorHalfWidthMiles: h.CorridorHalfWidthMiles,
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Repo, h.Routing)
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.PlanErrors.Inc()
		}

		switch {
		case errors.Is(err, ports.ErrAddressNotFound):
			writeError(w, r, http.StatusBadRequest, "could not geocode start or end address")
		case errors.Is(err, ports.ErrRouteUnavailable), errors.Is(err, ports.ErrGeocoderUnavailable):
			writeError(w, r, http.StatusBadRequest, "could not compute a route between the addresses")
		default:
			log.Printf("plan trip failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	elapsed := time.Since(start)
	if h.Metrics != nil {
		h.Metrics.PlanDuration.Observe(elapsed.Seconds())
		h.Metrics.CorridorMatches.Observe(float64(plan.StationsConsidered))
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(plan, elapsed))
}

func toRouteResponse(plan *domain.TripPlan, elapsed time.Duration) dto.RouteResponse {
	stops := make([]dto.FuelStopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.FuelStopResponse{
			Name:           s.Station.Name,
			Address:        s.Station.Address,
			City:           s.Station.City,
			State:          s.Station.State,
			PricePerGallon: round3(s.Station.RetailPrice),
			GallonsNeeded:  s.Gallons,
			Cost:           s.Cost,
			MilesFromStart: s.ChainageMiles,
			Latitude:       s.Station.Latitude,
			Longitude:      s.Station.Longitude,
		})
	}

	return dto.RouteResponse{
		Route: dto.RouteInfoResponse{
			DistanceMiles: plan.Route.DistanceMiles,
			DurationHours: plan.Route.DurationHours,
			Geometry:      plan.Route.Geometry,
		},
		FuelStops:             stops,
		TotalFuelCost:         plan.TotalFuelCost,
		TotalGallons:          plan.TotalGallons,
		StartLocation:         toLocationResponse(plan.Start),
		EndLocation:           toLocationResponse(plan.End),
		OptimizationMethod:    plan.Method,
		StationsConsidered:    plan.StationsConsidered,
		ProcessingTimeSeconds: round2(elapsed.Seconds()),
	}
}

func toLocationResponse(e domain.Endpoint) dto.LocationResponse {
	return dto.LocationResponse{
		Address:   e.Address,
		Latitude:  e.Coordinate.Lat,
		Longitude: e.Coordinate.Lon,
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
