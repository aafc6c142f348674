package dto

import "fuel-route-service/internal/domain"

type RouteRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type RouteResponse struct {
	Route                 RouteInfoResponse  `json:"route"`
	FuelStops             []FuelStopResponse `json:"fuel_stops"`
	TotalFuelCost         float64            `json:"total_fuel_cost"`
	TotalGallons          float64            `json:"total_gallons"`
	StartLocation         LocationResponse   `json:"start_location"`
	EndLocation           LocationResponse   `json:"end_location"`
	OptimizationMethod    string             `json:"optimization_method"`
	StationsConsidered    int                `json:"stations_considered"`
	ProcessingTimeSeconds float64            `json:"processing_time_seconds"`
}

type RouteInfoResponse struct {
	DistanceMiles float64           `json:"distance_miles"`
	DurationHours float64           `json:"duration_hours"`
	Geometry      domain.LineString `json:"geometry"`
}

type FuelStopResponse struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	PricePerGallon float64 `json:"price_per_gallon"`
	GallonsNeeded  float64 `json:"gallons_needed"`
	Cost           float64 `json:"cost"`
	MilesFromStart float64 `json:"miles_from_start"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

type LocationResponse struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type HealthResponse struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	TotalStations    int `json:"total_stations"`
	GeocodedStations int `json:"geocoded_stations"`
	PendingGeocoding int `json:"pending_geocoding"`
}
