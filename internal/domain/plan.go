package domain

// Optimization method labels reported in a TripPlan.
const (
	MethodDynamicProgramming = "dynamic_programming"
	MethodGreedyFallback     = "greedy_fallback"
	MethodNoStations         = "no_stations"
)

// A chosen refuel stop. Gallons is always a full tank
// (Vehicle.TankGallons) and Cost is Gallons times the station's
// retail price.
type FuelStop struct {
	Station       Station
	ChainageMiles float64
	Gallons       float64
	Cost          float64
}

// Route metadata from the routing engine.
type RouteInfo struct {
	DistanceMiles float64
	DurationHours float64
	Geometry      LineString
}

// A geocoded trip endpoint.
type Endpoint struct {
	Address    string
	Coordinate Coordinates
}

// Represents the planned refueling schedule for a single trip.
// Stops are ordered by strictly increasing chainage. TotalGallons is
// trip consumption (distance / mpg) and is independent of the number
// of stops; it is not the sum of purchased gallons because purchases
// are always full-tank amounts.
type TripPlan struct {
	Route              RouteInfo
	Stops              []FuelStop
	TotalFuelCost      float64
	TotalGallons       float64
	Start              Endpoint
	End                Endpoint
	Method             string
	StationsConsidered int
}
