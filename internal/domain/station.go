package domain

// Represents a single fuel station from the OPIS price catalog.
// Latitude and longitude are populated by the offline geocoding job;
// Geocoded reports whether that has happened. The planner only ever
// reads stations with Geocoded set.
type Station struct {
	ID          int64
	OPISID      int
	Name        string
	Address     string
	City        string
	State       string
	RackID      int
	RetailPrice float64
	Latitude    float64
	Longitude   float64
	Geocoded    bool
}

// A station projected onto the route polyline.
// ChainageMiles is the along-route distance from the route start to the
// station's nearest projection point; LateralOffsetMiles is the
// perpendicular (cross-track) distance at that projection.
type OnRouteStation struct {
	Station
	ChainageMiles      float64
	LateralOffsetMiles float64
}
