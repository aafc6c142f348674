package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// GeoJSON LineString geometry as returned by the routing engine.
// Coordinates are [lon, lat] pairs in travel order.
type LineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// Points converts the raw coordinate pairs into Coordinates values.
// Pairs with fewer than two elements are skipped.
func (l LineString) Points() []Coordinates {
	pts := make([]Coordinates, 0, len(l.Coordinates))
	for _, c := range l.Coordinates {
		if len(c) < 2 {
			continue
		}
		pts = append(pts, Coordinates{Lon: c[0], Lat: c[1]})
	}
	return pts
}

// A (city, state) pair, the unit of geocoding during ingestion.
type Location struct {
	City  string
	State string
}
