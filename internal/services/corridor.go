package services

import (
	"math"
	"slices"

	"fuel-route-service/internal/domain"
)

// Mean earth radius in miles. Every distance in the planner derives from
// this single constant so chainage, lateral offsets, and vehicle range
// stay mutually comparable.
const earthRadiusMiles = 3959.0

// Default lateral corridor half-width for the on-route filter.
const DefaultCorridorHalfWidthMiles = 15.0

// FilterOnRoute projects every station onto the route polyline and keeps
// those whose minimum cross-track distance is within the corridor.
//
// For each station the minimum over all polyline segments of the
// great-circle distance to the segment is taken, together with the
// chainage (along-route miles) of the nearest projection point; distance
// ties keep the smaller chainage. The result is sorted by ascending
// chainage, equal chainages by ascending price.
func FilterOnRoute(
	polyline []domain.Coordinates,
	stations []domain.Station,
	corridorHalfWidthMiles float64,
) []domain.OnRouteStation {
	if len(polyline) < 2 || len(stations) == 0 {
		return []domain.OnRouteStation{}
	}

	// Cumulative chainage at each polyline vertex.
	cum := make([]float64, len(polyline))
	for i := 1; i < len(polyline); i++ {
		cum[i] = cum[i-1] + haversineMiles(polyline[i-1], polyline[i])
	}

	out := make([]domain.OnRouteStation, 0, 16)
	for _, s := range stations {
		p := domain.Coordinates{Lon: s.Longitude, Lat: s.Latitude}

		best := math.MaxFloat64
		bestChainage := 0.0
		for i := 0; i+1 < len(polyline); i++ {
			dist, along := pointToSegmentMiles(p, polyline[i], polyline[i+1])
			chainage := cum[i] + along
			if dist < best || (dist == best && chainage < bestChainage) {
				best = dist
				bestChainage = chainage
			}
		}

		if best <= corridorHalfWidthMiles {
			out = append(out, domain.OnRouteStation{
				Station:            s,
				ChainageMiles:      bestChainage,
				LateralOffsetMiles: best,
			})
		}
	}

	slices.SortFunc(out, func(a, b domain.OnRouteStation) int {
		if a.ChainageMiles < b.ChainageMiles {
			return -1
		}
		if a.ChainageMiles > b.ChainageMiles {
			return 1
		}
		if a.RetailPrice < b.RetailPrice {
			return -1
		}
		if a.RetailPrice > b.RetailPrice {
			return 1
		}
		return 0
	})

	return out
}

// haversineMiles is the great-circle distance between two points.
func haversineMiles(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(clamp1(h)))
}

// initialBearing is the forward azimuth from a to b, in radians.
func initialBearing(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Atan2(y, x)
}

// pointToSegmentMiles returns the great-circle distance from p to the
// segment a→b and the along-segment distance of the nearest point.
// Projections falling outside the segment clamp to the nearer endpoint.
func pointToSegmentMiles(p, a, b domain.Coordinates) (dist, along float64) {
	segLen := haversineMiles(a, b)
	d13 := haversineMiles(a, p)
	if segLen == 0 || d13 == 0 {
		return d13, 0
	}

	theta13 := initialBearing(a, p)
	theta12 := initialBearing(a, b)

	// Projection falls behind the segment start when the bearings diverge
	// by more than 90 degrees.
	if math.Cos(theta13-theta12) < 0 {
		return d13, 0
	}

	delta13 := d13 / earthRadiusMiles
	xt := math.Asin(clampUnit(math.Sin(delta13) * math.Sin(theta13-theta12)))
	at := math.Acos(clampUnit(math.Cos(delta13)/math.Cos(xt))) * earthRadiusMiles
	if at > segLen {
		return haversineMiles(p, b), segLen
	}
	return math.Abs(xt) * earthRadiusMiles, at
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

func clamp1(x float64) float64 {
	if x > 1 {
		return 1
	}
	return x
}
