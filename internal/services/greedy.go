package services

import "fuel-route-service/internal/domain"

// A stop becomes mandatory once the distance since the last stop is within
// this many miles of exhausting the tank.
const GreedyBufferMiles = 50.0

// PlanGreedy is the escape hatch when the dynamic program has no feasible
// start→end path. It makes one deterministic pass over the stations in
// chainage order, refueling whenever the distance since the last stop (or
// the start) reaches range minus buffer. The result is best-effort: legs
// are not validated against the range constraint and may exceed it when
// station coverage is sparse.
func PlanGreedy(
	stations []domain.OnRouteStation,
	v domain.Vehicle,
	bufferMiles float64,
) []domain.FuelStop {
	stops := make([]domain.FuelStop, 0, 4)
	prevChainage := 0.0

	for _, s := range stations {
		if s.ChainageMiles-prevChainage >= v.RangeMiles-bufferMiles {
			stops = append(stops, newFuelStop(s, v))
			prevChainage = s.ChainageMiles
		}
	}
	return stops
}
