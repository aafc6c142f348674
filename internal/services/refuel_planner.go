package services

import (
	"math"
	"slices"

	"fuel-route-service/internal/domain"
)

// PlanRefuels computes the refuel sequence for a trip over stations sorted
// by ascending chainage. The second return reports whether the dynamic
// program found a feasible start→end path; when it did not, the stops come
// from the greedy fallback instead.
func PlanRefuels(
	routeDistanceMiles float64,
	stations []domain.OnRouteStation,
	v domain.Vehicle,
) ([]domain.FuelStop, bool) {
	stops, ok := planOptimal(routeDistanceMiles, stations, v)
	if ok {
		return stops, true
	}
	return PlanGreedy(stations, v, GreedyBufferMiles), false
}

// planOptimal solves a single-source shortest path over the DAG
// {start} ∪ stations ∪ {end}. An edge j→i exists when i lies after j and
// their positions differ by at most the vehicle range; its cost is a full
// tank priced at station i (zero into the virtual end). Nodes are already
// position-sorted, so one O(n²) forward pass relaxes every node from fully
// processed predecessors and the result is globally optimal for the
// full-tank-only cost model.
func planOptimal(
	routeDistanceMiles float64,
	stations []domain.OnRouteStation,
	v domain.Vehicle,
) ([]domain.FuelStop, bool) {
	n := len(stations)

	// pos[0] is the virtual start, pos[n+1] the virtual end.
	pos := make([]float64, n+2)
	for i, s := range stations {
		pos[i+1] = s.ChainageMiles
	}
	pos[n+1] = routeDistanceMiles

	dp := make([]float64, n+2)
	parent := make([]int, n+2)
	for i := range dp {
		dp[i] = math.Inf(1)
		parent[i] = -1
	}
	dp[0] = 0

	tank := v.TankGallons()
	for i := 1; i <= n+1; i++ {
		for j := 0; j < i; j++ {
			if math.IsInf(dp[j], 1) {
				continue
			}
			if pos[i]-pos[j] > v.RangeMiles {
				continue
			}

			cost := dp[j]
			if i <= n {
				// Arriving at a station always buys a full tank at that
				// station's price, regardless of fuel consumed on the leg.
				cost += tank * stations[i-1].RetailPrice
			}
			if cost < dp[i] {
				dp[i] = cost
				parent[i] = j
			}
		}
	}

	if math.IsInf(dp[n+1], 1) {
		return nil, false
	}

	// Backtrack predecessor pointers from the virtual end, then restore
	// chainage order.
	idx := make([]int, 0, n)
	for cur := parent[n+1]; cur > 0; cur = parent[cur] {
		idx = append(idx, cur-1)
	}
	slices.Reverse(idx)

	stops := make([]domain.FuelStop, 0, len(idx))
	for _, i := range idx {
		stops = append(stops, newFuelStop(stations[i], v))
	}
	return stops, true
}

func newFuelStop(s domain.OnRouteStation, v domain.Vehicle) domain.FuelStop {
	gallons := v.TankGallons()
	return domain.FuelStop{
		Station:       s.Station,
		ChainageMiles: round2(s.ChainageMiles),
		Gallons:       round2(gallons),
		Cost:          round2(gallons * s.RetailPrice),
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
