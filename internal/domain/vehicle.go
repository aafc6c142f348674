package domain

// Fixed range and efficiency model for the vehicle being routed.
// The fuel policy is full-tank-only: every stop purchases exactly
// TankGallons regardless of how much fuel was consumed since the
// previous stop.
type Vehicle struct {
	RangeMiles float64
	MPG        float64
}

// TankGallons is the fuel purchased at every stop (a full tank).
func (v Vehicle) TankGallons() float64 { return v.RangeMiles / v.MPG }
