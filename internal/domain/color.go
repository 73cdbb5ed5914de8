package domain

import "math/rand/v2"

// DefaultDividerLongitude approximates the Schuylkill River through Philadelphia.
const DefaultDividerLongitude = -75.183

// Marker colors.
const (
	ColorEast          = "gray"
	ColorWestPrimary   = "green"
	ColorWestSecondary = "red"
)

// westPrimaryShare is the probability of ColorWestPrimary on the west side.
const westPrimaryShare = 0.7

// ColorAssigner picks a marker color from a point's longitude. It is not safe
// for concurrent use because it owns its random source.
type ColorAssigner struct {
	divider float64
	rng     *rand.Rand
}

// NewColorAssigner creates an assigner for the given divider longitude. A zero
// seed draws one from the package clock, so output differs between runs.
func NewColorAssigner(divider float64, seed uint64) *ColorAssigner {
	if seed == 0 {
		seed = uint64(clock.Now().UnixNano())
	}
	return &ColorAssigner{
		divider: divider,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Assign returns ColorEast strictly east of the divider. On or west of it the
// result is ColorWestPrimary 70% of the time and ColorWestSecondary otherwise.
func (a *ColorAssigner) Assign(lon float64) string {
	if lon > a.divider {
		return ColorEast
	}
	if a.rng.Float64() < westPrimaryShare {
		return ColorWestPrimary
	}
	return ColorWestSecondary
}
