package engine

import "math"

// Positions holds one (y, x) coordinate pair per cell. Index i refers
// to the same cell for the whole run; updates produce a new slice
// rather than mutating in place.
type Positions [][2]float64

// Forces holds the net (y, x) force vector acting on each cell for
// one timestep.
type Forces [][2]float64

func (p Positions) Clone() Positions {
	c := make(Positions, len(p))
	copy(c, p)
	return c
}

func (p Positions) IsValid() bool {
	for i := range p {
		for _, v := range p[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Centroid returns the mean (y, x) position, or (0, 0) for an empty
// population.
func (p Positions) Centroid() (cy, cx float64) {
	if len(p) == 0 {
		return 0, 0
	}
	for i := range p {
		cy += p[i][0]
		cx += p[i][1]
	}
	n := float64(len(p))
	return cy / n, cx / n
}
