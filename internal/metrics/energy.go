package metrics

import (
	"github.com/san-kum/cellsim/internal/engine"
	"github.com/san-kum/cellsim/internal/forces"
)

// PotentialEnergy tracks the summed pairwise potential energy of the
// population under one potential landscape. Pairs outside the
// [minRange, maxRange] band are excluded, mirroring the range cutoffs
// of the matching force term.
type PotentialEnergy struct {
	name      string
	potential forces.PotentialFunc
	params    []float64
	minRange  float64
	maxRange  float64
	sum       float64
	samples   int
}

func NewPotentialEnergy(law forces.Law, params []float64, minRange, maxRange float64) *PotentialEnergy {
	return &PotentialEnergy{
		name:      "potential_energy",
		potential: law.Potential,
		params:    params,
		minRange:  minRange,
		maxRange:  maxRange,
	}
}

func (m *PotentialEnergy) Name() string { return m.name }

func (m *PotentialEnergy) Observe(pos engine.Positions, f engine.Forces, t float64) {
	n := len(pos)
	m.samples++
	if n < 2 {
		return
	}

	_, _, dist := engine.Dists(pos)
	pot := m.potential(dist, m.params...)

	total := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := dist.At(i, j)
			if d < m.minRange || d > m.maxRange {
				continue
			}
			total += pot.At(i, j)
		}
	}

	m.sum += total
}

func (m *PotentialEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *PotentialEnergy) Reset() {
	m.sum = 0
	m.samples = 0
}
