// Package metrics provides run-level observables over cell position
// trajectories. Each metric averages its per-step observation across
// the whole run.
package metrics

import (
	"math"

	"github.com/san-kum/cellsim/internal/engine"
)

// MeanPairDistance tracks the mean pairwise cell distance, a simple
// measure of population spread.
type MeanPairDistance struct {
	name    string
	sum     float64
	samples int
}

func NewMeanPairDistance() *MeanPairDistance {
	return &MeanPairDistance{name: "mean_pair_distance"}
}

func (m *MeanPairDistance) Name() string { return m.name }

func (m *MeanPairDistance) Observe(pos engine.Positions, f engine.Forces, t float64) {
	n := len(pos)
	if n < 2 {
		return
	}

	total := 0.0
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dy := pos[j][0] - pos[i][0]
			dx := pos[j][1] - pos[i][1]
			total += math.Sqrt(dx*dx + dy*dy)
			pairs++
		}
	}

	m.sum += total / float64(pairs)
	m.samples++
}

func (m *MeanPairDistance) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanPairDistance) Reset() {
	m.sum = 0
	m.samples = 0
}

// RadiusOfGyration tracks the RMS distance of cells from their
// centroid.
type RadiusOfGyration struct {
	name    string
	sum     float64
	samples int
}

func NewRadiusOfGyration() *RadiusOfGyration {
	return &RadiusOfGyration{name: "radius_of_gyration"}
}

func (m *RadiusOfGyration) Name() string { return m.name }

func (m *RadiusOfGyration) Observe(pos engine.Positions, f engine.Forces, t float64) {
	if len(pos) == 0 {
		return
	}

	cy, cx := pos.Centroid()
	total := 0.0
	for i := range pos {
		dy := pos[i][0] - cy
		dx := pos[i][1] - cx
		total += dx*dx + dy*dy
	}

	m.sum += math.Sqrt(total / float64(len(pos)))
	m.samples++
}

func (m *RadiusOfGyration) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *RadiusOfGyration) Reset() {
	m.sum = 0
	m.samples = 0
}

// NearestNeighbor tracks the mean nearest-neighbor distance, a
// measure of local packing.
type NearestNeighbor struct {
	name    string
	sum     float64
	samples int
}

func NewNearestNeighbor() *NearestNeighbor {
	return &NearestNeighbor{name: "nearest_neighbor"}
}

func (m *NearestNeighbor) Name() string { return m.name }

func (m *NearestNeighbor) Observe(pos engine.Positions, f engine.Forces, t float64) {
	n := len(pos)
	if n < 2 {
		return
	}

	total := 0.0
	for i := 0; i < n; i++ {
		nearest := math.Inf(1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dy := pos[j][0] - pos[i][0]
			dx := pos[j][1] - pos[i][1]
			if d := math.Sqrt(dx*dx + dy*dy); d < nearest {
				nearest = d
			}
		}
		total += nearest
	}

	m.sum += total / float64(n)
	m.samples++
}

func (m *NearestNeighbor) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *NearestNeighbor) Reset() {
	m.sum = 0
	m.samples = 0
}
