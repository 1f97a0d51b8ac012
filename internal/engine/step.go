package engine

import "math/rand"

// ForceFunc maps a pairwise distance matrix and a list of scalar
// parameters to a same-shape matrix of radial forces. A positive
// entry acts on cell i along the displacement toward cell j, pulling
// the pair together; a negative entry pushes it apart. The engine
// never inspects or alters the sign semantics of a formula.
type ForceFunc func(dist *Matrix, params ...float64) *Matrix

// Noise configures Gaussian random forces added to one term's raw
// force matrix. Draws are zero-mean with the given standard
// deviation; Bound > 0 clamps every draw to [-Bound, Bound].
type Noise struct {
	Stdev float64
	Bound float64
}

// Term is one pairwise interaction rule. Terms are independent and
// additive: the integrator sums their contributions in list order.
type Term struct {
	Force  ForceFunc
	Params []float64

	// MinRange and MaxRange bound the distances at which the term
	// acts. Pairs strictly outside [MinRange, MaxRange] contribute
	// zero force; pairs exactly at either bound are kept.
	MinRange float64
	MaxRange float64

	// Mask restricts the term to pairs set true. Nil means every
	// pair interacts.
	Mask *BoolMatrix

	// Noise, when non-nil, adds bounded Gaussian random forces to
	// this term each timestep.
	Noise *Noise
}

// Engine advances cell positions under a set of force terms. Its only
// state is the random source used for noise draws, so runs with equal
// seeds, positions and terms are reproducible.
type Engine struct {
	rng *rand.Rand
}

func New(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Step executes one timestep: it evaluates every force term on the
// current pairwise distances, applies noise, range cutoffs and masks,
// decomposes the radial forces into (y, x) components, sums them over
// all neighbors, and integrates positions forward by deltaT.
//
// It returns the updated positions and the net force field applied.
// The input slice is not modified. Self-pairs are skipped during
// decomposition, so the zero diagonal of the distance matrix is never
// a divisor; everything else is unvalidated and non-finite inputs
// propagate into the output.
func (e *Engine) Step(pos Positions, terms []Term, deltaT float64) (Positions, Forces) {
	n := len(pos)
	xDist, yDist, dist := Dists(pos)

	force := make(Forces, n)

	for _, term := range terms {
		f := term.Force(dist, term.Params...)

		if term.Noise != nil {
			e.addNoise(f, term.Noise)
		}

		for k, d := range dist.Data {
			if d < term.MinRange || d > term.MaxRange {
				f.Data[k] = 0
			}
		}

		if term.Mask != nil {
			for k, on := range term.Mask.Data {
				if !on {
					f.Data[k] = 0
				}
			}
		}

		// Decompose into (y, x) components and sum over neighbors.
		// The diagonal is excluded structurally; coincident distinct
		// cells still divide by zero and yield NaN, as documented.
		for i := 0; i < n; i++ {
			row := i * n
			var fy, fx float64
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				k := row + j
				s := f.Data[k] / dist.Data[k]
				fy += s * yDist.Data[k]
				fx += s * xDist.Data[k]
			}
			force[i][0] += fy
			force[i][1] += fx
		}
	}

	posNew := make(Positions, n)
	for i := range pos {
		posNew[i][0] = pos[i][0] + deltaT*force[i][0]
		posNew[i][1] = pos[i][1] + deltaT*force[i][1]
	}

	return posNew, force
}

// addNoise draws one Gaussian sample per matrix entry, in row-major
// order, so a fixed seed reproduces the same random forces.
func (e *Engine) addNoise(f *Matrix, ns *Noise) {
	for k := range f.Data {
		r := e.rng.NormFloat64() * ns.Stdev
		if ns.Bound > 0 {
			if r > ns.Bound {
				r = ns.Bound
			} else if r < -ns.Bound {
				r = -ns.Bound
			}
		}
		f.Data[k] += r
	}
}
