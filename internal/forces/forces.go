// Package forces provides the closed-form force laws consumed by the
// engine, the matching potential-energy landscapes used for analysis,
// and a name registry for config and CLI lookup.
//
// Every force function satisfies [engine.ForceFunc]: it maps the
// pairwise distance matrix plus a fixed list of scalar parameters to
// a same-shape force matrix. Each law documents its own sign
// convention; the engine applies them verbatim.
package forces

import (
	"math"

	"github.com/san-kum/cellsim/internal/engine"
)

// PotentialFunc maps a pairwise distance matrix and scalar parameters
// to a same-shape potential-energy matrix. Potentials are not used by
// the integrator; they exist for analysis and metrics.
type PotentialFunc func(dist *engine.Matrix, params ...float64) *engine.Matrix

// Hooke is the spring force F = k*(d - d0).
// Params: d0 (resting distance), k (spring constant).
func Hooke(dist *engine.Matrix, params ...float64) *engine.Matrix {
	d0, k := params[0], params[1]
	f := engine.NewMatrix(dist.N)
	for i, d := range dist.Data {
		f.Data[i] = k * (d - d0)
	}
	return f
}

// HookePotential is E = 1/2 * k * (d - d0)^2.
func HookePotential(dist *engine.Matrix, params ...float64) *engine.Matrix {
	d0, k := params[0], params[1]
	e := engine.NewMatrix(dist.N)
	for i, d := range dist.Data {
		e.Data[i] = 0.5 * k * (d - d0) * (d - d0)
	}
	return e
}

// ExpDecay is F = -e*p0*exp(-e*(d - d0)), the force of a potential
// decaying from p0 at d0 toward zero.
// Params: d0, p0 (potential at d0), e (exponent).
func ExpDecay(dist *engine.Matrix, params ...float64) *engine.Matrix {
	d0, p0, ex := params[0], params[1], params[2]
	f := engine.NewMatrix(dist.N)
	for i, d := range dist.Data {
		f.Data[i] = -ex * p0 * math.Exp(-ex*(d-d0))
	}
	return f
}

// ExpDecayPotential is E = p0*exp(-e*(d - d0)).
func ExpDecayPotential(dist *engine.Matrix, params ...float64) *engine.Matrix {
	d0, p0, ex := params[0], params[1], params[2]
	e := engine.NewMatrix(dist.N)
	for i, d := range dist.Data {
		e.Data[i] = p0 * math.Exp(-ex*(d-d0))
	}
	return e
}

// ExpNeg is F = e*p0*exp(-e*(d - d0)), the force of a potential
// rising from -p0 at d0 toward zero.
// Params: d0, p0 (negated potential at d0), e (exponent).
func ExpNeg(dist *engine.Matrix, params ...float64) *engine.Matrix {
	d0, p0, ex := params[0], params[1], params[2]
	f := engine.NewMatrix(dist.N)
	for i, d := range dist.Data {
		f.Data[i] = ex * p0 * math.Exp(-ex*(d-d0))
	}
	return f
}

// ExpNegPotential is E = p0 - p0*exp(-e*(d - d0)).
func ExpNegPotential(dist *engine.Matrix, params ...float64) *engine.Matrix {
	d0, p0, ex := params[0], params[1], params[2]
	e := engine.NewMatrix(dist.N)
	for i, d := range dist.Data {
		e.Data[i] = p0 - p0*math.Exp(-ex*(d-d0))
	}
	return e
}

// Anharmonic is the force of the anharmonic oscillator potential
// E = -p0*((d0/d)^e1 - m*(d0/d)^e2):
//
//	F = p0*(e1*(d0/d)^e1 - m*e2*(d0/d)^e2) / d   for d > 0
//	F = 0                                        at d = 0
//
// Params: d0 (potential minimum for m=2, e1/e2=2), p0, m, e1, e2.
func Anharmonic(dist *engine.Matrix, params ...float64) *engine.Matrix {
	d0, p0, m, e1, e2 := params[0], params[1], params[2], params[3], params[4]
	f := engine.NewMatrix(dist.N)
	for i, d := range dist.Data {
		if d > 0 {
			r := d0 / d
			f.Data[i] = p0 * (e1*math.Pow(r, e1) - m*e2*math.Pow(r, e2)) / d
		}
	}
	return f
}

// AnharmonicPotential is E = -p0*((d0/d)^e1 - m*(d0/d)^e2) for d > 0
// and 0 at d = 0.
func AnharmonicPotential(dist *engine.Matrix, params ...float64) *engine.Matrix {
	d0, p0, m, e1, e2 := params[0], params[1], params[2], params[3], params[4]
	e := engine.NewMatrix(dist.N)
	for i, d := range dist.Data {
		if d > 0 {
			r := d0 / d
			e.Data[i] = -p0 * (math.Pow(r, e1) - m*math.Pow(r, e2))
		}
	}
	return e
}
