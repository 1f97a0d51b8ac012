// Package engine implements the core of the cell simulation: dense
// pairwise matrices, the distance computation, and the force
// integrator that advances cell positions by one timestep.
//
// The central types are:
//
//   - [Positions]: (y, x) coordinates of each cell, index-stable
//   - [Matrix]: dense NxN float64 matrix over cell pairs
//   - [Term]: one configured pairwise force rule
//   - [Engine]: seeded stepper combining all terms per timestep
//
// # Example
//
//	eng := engine.New(42)
//	terms := []engine.Term{{Force: forces.Hooke, Params: []float64{1, 1}, MaxRange: math.Inf(1)}}
//	pos, f := eng.Step(pos, terms, 0.1)
//
// The integrator is first-order (explicit Euler) with a fixed
// timestep and all-pairs O(N^2) force evaluation. It performs no
// input validation: malformed terms or non-finite positions
// propagate as NaN/Inf output rather than errors. Self-pairs are
// excluded structurally, so the zero self-distance is never used
// as a divisor.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe; the only state they carry
// is the pseudo-random source used for noise draws. Use one Engine
// per goroutine for parallel runs.
package engine
