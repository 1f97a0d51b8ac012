// Package sweep runs a model over a grid of force parameter values
// and scores each point with a metric, to locate parameter regimes
// without editing the config file by hand.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/cellsim/internal/config"
	"github.com/san-kum/cellsim/internal/sim"
)

// Axis varies one parameter of one force term over a fixed list of
// values. Term and Param index into cfg.Forces and its Params slice.
type Axis struct {
	Term   int
	Param  int
	Values []float64
}

// Name describes the axis as it appears in result tables.
func (a Axis) Name() string {
	return fmt.Sprintf("forces[%d].params[%d]", a.Term, a.Param)
}

// Point is one evaluated grid point: the axis values applied and the
// metric score, or the error that stopped that run.
type Point struct {
	Values []float64
	Score  float64
	Err    error
}

// Result holds every evaluated point plus the index of the best one.
// Best is -1 when no point ran to completion.
type Result struct {
	Points []Point
	Best   int
}

// Grid enumerates the cartesian product of its axes. Every point runs
// the same base config with the same seed, so scores differ only
// through the swept parameters.
type Grid struct {
	base   *config.Config
	axes   []Axis
	metric func() sim.Metric

	// Minimize flips the comparison; the default keeps the highest
	// score.
	Minimize bool
}

func NewGrid(base *config.Config, axes []Axis, metric func() sim.Metric) *Grid {
	return &Grid{base: base, axes: axes, metric: metric}
}

// Size is the number of grid points.
func (g *Grid) Size() int {
	n := 1
	for _, a := range g.axes {
		n *= len(a.Values)
	}
	return n
}

func (g *Grid) validate() error {
	if len(g.axes) == 0 {
		return fmt.Errorf("sweep: no axes")
	}
	for _, a := range g.axes {
		if a.Term < 0 || a.Term >= len(g.base.Forces) {
			return fmt.Errorf("sweep: axis term %d out of range", a.Term)
		}
		if a.Param < 0 || a.Param >= len(g.base.Forces[a.Term].Params) {
			return fmt.Errorf("sweep: axis param %d out of range for term %d", a.Param, a.Term)
		}
		if len(a.Values) == 0 {
			return fmt.Errorf("sweep: axis %s has no values", a.Name())
		}
	}
	return nil
}

// Run evaluates every grid point. Points run in parallel; a point
// that fails records its error and is skipped when picking the best.
func (g *Grid) Run(ctx context.Context) (*Result, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	points := make([]Point, g.Size())
	for i := range points {
		points[i] = Point{Values: g.pointValues(i)}
	}

	sim.ParallelFor(len(points), 1, func(start, end int) {
		for i := start; i < end; i++ {
			points[i].Score, points[i].Err = g.evaluate(ctx, points[i].Values)
		}
	})

	res := &Result{Points: points, Best: -1}
	for i, p := range points {
		if p.Err != nil {
			continue
		}
		if res.Best < 0 || g.better(p.Score, points[res.Best].Score) {
			res.Best = i
		}
	}
	return res, nil
}

func (g *Grid) better(a, b float64) bool {
	if g.Minimize {
		return a < b
	}
	return a > b
}

// pointValues decodes a flat point index into one value per axis,
// last axis varying fastest.
func (g *Grid) pointValues(idx int) []float64 {
	vals := make([]float64, len(g.axes))
	for d := len(g.axes) - 1; d >= 0; d-- {
		n := len(g.axes[d].Values)
		vals[d] = g.axes[d].Values[idx%n]
		idx /= n
	}
	return vals
}

func (g *Grid) evaluate(ctx context.Context, vals []float64) (float64, error) {
	cfg := cloneConfig(g.base)
	for d, a := range g.axes {
		cfg.Forces[a.Term].Params[a.Param] = vals[d]
	}

	model, err := cfg.Build()
	if err != nil {
		return math.NaN(), err
	}

	s := sim.New(model.Terms)
	m := g.metric()
	s.AddMetric(m)

	runCfg := sim.DefaultConfig()
	runCfg.Dt = cfg.Dt
	runCfg.Steps = cfg.Steps
	runCfg.Seed = cfg.Seed

	result, err := s.Run(ctx, model.Positions, runCfg)
	if err != nil {
		return math.NaN(), err
	}
	if len(result.Errors) > 0 {
		return math.NaN(), result.Errors[0]
	}
	return m.Value(), nil
}

// cloneConfig deep-copies the parts a sweep mutates.
func cloneConfig(c *config.Config) *config.Config {
	out := *c
	out.Forces = make([]config.ForceTerm, len(c.Forces))
	for i, ft := range c.Forces {
		out.Forces[i] = ft
		out.Forces[i].Params = append([]float64(nil), ft.Params...)
	}
	out.Populations = append([]config.Population(nil), c.Populations...)
	return &out
}
