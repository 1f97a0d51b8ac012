// Package sim drives the engine through a full run: fixed-step
// iteration, trajectory recording, metric observation, and parallel
// ensembles. The engine itself is stateless between steps apart from
// its noise source; everything loop-shaped lives here.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/cellsim/internal/engine"
)

type Simulator struct {
	terms     []engine.Term
	metrics   []Metric
	observers []Observer
}

func New(terms []engine.Term) *Simulator {
	return &Simulator{
		terms:     terms,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Terms exposes the force terms the simulator was built with.
func (s *Simulator) Terms() []engine.Term { return s.terms }

// Run advances pos0 through cfg.Steps timesteps and records the full
// trajectory. Metrics and observers fire once per step with the
// freshly updated positions and the force field that produced them.
// With cfg.ValidateState set, a NaN/Inf position stops the run early
// and the cause is recorded in Result.Errors; the partial result is
// still returned without error.
func (s *Simulator) Run(ctx context.Context, pos0 engine.Positions, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Positions: make([]engine.Positions, 0, cfg.Steps+1),
		Forces:    make([]engine.Forces, 0, cfg.Steps),
		Times:     make([]float64, 0, cfg.Steps+1),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	eng := engine.New(cfg.Seed)
	pos := pos0.Clone()
	t := 0.0

	result.Positions = append(result.Positions, pos.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		newPos, force := eng.Step(pos, s.terms, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !newPos.IsValid() {
			result.Errors = append(result.Errors, SimError{
				Time: t, Step: i, Message: ErrDiverged.Error(),
			})
			break
		}

		pos = newPos
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(pos, force, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(pos, force, t)
		}

		result.Positions = append(result.Positions, pos)
		result.Forces = append(result.Forces, force)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the simulation without recording a
// trajectory, handing each frame to the callback. Returning false
// from the callback stops the run.
func (s *Simulator) RunWithCallback(ctx context.Context, pos0 engine.Positions, cfg Config, callback func(pos engine.Positions, f engine.Forces, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	eng := engine.New(cfg.Seed)
	pos := pos0.Clone()
	t := 0.0

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		newPos, force := eng.Step(pos, s.terms, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !newPos.IsValid() {
			return fmt.Errorf("%w at t=%.4f", ErrDiverged, t)
		}

		pos = newPos
		if !callback(pos, force, t) {
			return nil
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidTimestep, cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidSteps, cfg.Steps)
	}
	return nil
}
