package sim

import (
	"fmt"

	"github.com/san-kum/cellsim/internal/engine"
)

// Metric accumulates a scalar observation over the course of a run.
type Metric interface {
	Name() string
	Observe(pos engine.Positions, f engine.Forces, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every timestep.
type Observer interface {
	OnStep(pos engine.Positions, f engine.Forces, t float64)
}

type Config struct {
	Dt            float64
	Steps         int
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.05,
		Steps:         200,
		ValidateState: true,
	}
}

type Result struct {
	Positions  []engine.Positions
	Forces     []engine.Forces
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Final returns the last recorded positions, or nil for an empty run.
func (r *Result) Final() engine.Positions {
	if len(r.Positions) == 0 {
		return nil
	}
	return r.Positions[len(r.Positions)-1]
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
