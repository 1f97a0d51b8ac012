package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/cellsim/internal/engine"
)

func springTerm(d0, k float64) engine.Term {
	return engine.Term{
		Force: func(dist *engine.Matrix, params ...float64) *engine.Matrix {
			f := engine.NewMatrix(dist.N)
			for i, d := range dist.Data {
				f.Data[i] = k * (d - d0)
			}
			return f
		},
		MaxRange: math.Inf(1),
	}
}

func nanTerm() engine.Term {
	return engine.Term{
		Force: func(dist *engine.Matrix, params ...float64) *engine.Matrix {
			f := engine.NewMatrix(dist.N)
			for i := range f.Data {
				f.Data[i] = math.NaN()
			}
			return f
		},
		MaxRange: math.Inf(1),
	}
}

func TestSimulatorRun(t *testing.T) {
	s := New([]engine.Term{springTerm(1, 1)})

	pos0 := engine.Positions{{0, 0}, {0, 3}}
	cfg := Config{Dt: 0.05, Steps: 200, ValidateState: true}

	result, err := s.Run(context.Background(), pos0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Positions) != 201 {
		t.Errorf("expected 201 frames, got %d", len(result.Positions))
	}
	if len(result.Times) != 201 {
		t.Errorf("expected 201 times, got %d", len(result.Times))
	}
	if result.StepsTaken != 200 {
		t.Errorf("expected 200 steps taken, got %d", result.StepsTaken)
	}

	// The spring relaxes the pair toward its resting distance.
	final := result.Final()
	d := math.Abs(final[1][1] - final[0][1])
	if math.Abs(d-1) > 1e-3 {
		t.Errorf("final pair distance %v, want ~1", d)
	}

	// Input positions are untouched.
	if pos0[1] != [2]float64{0, 3} {
		t.Errorf("input positions mutated: %v", pos0[1])
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New([]engine.Term{springTerm(1, 1)})

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero dt", Config{Dt: 0, Steps: 10}, ErrInvalidTimestep},
		{"negative dt", Config{Dt: -0.1, Steps: 10}, ErrInvalidTimestep},
		{"zero steps", Config{Dt: 0.1, Steps: 0}, ErrInvalidSteps},
		{"negative steps", Config{Dt: 0.1, Steps: -5}, ErrInvalidSteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), engine.Positions{{0, 0}}, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

type countMetric struct {
	count int
}

func (m *countMetric) Name() string { return "count" }
func (m *countMetric) Observe(pos engine.Positions, f engine.Forces, t float64) {
	m.count++
}
func (m *countMetric) Value() float64 { return float64(m.count) }
func (m *countMetric) Reset()         { m.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	s := New([]engine.Term{springTerm(1, 1)})
	metric := &countMetric{}
	s.AddMetric(metric)

	cfg := Config{Dt: 0.1, Steps: 10}
	result, err := s.Run(context.Background(), engine.Positions{{0, 0}, {0, 2}}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got, ok := result.Metrics["count"]; !ok || got != 10 {
		t.Errorf("metric value = %v (present=%v), want 10", got, ok)
	}
}

func TestSimulatorDivergenceStopsRun(t *testing.T) {
	s := New([]engine.Term{nanTerm()})

	cfg := Config{Dt: 0.1, Steps: 50, ValidateState: true}
	result, err := s.Run(context.Background(), engine.Positions{{0, 0}, {0, 1}}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 0 {
		t.Errorf("expected divergence on first step, took %d", result.StepsTaken)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(result.Errors))
	}
	var simErr SimError
	if !errors.As(result.Errors[0], &simErr) {
		t.Errorf("recorded error is %T, want SimError", result.Errors[0])
	}
}

func TestSimulatorCancellation(t *testing.T) {
	s := New([]engine.Term{springTerm(1, 1)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, engine.Positions{{0, 0}, {0, 2}}, Config{Dt: 0.1, Steps: 100})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRunWithCallback(t *testing.T) {
	s := New([]engine.Term{springTerm(1, 1)})

	frames := 0
	err := s.RunWithCallback(context.Background(), engine.Positions{{0, 0}, {0, 2}},
		Config{Dt: 0.1, Steps: 100},
		func(pos engine.Positions, f engine.Forces, t float64) bool {
			frames++
			return frames < 5
		})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if frames != 5 {
		t.Errorf("expected callback to stop after 5 frames, got %d", frames)
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	want := "step 150 (t=1.5000): test error"
	if err.Error() != want {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), want)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Dt <= 0 {
		t.Error("DefaultConfig has invalid Dt")
	}
	if cfg.Steps <= 0 {
		t.Error("DefaultConfig has invalid Steps")
	}
}
