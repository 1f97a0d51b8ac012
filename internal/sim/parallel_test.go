package sim

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/san-kum/cellsim/internal/engine"
)

func noisyTerm() engine.Term {
	return engine.Term{
		Force: func(dist *engine.Matrix, params ...float64) *engine.Matrix {
			return engine.NewMatrix(dist.N)
		},
		MaxRange: math.Inf(1),
		Noise:    &engine.Noise{Stdev: 1},
	}
}

func TestEnsembleRun(t *testing.T) {
	ens := NewEnsemble([]engine.Term{noisyTerm()}, 4, 100)
	ens.Metrics = func() []Metric { return []Metric{&countMetric{}} }

	pos0 := engine.Positions{{0, 0}, {0, 1}}
	cfg := Config{Dt: 0.1, Steps: 20}

	results, err := ens.Run(context.Background(), pos0, cfg)
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	for i, r := range results {
		if r.StepsTaken != 20 {
			t.Errorf("run %d took %d steps, want 20", i, r.StepsTaken)
		}
		if r.Metrics["count"] != 20 {
			t.Errorf("run %d metric = %v, want 20", i, r.Metrics["count"])
		}
	}

	// Different seeds must yield different noise trajectories.
	a, b := results[0].Final(), results[1].Final()
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
		}
	}
	if same {
		t.Error("runs with different seeds produced identical trajectories")
	}
}

func TestEnsembleSeedsReproducible(t *testing.T) {
	pos0 := engine.Positions{{0, 0}, {0, 1}}
	cfg := Config{Dt: 0.1, Steps: 10}

	r1, err := NewEnsemble([]engine.Term{noisyTerm()}, 2, 7).Run(context.Background(), pos0, cfg)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := NewEnsemble([]engine.Term{noisyTerm()}, 2, 7).Run(context.Background(), pos0, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for run := range r1 {
		a, b := r1[run].Final(), r2[run].Final()
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("run %d cell %d differs across identical ensembles", run, i)
			}
		}
	}
}

func TestParallelFor(t *testing.T) {
	var sum int64
	ParallelFor(1000, 10, func(start, end int) {
		var local int64
		for i := start; i < end; i++ {
			local += int64(i)
		}
		atomic.AddInt64(&sum, local)
	})

	if sum != 499500 {
		t.Errorf("sum = %d, want 499500", sum)
	}
}

func TestParallelForSmallRange(t *testing.T) {
	calls := 0
	ParallelFor(5, 10, func(start, end int) {
		calls++
		if start != 0 || end != 5 {
			t.Errorf("expected single inline chunk [0,5), got [%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
