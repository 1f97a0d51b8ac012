package forces

import (
	"math"
	"testing"

	"github.com/san-kum/cellsim/internal/engine"
)

func distMatrix(vals ...float64) *engine.Matrix {
	n := int(math.Sqrt(float64(len(vals))))
	m := engine.NewMatrix(n)
	copy(m.Data, vals)
	return m
}

func TestHooke(t *testing.T) {
	tests := []struct {
		d, d0, k float64
		want     float64
	}{
		{3, 1, 1, 2},
		{1, 1, 1, 0},
		{0.5, 1, 2, -1},
		{4, 2, 0.5, 1},
	}

	for _, tt := range tests {
		dist := distMatrix(tt.d)
		f := Hooke(dist, tt.d0, tt.k)
		if got := f.At(0, 0); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Hooke(d=%v, d0=%v, k=%v) = %v, want %v", tt.d, tt.d0, tt.k, got, tt.want)
		}
	}
}

func TestHookePotentialMinimumAtRest(t *testing.T) {
	dist := distMatrix(2)
	if got := HookePotential(dist, 2, 5).At(0, 0); got != 0 {
		t.Errorf("potential at resting distance = %v, want 0", got)
	}

	// Symmetric about d0.
	lo := HookePotential(distMatrix(1.5), 2, 5).At(0, 0)
	hi := HookePotential(distMatrix(2.5), 2, 5).At(0, 0)
	if math.Abs(lo-hi) > 1e-12 {
		t.Errorf("potential not symmetric about d0: %v vs %v", lo, hi)
	}
}

func TestExpDecay(t *testing.T) {
	// At d = d0 the force is -e*p0.
	f := ExpDecay(distMatrix(1), 1, 2, 3)
	if got := f.At(0, 0); math.Abs(got-(-6)) > 1e-12 {
		t.Errorf("ExpDecay at d0 = %v, want -6", got)
	}

	// Repulsion decays with distance.
	near := math.Abs(ExpDecay(distMatrix(1), 1, 2, 3).At(0, 0))
	far := math.Abs(ExpDecay(distMatrix(5), 1, 2, 3).At(0, 0))
	if far >= near {
		t.Errorf("force magnitude did not decay: near %v, far %v", near, far)
	}
}

func TestExpNegMirrorsExpDecay(t *testing.T) {
	for _, d := range []float64{0.5, 1, 2, 4} {
		fd := ExpDecay(distMatrix(d), 1, 2, 3).At(0, 0)
		fn := ExpNeg(distMatrix(d), 1, 2, 3).At(0, 0)
		if math.Abs(fd+fn) > 1e-12 {
			t.Errorf("at d=%v: ExpDecay %v and ExpNeg %v are not opposite", d, fd, fn)
		}
	}
}

func TestExpPotentialsAsymptotes(t *testing.T) {
	// pot_expdecay: p0 at d0, ~0 far away.
	if got := ExpDecayPotential(distMatrix(1), 1, 2, 3).At(0, 0); math.Abs(got-2) > 1e-12 {
		t.Errorf("ExpDecayPotential at d0 = %v, want 2", got)
	}
	if got := ExpDecayPotential(distMatrix(20), 1, 2, 3).At(0, 0); math.Abs(got) > 1e-6 {
		t.Errorf("ExpDecayPotential far = %v, want ~0", got)
	}

	// pot_expneg: -p0 at d0, ~p0... the offset form rises to p0.
	if got := ExpNegPotential(distMatrix(1), 1, 2, 3).At(0, 0); math.Abs(got) > 1e-12 {
		t.Errorf("ExpNegPotential at d0 = %v, want 0", got)
	}
	if got := ExpNegPotential(distMatrix(20), 1, 2, 3).At(0, 0); math.Abs(got-2) > 1e-6 {
		t.Errorf("ExpNegPotential far = %v, want ~2", got)
	}
}

func TestAnharmonic(t *testing.T) {
	// pot0 < 0 gives the Lennard-Jones-like well with its minimum
	// at d0 (m=2, e1/e2=2).
	params := []float64{1, -1, 2, 4, 2}

	// Zero force at zero distance, by definition.
	if got := Anharmonic(distMatrix(0), params...).At(0, 0); got != 0 {
		t.Errorf("Anharmonic at d=0 = %v, want 0", got)
	}

	// The force crosses zero at the potential minimum.
	if got := Anharmonic(distMatrix(1), params...).At(0, 0); math.Abs(got) > 1e-12 {
		t.Errorf("Anharmonic at d0 = %v, want 0", got)
	}

	// Inside the well the pair is pushed apart (negative), outside
	// it is pulled together (positive).
	inside := Anharmonic(distMatrix(0.8), params...).At(0, 0)
	outside := Anharmonic(distMatrix(1.5), params...).At(0, 0)
	if inside >= 0 {
		t.Errorf("force inside minimum = %v, want < 0", inside)
	}
	if outside <= 0 {
		t.Errorf("force outside minimum = %v, want > 0", outside)
	}
}

func TestAnharmonicPotentialMinimum(t *testing.T) {
	at := func(d float64) float64 {
		return AnharmonicPotential(distMatrix(d), 1, -1, 2, 4, 2).At(0, 0)
	}

	if got := at(0); got != 0 {
		t.Errorf("potential at d=0 = %v, want 0", got)
	}
	if at(1) >= at(0.9) || at(1) >= at(1.1) {
		t.Errorf("potential not minimal at d0: E(0.9)=%v E(1)=%v E(1.1)=%v", at(0.9), at(1), at(1.1))
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"hooke", "expdecay", "expneg", "anharmonic"} {
		law, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if law.Force == nil || law.Potential == nil {
			t.Errorf("law %s missing functions", name)
		}
		if len(law.Params) == 0 {
			t.Errorf("law %s has no parameter names", name)
		}
	}

	if _, err := Get("gravity"); err == nil {
		t.Error("expected error for unknown law")
	}

	names := Names()
	if len(names) != 4 {
		t.Errorf("expected 4 laws, got %v", names)
	}
}
