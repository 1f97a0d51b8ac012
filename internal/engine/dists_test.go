package engine

import (
	"math"
	"testing"
)

func TestDists_Displacements(t *testing.T) {
	pos := Positions{{0, 0}, {0, 3}, {4, 0}}

	xDist, yDist, dist := Dists(pos)

	if got := xDist.At(0, 1); got != 3 {
		t.Errorf("xDist(0,1) = %v, want 3", got)
	}
	if got := xDist.At(1, 0); got != -3 {
		t.Errorf("xDist(1,0) = %v, want -3", got)
	}
	if got := yDist.At(0, 2); got != 4 {
		t.Errorf("yDist(0,2) = %v, want 4", got)
	}
	if got := dist.At(1, 2); got != 5 {
		t.Errorf("dist(1,2) = %v, want 5", got)
	}
}

func TestDists_DiagonalZero(t *testing.T) {
	pos := Positions{{1.5, -2.0}, {3.0, 0.25}, {-7.0, 4.0}}

	xDist, yDist, dist := Dists(pos)

	for i := range pos {
		if xDist.At(i, i) != 0 || yDist.At(i, i) != 0 || dist.At(i, i) != 0 {
			t.Errorf("diagonal entry %d not exactly zero", i)
		}
	}
}

func TestDists_SymmetryAndPythagoras(t *testing.T) {
	pos := Positions{{0.1, 0.9}, {-3.2, 1.1}, {2.5, 2.5}, {0, -4}}

	xDist, yDist, dist := Dists(pos)

	for i := range pos {
		for j := range pos {
			if dist.At(i, j) != dist.At(j, i) {
				t.Errorf("dist(%d,%d) != dist(%d,%d)", i, j, j, i)
			}
			if dist.At(i, j) < 0 {
				t.Errorf("dist(%d,%d) negative", i, j)
			}
			dx, dy := xDist.At(i, j), yDist.At(i, j)
			if want := math.Sqrt(dx*dx + dy*dy); dist.At(i, j) != want {
				t.Errorf("dist(%d,%d) = %v, want %v", i, j, dist.At(i, j), want)
			}
		}
	}
}

func TestDists_SmallPopulations(t *testing.T) {
	_, _, dist := Dists(Positions{})
	if dist.N != 0 || len(dist.Data) != 0 {
		t.Errorf("expected empty matrices for N=0")
	}

	_, _, dist = Dists(Positions{{2, 3}})
	if dist.N != 1 || dist.At(0, 0) != 0 {
		t.Errorf("expected 1x1 zero matrix for N=1")
	}
}

func TestDists_Idempotent(t *testing.T) {
	pos := Positions{{0.3, 0.7}, {1.9, -0.2}, {-5, 5}}

	_, _, d1 := Dists(pos)
	_, _, d2 := Dists(pos)

	for k := range d1.Data {
		if d1.Data[k] != d2.Data[k] {
			t.Fatalf("entry %d differs between identical calls", k)
		}
	}
}
