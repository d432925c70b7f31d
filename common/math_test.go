package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestSafeNormalize(t *testing.T) {
	cases := []struct {
		name    string
		in      cp.Vector
		wantDir cp.Vector
		wantLen float64
	}{
		{"axis", cp.Vector{X: 3}, cp.Vector{X: 1}, 3},
		{"diagonal", cp.Vector{X: 3, Y: 4}, cp.Vector{X: 0.6, Y: 0.8}, 5},
		{"below_epsilon", cp.Vector{X: 1e-9}, cp.Vector{}, 1e-9},
		{"zero", cp.Vector{}, cp.Vector{}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir, l := SafeNormalize(c.in, Epsilon)
			if math.Abs(dir.X-c.wantDir.X) > 1e-12 || math.Abs(dir.Y-c.wantDir.Y) > 1e-12 {
				t.Fatalf("expected dir %v, got %v", c.wantDir, dir)
			}
			if math.Abs(l-c.wantLen) > 1e-12 {
				t.Fatalf("expected len %v, got %v", c.wantLen, l)
			}
		})
	}
}

func TestWrapPositive(t *testing.T) {
	if got := WrapPositive(-math.Pi / 2); math.Abs(got-1.5*math.Pi) > 1e-12 {
		t.Fatalf("expected 3π/2, got %v", got)
	}
	if got := WrapPositive(0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestProjectedExtent(t *testing.T) {
	half := cp.Vector{X: 2, Y: 1}
	if got := ProjectedExtent(half, cp.Vector{X: 1}); got != 2 {
		t.Fatalf("expected 2 on x axis, got %v", got)
	}
	if got := ProjectedExtent(half, cp.Vector{Y: -1}); got != 1 {
		t.Fatalf("expected 1 on y axis, got %v", got)
	}
}

func TestPerpIsCounterClockwise(t *testing.T) {
	p := Perp(cp.Vector{X: 1})
	if p.X != 0 || p.Y != 1 {
		t.Fatalf("expected (0,1), got %v", p)
	}
}
