package common

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestPointInPolygon(t *testing.T) {
	square := []cp.Vector{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	// an L shape: the notch at the top right is outside
	ell := []cp.Vector{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4}}

	cases := []struct {
		name string
		poly []cp.Vector
		p    cp.Vector
		want bool
	}{
		{"square_center", square, cp.Vector{}, true},
		{"square_outside", square, cp.Vector{X: 2}, false},
		{"square_above", square, cp.Vector{Y: 1.5}, false},
		{"ell_arm", ell, cp.Vector{X: 3, Y: 1}, true},
		{"ell_notch", ell, cp.Vector{X: 3, Y: 3}, false},
		{"ell_column", ell, cp.Vector{X: 1, Y: 3}, true},
		{"degenerate", square[:2], cp.Vector{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PointInPolygon(c.p, c.poly); got != c.want {
				t.Fatalf("PointInPolygon(%v) = %v, want %v", c.p, got, c.want)
			}
		})
	}
}

func TestPolygonBounds(t *testing.T) {
	bb := PolygonBounds([]cp.Vector{{X: 1, Y: 2}, {X: -3, Y: 5}, {X: 4, Y: -1}})
	want := cp.BB{L: -3, B: -1, R: 4, T: 5}
	if bb != want {
		t.Fatalf("bounds = %+v, want %+v", bb, want)
	}
	if (PolygonBounds(nil) != cp.BB{}) {
		t.Fatalf("empty polygon should have zero bounds")
	}
}
