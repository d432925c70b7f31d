package common

import "github.com/jakecoffman/cp"

// PointInPolygon is the even-odd ray cast. Points exactly on an edge may
// land on either side.
func PointInPolygon(p cp.Vector, poly []cp.Vector) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PolygonBounds is the tightest box around poly.
func PolygonBounds(poly []cp.Vector) cp.BB {
	if len(poly) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: poly[0].X, B: poly[0].Y, R: poly[0].X, T: poly[0].Y}
	for _, v := range poly[1:] {
		bb.L = min(bb.L, v.X)
		bb.B = min(bb.B, v.Y)
		bb.R = max(bb.R, v.X)
		bb.T = max(bb.T, v.Y)
	}
	return bb
}
