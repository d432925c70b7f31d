package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the default guard for normalizing near-zero vectors.
const Epsilon = 1e-6

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NonNegative clamps negative (and NaN) configuration values to zero.
func NonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

// SafeNormalize returns the unit vector of v and its length. Vectors shorter
// than eps normalize to the zero vector.
func SafeNormalize(v cp.Vector, eps float64) (cp.Vector, float64) {
	l := math.Hypot(v.X, v.Y)
	if l <= eps {
		return cp.Vector{}, l
	}
	return cp.Vector{X: v.X / l, Y: v.Y / l}, l
}

// Perp rotates v by 90 degrees counter-clockwise.
func Perp(v cp.Vector) cp.Vector {
	return cp.Vector{X: -v.Y, Y: v.X}
}

// ProjectedExtent is the half-length of an axis-aligned box with the given
// half extents projected onto the unit axis.
func ProjectedExtent(half, axis cp.Vector) float64 {
	return math.Abs(half.X*axis.X) + math.Abs(half.Y*axis.Y)
}

// WrapPositive maps an angle difference into [0, 2π).
func WrapPositive(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
