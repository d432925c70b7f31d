package component

import "github.com/jakecoffman/cp"

// Anchor moves an entity through a list of waypoints.
type Anchor struct {
	Waypoints []cp.Vector
	Speed     float64 // units per second
	Loop      bool
	Index     int
	Arrive    float64
}

// Target returns the current waypoint.
func (a *Anchor) Target() (cp.Vector, bool) {
	if a == nil || a.Index < 0 || a.Index >= len(a.Waypoints) {
		return cp.Vector{}, false
	}
	return a.Waypoints[a.Index], true
}

var AnchorComponent = NewComponent[Anchor]()
