package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/common"
)

// Region is the castle footprint as a closed polygon.
type Region struct {
	Polygon []cp.Vector
	Bounds  cp.BB
}

func NewRegion(polygon []cp.Vector) *Region {
	return &Region{Polygon: polygon, Bounds: common.PolygonBounds(polygon)}
}

// Contains reports whether p is inside the footprint.
func (r *Region) Contains(p cp.Vector) bool {
	if r == nil || !r.Bounds.ContainsVect(p) {
		return false
	}
	return common.PointInPolygon(p, r.Polygon)
}

var RegionComponent = NewComponent[Region]()
