package siege

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/common"
)

// ActorKind decides which way an overlapping actor is pushed.
type ActorKind int

const (
	ActorPlayer ActorKind = iota
	ActorEnemy
)

func (k ActorKind) String() string {
	if k == ActorPlayer {
		return "player"
	}
	return "enemy"
}

// Actor is an axis-aligned body that may overlap a barrier.
type Actor struct {
	Kind        ActorKind
	Center      cp.Vector
	HalfExtents cp.Vector
}

// Bounds is the actor's bounding box.
func (a Actor) Bounds() cp.BB {
	return cp.NewBBForExtents(a.Center, a.HalfExtents.X, a.HalfExtents.Y)
}

// OverlapParams tune the resolver.
type OverlapParams struct {
	// PushInDistance is how far past the anchor, along the inward axis, an
	// enemy must be before it is pushed inward instead of outward.
	PushInDistance float64
	Skin           float64
	MaxIterations  int
}

// Resolution describes what a Resolve call did.
type Resolution struct {
	Overlapping  bool
	Position     cp.Vector
	Direction    cp.Vector
	MostlyInside bool
	Iterations   int
	// Separated is false when the iteration budget ran out with the bodies
	// still touching; the next pass keeps resolving.
	Separated bool
}

// OverlapResolver pushes actors out of barrier footprints to the side
// defined by the barrier's anchor.
type OverlapResolver struct {
	params OverlapParams
}

func NewOverlapResolver(params OverlapParams) *OverlapResolver {
	if params.MaxIterations < 1 {
		params.MaxIterations = 3
	}
	params.Skin = common.NonNegative(params.Skin)
	return &OverlapResolver{params: params}
}

// Overlaps reports whether the actor's bounds intersect the barrier footprint.
// Touching edges do not count.
func Overlaps(actor Actor, b *Barrier) bool {
	if b == nil {
		return false
	}
	return strictIntersects(actor.Bounds(), b.Bounds())
}

// Resolve moves the actor out of the barrier. The returned Position is the
// actor center after resolution; callers copy it onto their body.
func (r *OverlapResolver) Resolve(actor Actor, b *Barrier) Resolution {
	res := Resolution{Position: actor.Center, Separated: true}
	if b == nil || !Overlaps(actor, b) {
		return res
	}
	res.Overlapping = true

	outward := b.Outward()
	if outward == (cp.Vector{}) {
		// no anchor axis to resolve along
		res.Separated = false
		return res
	}
	inward := outward.Mult(-1)

	dir := inward
	if actor.Kind == ActorEnemy && !IsEnemyPastThreshold(actor.Center, b, r.params.PushInDistance) {
		dir = outward
	}
	res.Direction = dir
	res.MostlyInside = MostlyInside(actor, b)

	lateralAxis := common.Perp(dir)
	for i := 0; i < r.params.MaxIterations; i++ {
		if !Overlaps(actor, b) {
			break
		}
		res.Iterations++

		reach := common.ProjectedExtent(b.HalfExtents, dir) + common.ProjectedExtent(actor.HalfExtents, dir) + r.params.Skin
		target := b.Center.Add(dir.Mult(reach))
		if !res.MostlyInside {
			lateral := actor.Center.Sub(b.Center).Dot(lateralAxis)
			target = target.Add(lateralAxis.Mult(lateral))
		}
		actor.Center = target
	}

	res.Position = actor.Center
	res.Separated = !Overlaps(actor, b)
	return res
}

// IsEnemyPastThreshold reports whether pos lies at least pushInDistance past
// the barrier anchor along the inward axis.
func IsEnemyPastThreshold(pos cp.Vector, b *Barrier, pushInDistance float64) bool {
	if b == nil {
		return false
	}
	outward := b.Outward()
	if outward == (cp.Vector{}) {
		return false
	}
	depth := pos.Sub(b.Anchor).Dot(outward.Mult(-1))
	return depth >= pushInDistance
}

// MostlyInside samples the actor center and its four cardinal extent points
// and reports whether at least three lie inside the barrier footprint.
func MostlyInside(actor Actor, b *Barrier) bool {
	if b == nil {
		return false
	}
	bb := b.Bounds()
	c, h := actor.Center, actor.HalfExtents
	samples := [5]cp.Vector{
		c,
		{X: c.X + h.X, Y: c.Y},
		{X: c.X - h.X, Y: c.Y},
		{X: c.X, Y: c.Y + h.Y},
		{X: c.X, Y: c.Y - h.Y},
	}
	inside := 0
	for _, s := range samples {
		if bb.ContainsVect(s) {
			inside++
		}
	}
	return inside >= 3
}

func strictIntersects(a, b cp.BB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}
