package siege

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/common"
)

// Barrier is a destructible gate segment in the castle wall. Broken barriers
// stay in the registry as pass-through geometry until repaired.
type Barrier struct {
	ID            BarrierID
	Center        cp.Vector
	HalfExtents   cp.Vector
	Anchor        cp.Vector
	HoldRadius    float64
	ReleaseMargin float64
	Health        int
	MaxHealth     int
}

// BarrierSpec describes a barrier at castle-assembly time.
type BarrierSpec struct {
	ID            BarrierID
	Center        cp.Vector
	HalfExtents   cp.Vector
	Outward       cp.Vector // direction the outer face points to; normalized here
	AnchorOffset  float64
	HoldRadius    float64
	ReleaseMargin float64
	MaxHealth     int
}

// NewBarrier builds a full-health barrier whose anchor sits AnchorOffset away
// from the center along the outward face.
func NewBarrier(spec BarrierSpec) *Barrier {
	out, _ := common.SafeNormalize(spec.Outward, common.Epsilon)
	maxHealth := spec.MaxHealth
	if maxHealth < 0 {
		maxHealth = 0
	}
	return &Barrier{
		ID:            spec.ID,
		Center:        spec.Center,
		HalfExtents:   cp.Vector{X: common.NonNegative(spec.HalfExtents.X), Y: common.NonNegative(spec.HalfExtents.Y)},
		Anchor:        spec.Center.Add(out.Mult(common.NonNegative(spec.AnchorOffset))),
		HoldRadius:    common.NonNegative(spec.HoldRadius),
		ReleaseMargin: common.NonNegative(spec.ReleaseMargin),
		Health:        maxHealth,
		MaxHealth:     maxHealth,
	}
}

// Broken reports whether the barrier has no health left.
func (b *Barrier) Broken() bool {
	return b != nil && b.Health <= 0
}

// Outward is the unit vector from the center to the anchor. It is zero when
// the anchor coincides with the center.
func (b *Barrier) Outward() cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	out, _ := common.SafeNormalize(b.Anchor.Sub(b.Center), common.Epsilon)
	return out
}

// Bounds is the barrier footprint.
func (b *Barrier) Bounds() cp.BB {
	return cp.NewBBForExtents(b.Center, b.HalfExtents.X, b.HalfExtents.Y)
}

// Damage removes health and reports whether this hit broke the barrier.
func (b *Barrier) Damage(amount int) bool {
	if b == nil || amount <= 0 || b.Broken() {
		return false
	}
	b.setHealth(b.Health - amount)
	return b.Broken()
}

// Repair restores health and reports whether the barrier went from broken to
// intact.
func (b *Barrier) Repair(amount int) bool {
	if b == nil || amount <= 0 {
		return false
	}
	wasBroken := b.Broken()
	b.setHealth(b.Health + amount)
	return wasBroken && !b.Broken()
}

func (b *Barrier) setHealth(h int) {
	if h < 0 {
		h = 0
	}
	if h > b.MaxHealth {
		h = b.MaxHealth
	}
	b.Health = h
}
