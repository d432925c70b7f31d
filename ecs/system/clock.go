package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
)

// Clock is the fixed-step time shared by the systems of one simulation.
type Clock struct {
	Tick int
	DT   float64
}

func NewClock(dt float64) *Clock {
	return &Clock{DT: dt}
}

func (c *Clock) Advance() {
	c.Tick++
}

// applyVelocity hands v to the entity's body, or moves the transform when
// the entity has no body.
func applyVelocity(w *ecs.World, e ecs.Entity, t *component.Transform, v cp.Vector, dt float64) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetVelocityVector(v)
		return
	}
	if t != nil && dt > 0 {
		t.Set(t.Vector().Add(v.Mult(dt)))
	}
}
