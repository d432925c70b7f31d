package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
)

const defaultAnchorSpeed = 2.0

// AnchorSystem walks entities through their waypoints.
type AnchorSystem struct {
	clock *Clock
}

func NewAnchorSystem(clock *Clock) *AnchorSystem { return &AnchorSystem{clock: clock} }

func (s *AnchorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.DT

	entities := w.Query(component.AnchorComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		a, ok := ecs.Get(w, e, component.AnchorComponent.Kind())
		if !ok {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		target, ok := a.Target()
		if !ok {
			// past the last waypoint: stop and remove Anchor to stop updating
			applyVelocity(w, e, t, cp.Vector{}, dt)
			w.RemoveComponent(e, component.AnchorComponent.Kind())
			continue
		}

		speed := a.Speed
		if speed <= 0 {
			speed = defaultAnchorSpeed
		}

		delta := target.Sub(t.Vector())
		dist := delta.Length()
		if dist <= speed*dt {
			var v cp.Vector
			if dt > 0 {
				v = delta.Mult(1 / dt)
			}
			applyVelocity(w, e, t, v, dt)
			a.Index++
			if a.Index >= len(a.Waypoints) && a.Loop {
				a.Index = 0
			}
			continue
		}

		applyVelocity(w, e, t, delta.Mult(speed/dist), dt)
	}
}
