package system

import (
	"github.com/milk9111/siege/ecs"
	"github.com/milk9111/siege/ecs/component"
)

// PhysicsSystem steps the Chipmunk space and copies body positions back
// onto transforms and siege agents.
type PhysicsSystem struct {
	clock *Clock
}

func NewPhysicsSystem(clock *Clock) *PhysicsSystem {
	return &PhysicsSystem{clock: clock}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	pw.Step(ps.clock.DT)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Body == nil {
			return
		}
		t.Set(body.Body.Position())
		if en, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok && en.Agent != nil {
			en.Agent.Position = t.Vector()
			en.Agent.Velocity = body.Body.Velocity()
		}
	})
}
