package ecs

import (
	"github.com/jakecoffman/cp"
)

const (
	CollisionTypeBarrier cp.CollisionType = iota + 1
	CollisionTypePlayer
	CollisionTypeEnemy
)

// PhysicsWorld owns the Chipmunk space. Actors are kinematic bodies driven by
// velocity; barriers are static boxes that leave the space while broken.
type PhysicsWorld struct {
	space *cp.Space

	bodies  map[Entity]*cp.Body
	actors  map[Entity]*cp.Shape
	statics map[Entity]*cp.Shape
	active  map[Entity]bool
}

// NewPhysicsWorld creates a top-down space with no gravity.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	return &PhysicsWorld{
		space:   space,
		bodies:  make(map[Entity]*cp.Body),
		actors:  make(map[Entity]*cp.Shape),
		statics: make(map[Entity]*cp.Shape),
		active:  make(map[Entity]bool),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddActor creates a kinematic body with a sensor box for an entity. Calling
// it again for the same entity returns the existing body.
func (pw *PhysicsWorld) AddActor(e Entity, pos, halfExtents cp.Vector, collision cp.CollisionType) *cp.Body {
	if pw == nil || pw.space == nil {
		return nil
	}
	if body, ok := pw.bodies[e]; ok {
		return body
	}

	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	shape := cp.NewBox(body, 2*halfExtents.X, 2*halfExtents.Y, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collision)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.bodies[e] = body
	pw.actors[e] = shape
	return body
}

// RemoveActor drops an actor body from the space.
func (pw *PhysicsWorld) RemoveActor(e Entity) bool {
	if pw == nil {
		return false
	}
	body, ok := pw.bodies[e]
	if !ok {
		return false
	}
	if shape := pw.actors[e]; shape != nil {
		pw.space.RemoveShape(shape)
	}
	pw.space.RemoveBody(body)
	delete(pw.bodies, e)
	delete(pw.actors, e)
	return true
}

// AddStaticBox registers a static box on the space's static body.
func (pw *PhysicsWorld) AddStaticBox(e Entity, bb cp.BB) *cp.Shape {
	if pw == nil || pw.space == nil {
		return nil
	}
	if shape, ok := pw.statics[e]; ok {
		return shape
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(CollisionTypeBarrier)
	pw.space.AddShape(shape)
	pw.statics[e] = shape
	pw.active[e] = true
	return shape
}

// SetStaticEnabled adds or removes a static box from the space without
// forgetting it.
func (pw *PhysicsWorld) SetStaticEnabled(e Entity, enabled bool) bool {
	if pw == nil {
		return false
	}
	shape, ok := pw.statics[e]
	if !ok || pw.active[e] == enabled {
		return false
	}
	if enabled {
		pw.space.AddShape(shape)
	} else {
		pw.space.RemoveShape(shape)
	}
	pw.active[e] = enabled
	return true
}

// StaticEnabled reports whether the static box of e is in the space.
func (pw *PhysicsWorld) StaticEnabled(e Entity) bool {
	if pw == nil {
		return false
	}
	return pw.active[e]
}

func (pw *PhysicsWorld) Body(e Entity) (*cp.Body, bool) {
	if pw == nil {
		return nil, false
	}
	body, ok := pw.bodies[e]
	return body, ok
}

func (pw *PhysicsWorld) Position(e Entity) (cp.Vector, bool) {
	body, ok := pw.Body(e)
	if !ok {
		return cp.Vector{}, false
	}
	return body.Position(), true
}

func (pw *PhysicsWorld) SetPosition(e Entity, pos cp.Vector) bool {
	body, ok := pw.Body(e)
	if !ok {
		return false
	}
	body.SetPosition(pos)
	return true
}

func (pw *PhysicsWorld) SetVelocity(e Entity, v cp.Vector) bool {
	body, ok := pw.Body(e)
	if !ok {
		return false
	}
	body.SetVelocityVector(v)
	return true
}

// Mover binds an actor body to a velocity sink.
func (pw *PhysicsWorld) Mover(e Entity) *BodyMover {
	body, ok := pw.Body(e)
	if !ok {
		return nil
	}
	return &BodyMover{body: body}
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// BodyMover writes velocities straight to a kinematic body.
type BodyMover struct {
	body *cp.Body
}

func (m *BodyMover) SetVelocity(v cp.Vector) {
	if m == nil || m.body == nil {
		return
	}
	m.body.SetVelocityVector(v)
}
