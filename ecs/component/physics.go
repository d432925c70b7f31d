package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk2D body of an actor and its box size.
type PhysicsBody struct {
	Body       *cp.Body
	HalfWidth  float64
	HalfHeight float64
}

func (p *PhysicsBody) HalfExtents() cp.Vector {
	return cp.Vector{X: p.HalfWidth, Y: p.HalfHeight}
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
