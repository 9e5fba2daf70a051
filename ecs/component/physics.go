package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Static bodies are axis-aligned boxes; everything else is a kinematic
// circle moved by its velocity.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
	Radius float64
	Static bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
