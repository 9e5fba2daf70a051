package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/common"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

const (
	// Agents only accelerate when facing within this angle of their
	// waypoint; wider turns happen in place.
	facingToleranceDeg = 45.0
	waypointReach      = 0.25
)

// NavAgentSystem steers every NavAgent along its path and writes the result
// into the kinematic body.
type NavAgentSystem struct{}

func NewNavAgentSystem() *NavAgentSystem {
	return &NavAgentSystem{}
}

func (ns *NavAgentSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	grid, _ := navGrid(w)

	ecs.ForEach3(w, component.NavAgentComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, agent *component.NavAgent, body *component.PhysicsBody, transform *component.Transform) {
		if body.Body == nil {
			return
		}
		pos := cp.Vector{X: transform.X, Y: transform.Y}
		vel := steer(agent, grid, pos, dt)
		vel = clampToWalkable(grid, pos, vel, body.Radius, dt)

		agent.Velocity = vel
		body.Body.SetVelocityVector(vel)
		body.Body.SetAngle(agent.Heading.ToAngle())
	})
}

// steer advances the agent's heading and speed by dt and returns the new
// velocity.
func steer(agent *component.NavAgent, grid *component.NavGrid, pos cp.Vector, dt float64) cp.Vector {
	if agent.Heading.LengthSq() < 1e-12 {
		agent.Heading = cp.Vector{X: 1}
	}
	speed := agent.Velocity.Length()

	wp, ok := nextWaypoint(agent, grid, pos)
	if !ok {
		agent.DesiredVelocity = cp.Vector{}
		speed = math.Max(speed-agent.Acceleration*dt, 0)
		return agent.Heading.Mult(speed)
	}

	dir := common.Normalize(wp.Sub(pos))
	agent.DesiredVelocity = dir.Mult(agent.Speed)
	agent.Heading = turnToward(agent.Heading, dir, agent.AngularSpeed*dt)

	if common.AngleBetweenDeg(agent.Heading, dir) <= facingToleranceDeg {
		speed = math.Min(speed+agent.Acceleration*dt, agent.Speed)
	} else {
		speed = math.Max(speed-agent.Acceleration*dt, 0)
	}
	// Do not overshoot the final waypoint.
	if len(agent.Path) == 1 {
		if d := pos.Distance(wp); speed*dt > d {
			speed = d / dt
		}
	}
	return agent.Heading.Mult(speed)
}

// nextWaypoint plans a path when one is pending, drops reached waypoints,
// and clears the destination on arrival.
func nextWaypoint(agent *component.NavAgent, grid *component.NavGrid, pos cp.Vector) (cp.Vector, bool) {
	if !agent.HasDestination {
		agent.Path = nil
		return cp.Vector{}, false
	}
	if agent.Path == nil {
		if grid == nil {
			agent.Path = []cp.Vector{agent.Destination}
		} else {
			agent.Path = FindPath(grid, pos, agent.Destination)
		}
		if agent.Path == nil {
			agent.HasDestination = false
			return cp.Vector{}, false
		}
	}

	for len(agent.Path) > 0 {
		reach := waypointReach
		if len(agent.Path) == 1 {
			reach = math.Max(agent.StoppingDistance, 0.05)
		}
		if pos.Distance(agent.Path[0]) > reach {
			return agent.Path[0], true
		}
		agent.Path = agent.Path[1:]
	}
	agent.HasDestination = false
	agent.Path = nil
	return cp.Vector{}, false
}

// turnToward rotates unit vector from toward unit vector to by at most
// maxDeg degrees.
func turnToward(from, to cp.Vector, maxDeg float64) cp.Vector {
	if to.LengthSq() < 1e-12 {
		return from
	}
	angle := math.Atan2(from.Cross(to), from.Dot(to))
	limit := maxDeg * math.Pi / 180
	if maxDeg <= 0 {
		// no turn rate configured: snap
		limit = math.Pi
	}
	angle = common.Clamp(angle, -limit, limit)
	return common.Normalize(from.Rotate(cp.ForAngle(angle)))
}

// clampToWalkable zeroes each velocity axis that would carry a body of the
// given radius into a blocked cell during dt.
func clampToWalkable(grid *component.NavGrid, pos, vel cp.Vector, radius, dt float64) cp.Vector {
	if grid == nil || dt <= 0 {
		return vel
	}
	if vel.X != 0 {
		probe := cp.Vector{X: pos.X + vel.X*dt + math.Copysign(radius, vel.X), Y: pos.Y}
		if !grid.Walkable(probe) {
			vel.X = 0
		}
	}
	if vel.Y != 0 {
		probe := cp.Vector{X: pos.X, Y: pos.Y + vel.Y*dt + math.Copysign(radius, vel.Y)}
		if !grid.Walkable(probe) {
			vel.Y = 0
		}
	}
	return vel
}

// AgentNavigator exposes one entity's NavAgent as a brain.Navigator.
type AgentNavigator struct {
	Agent     *component.NavAgent
	Transform *component.Transform
	Grid      *component.NavGrid
}

func (n *AgentNavigator) SetDestination(p cp.Vector) {
	if n.Agent.HasDestination && n.Agent.Destination == p {
		return
	}
	n.Agent.Destination = p
	n.Agent.HasDestination = true
	n.Agent.Path = nil
}

func (n *AgentNavigator) ClearDestination() {
	n.Agent.HasDestination = false
	n.Agent.Path = nil
}

func (n *AgentNavigator) SetSpeed(speed float64) { n.Agent.Speed = speed }

func (n *AgentNavigator) CurrentVelocity() cp.Vector { return n.Agent.Velocity }

func (n *AgentNavigator) DesiredVelocity() cp.Vector { return n.Agent.DesiredVelocity }

func (n *AgentNavigator) Position() cp.Vector {
	return cp.Vector{X: n.Transform.X, Y: n.Transform.Y}
}

func (n *AgentNavigator) Heading() cp.Vector {
	if n.Agent.Heading.LengthSq() < 1e-12 {
		return cp.Vector{X: 1}
	}
	return n.Agent.Heading
}

func (n *AgentNavigator) FindNearestNavigablePoint(around cp.Vector, radius float64) (cp.Vector, bool) {
	if n.Grid == nil {
		return around, true
	}
	return NearestWalkable(n.Grid, around, radius)
}
