package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeAgent
)

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk2D space.
// Walls are static boxes; the player and spiders are kinematic circles
// whose velocity is integrated by Step. The space doubles as the
// line-of-sight oracle.
type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

// RayHit is the first shape struck by a ray.
type RayHit struct {
	Entity ecs.Entity
	Point  cp.Vector
	Alpha  float64
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if ps == nil || w == nil {
		return
	}

	ps.Sync(w)
	if dt > 0 {
		ps.space.Step(dt)
	}
	ps.syncTransforms(w)
}

// Sync creates bodies for new PhysicsBody components and removes those of
// destroyed entities. Builders call it so queries work before the first
// step.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}
			return
		}

		info := ps.createBodyInfo(transform, bodyComp)
		if info == nil {
			return
		}
		ps.entities[e] = info
		for _, s := range info.shapes {
			ps.shapes[s] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	center := cp.Vector{X: transform.X, Y: transform.Y}

	if bodyComp.Static {
		width, height := bodyComp.Width, bodyComp.Height
		if width <= 0 || height <= 0 {
			return nil
		}
		bb := cp.BB{L: center.X - width/2, B: center.Y - height/2, R: center.X + width/2, T: center.Y + height/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	radius := bodyComp.Radius
	if radius <= 0 {
		radius = math.Max(bodyComp.Width, bodyComp.Height) / 2
	}
	if radius <= 0 {
		return nil
	}

	body := cp.NewKinematicBody()
	body.SetPosition(center)
	body.SetAngle(transform.Rotation)
	ps.space.AddBody(body)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetCollisionType(collisionTypeAgent)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, s := range info.shapes {
			ps.space.RemoveShape(s)
			delete(ps.shapes, s)
		}
		if !info.static && info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

// Raycast casts a segment from from toward toward, clipped to maxDistance,
// and returns the first shape struck that does not belong to self.
func (ps *PhysicsSystem) Raycast(self ecs.Entity, from, toward cp.Vector, maxDistance float64) (RayHit, bool) {
	if ps == nil || maxDistance <= 0 {
		return RayHit{}, false
	}
	dir := toward.Sub(from)
	length := dir.Length()
	if length < 1e-9 {
		return RayHit{}, false
	}
	end := from.Add(dir.Mult(maxDistance / length))

	best := RayHit{Alpha: math.Inf(1)}
	found := false
	ps.space.SegmentQuery(from, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		if shape.Sensor() {
			return
		}
		owner, ok := ps.shapes[shape]
		if !ok || owner == self {
			return
		}
		if alpha < best.Alpha {
			best = RayHit{Entity: owner, Point: point, Alpha: alpha}
			found = true
		}
	}, nil)
	return best, found
}

// LineOfSight reports whether a ray from from toward toward strikes
// anything within maxDistance and whether that first hit is target. A ray
// of zero length means self stands on the target and sees it.
func (ps *PhysicsSystem) LineOfSight(self, target ecs.Entity, from, toward cp.Vector, maxDistance float64) (hit, hitIsTarget bool) {
	if from.Distance(toward) < 1e-9 {
		return true, true
	}
	h, ok := ps.Raycast(self, from, toward, maxDistance)
	if !ok {
		return false, false
	}
	return true, h.Entity == target
}

// EntityPerception answers line-of-sight queries for one spider against
// the current player.
type EntityPerception struct {
	Physics *PhysicsSystem
	Self    ecs.Entity
	Target  ecs.Entity
	// Last, when set, receives every probe for the debug overlay.
	Last *component.Sight
}

func (p *EntityPerception) LineOfSight(from, toward cp.Vector, maxDistance float64) (bool, bool) {
	if p == nil || p.Physics == nil {
		return false, false
	}
	hit, isTarget := p.Physics.LineOfSight(p.Self, p.Target, from, toward, maxDistance)
	if p.Last != nil {
		*p.Last = component.Sight{
			FromX: from.X, FromY: from.Y,
			ToX: toward.X, ToY: toward.Y,
			Hit: hit, HitTarget: isTarget,
		}
	}
	return hit, isTarget
}
