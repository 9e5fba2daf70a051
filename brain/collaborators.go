package brain

import "github.com/jakecoffman/cp"

// Animation flag names understood by the host animator.
const (
	FlagWalking   = "isWalking"
	FlagAttacking = "isAttacking"
)

// Perception answers line-of-sight queries. hit reports whether the ray
// struck anything within maxDistance; hitIsTarget whether the first thing
// struck was the target.
type Perception interface {
	LineOfSight(from, toward cp.Vector, maxDistance float64) (hit, hitIsTarget bool)
}

// Navigator moves the spider's body across the walkable surface.
type Navigator interface {
	SetDestination(p cp.Vector)
	ClearDestination()
	SetSpeed(speed float64)
	CurrentVelocity() cp.Vector
	DesiredVelocity() cp.Vector
	Position() cp.Vector
	// Heading is the unit vector the body faces.
	Heading() cp.Vector
	FindNearestNavigablePoint(around cp.Vector, searchRadius float64) (cp.Vector, bool)
}

type Animator interface {
	SetFlag(name string, value bool)
}
