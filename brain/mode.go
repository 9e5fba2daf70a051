package brain

import "github.com/jakecoffman/cp"

// Mode is the spider's current behavior. Exactly one is active at a time.
type Mode int

const (
	Patrolling Mode = iota
	Chasing
	Attacking
	Searching
)

func (m Mode) String() string {
	switch m {
	case Patrolling:
		return "patrolling"
	case Chasing:
		return "chasing"
	case Attacking:
		return "attacking"
	case Searching:
		return "searching"
	default:
		return "unknown"
	}
}

// State is the per-spider mutable record. Timers count down in seconds.
type State struct {
	Mode Mode
	// Hunting is set while the hunt memory window is open, from the last
	// sighting until HuntTimer runs out.
	Hunting         bool
	LastKnownTarget cp.Vector

	HuntTimer       float64
	SearchTimer     float64
	LoseTargetTimer float64
	PatrolTimer     float64

	PatrolDestination    cp.Vector
	HasPatrolDestination bool
}
