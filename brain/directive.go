package brain

import "github.com/jakecoffman/cp"

// MoveKind says what the navigator should do with its destination.
type MoveKind int

const (
	// MoveKeep leaves the current destination untouched.
	MoveKeep MoveKind = iota
	MoveTo
	// MoveHold clears the destination so the body stops where it is.
	MoveHold
)

// Directive is the outcome of one Tick.
type Directive struct {
	Mode        Mode
	Move        MoveKind
	Destination cp.Vector
	// SpeedMultiplier scales Config.BaseSpeed; zero leaves speed unchanged.
	SpeedMultiplier float64
	Walking         bool
	Attacking       bool
}

func moveTo(p cp.Vector) Directive {
	return Directive{Move: MoveTo, Destination: p}
}

func hold() Directive {
	return Directive{Move: MoveHold}
}

// Apply feeds d to the navigator and animator. Either may be nil.
func Apply(d Directive, baseSpeed float64, nav Navigator, anim Animator) {
	if nav != nil {
		if d.SpeedMultiplier > 0 {
			nav.SetSpeed(baseSpeed * d.SpeedMultiplier)
		}
		switch d.Move {
		case MoveTo:
			nav.SetDestination(d.Destination)
		case MoveHold:
			nav.ClearDestination()
		}
	}
	if anim != nil {
		anim.SetFlag(FlagWalking, d.Walking)
		anim.SetFlag(FlagAttacking, d.Attacking)
	}
}
