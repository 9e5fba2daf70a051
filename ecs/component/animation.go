package component

import "github.com/milk9111/ritual/brain"

// AnimationFlags holds named animator booleans. Frame advances while the
// entity walks so the overlay can pulse legs.
type AnimationFlags struct {
	Flags      map[string]bool
	Frame      int
	FrameTimer float64
	FPS        float64
}

func (a *AnimationFlags) SetFlag(name string, value bool) {
	if a.Flags == nil {
		a.Flags = make(map[string]bool)
	}
	a.Flags[name] = value
}

func (a *AnimationFlags) Flag(name string) bool {
	if a == nil {
		return false
	}
	return a.Flags[name]
}

func (a *AnimationFlags) Walking() bool   { return a.Flag(brain.FlagWalking) }
func (a *AnimationFlags) Attacking() bool { return a.Flag(brain.FlagAttacking) }

var AnimationFlagsComponent = NewComponent[AnimationFlags]()
