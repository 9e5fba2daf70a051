package brain

import (
	"io"
	"log/slog"

	"github.com/jakecoffman/cp"
)

type fakePerception struct {
	hit      bool
	isTarget bool
	calls    int
}

func (p *fakePerception) LineOfSight(_, _ cp.Vector, _ float64) (bool, bool) {
	p.calls++
	return p.hit, p.isTarget
}

func clearSight() *fakePerception { return &fakePerception{hit: true, isTarget: true} }

type fakeNav struct {
	pos     cp.Vector
	heading cp.Vector
	vel     cp.Vector
	desired cp.Vector

	// snap resolves navigable points; nil means every point is walkable.
	snap func(p cp.Vector, radius float64) (cp.Vector, bool)

	destination    cp.Vector
	hasDestination bool
	speed          float64
	resolved       []cp.Vector
}

func newFakeNav() *fakeNav {
	return &fakeNav{heading: cp.Vector{X: 1}}
}

func (n *fakeNav) SetDestination(p cp.Vector) {
	n.destination = p
	n.hasDestination = true
}

func (n *fakeNav) ClearDestination()          { n.hasDestination = false }
func (n *fakeNav) SetSpeed(s float64)         { n.speed = s }
func (n *fakeNav) CurrentVelocity() cp.Vector { return n.vel }
func (n *fakeNav) DesiredVelocity() cp.Vector { return n.desired }
func (n *fakeNav) Position() cp.Vector        { return n.pos }
func (n *fakeNav) Heading() cp.Vector         { return n.heading }

func (n *fakeNav) FindNearestNavigablePoint(around cp.Vector, radius float64) (cp.Vector, bool) {
	p, ok := around, true
	if n.snap != nil {
		p, ok = n.snap(around, radius)
	}
	if ok {
		n.resolved = append(n.resolved, p)
	}
	return p, ok
}

type fakeAnimator struct {
	flags map[string]bool
}

func (a *fakeAnimator) SetFlag(name string, value bool) {
	if a.flags == nil {
		a.flags = map[string]bool{}
	}
	a.flags[name] = value
}

// constRand always returns the same value.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// calmConfig disables every random side behavior so tests see only the
// core transitions.
func calmConfig() Config {
	cfg := DefaultConfig()
	cfg.FlankChance = 0
	cfg.ListenChance = 0
	cfg.AmbientSenseChance = 0
	cfg.PauseChance = 0
	return cfg
}
