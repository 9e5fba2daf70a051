package brain

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/common"
)

const (
	huntMemoryMin = 5.0
	huntMemoryMax = 10.0

	flankAngleMax    = 90.0
	flankDistanceMin = 3.0
	flankDistanceMax = 5.0

	chaseSpeedMin  = 0.8
	patrolSpeedMin = 0.5

	searchJitter         = 5.0
	searchRetargetMin    = 1.0
	searchRetargetMax    = 3.0
	searchProbeMin       = 3.0
	searchProbeMax       = 8.0
	searchProbeWaitMin   = 2.0
	searchProbeWaitMax   = 4.0
	listenDuration       = 1.0
	ambientOffsetMin     = 1.0
	ambientOffsetMax     = 3.0
	ambientFocusMin      = 5.0
	ambientFocusMax      = 8.0
	patrolRefreshMin     = 4.0
	patrolRefreshMax     = 8.0
	patrolPauseMin       = 0.5
	patrolPauseMax       = 2.0
	movingSpeedThreshold = 0.1
	turnLateralThreshold = 0.1
	turnForwardThreshold = 0.05
)

// Deps are the controller's collaborators. Perception and Navigator are
// required; without them the controller is inert.
type Deps struct {
	Perception Perception
	Navigator  Navigator
	Animator   Animator
	Rand       Rand
	Logger     *slog.Logger
}

// Controller owns one spider's behavior state.
type Controller struct {
	cfg        Config
	perception Perception
	nav        Navigator
	anim       Animator
	rng        Rand
	log        *slog.Logger

	state      State
	ready      bool
	flanking   bool
	flankPoint cp.Vector
	walking    bool
	// announce makes the first tick publish the patrol destination chosen
	// at construction.
	announce bool
}

// New validates cfg and builds a controller in Patrolling mode with its
// first patrol destination already chosen. A missing Perception or
// Navigator is reported once here; the controller is returned but every
// Tick is a no-op.
func New(cfg Config, deps Deps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:        cfg,
		perception: deps.Perception,
		nav:        deps.Navigator,
		anim:       deps.Animator,
		rng:        deps.Rand,
		log:        deps.Logger,
		state:      State{Mode: Patrolling},
	}
	if c.rng == nil {
		c.rng = NewRand(cfg.Seed)
	}
	if c.log == nil {
		c.log = slog.Default()
	}

	switch {
	case c.perception == nil:
		c.log.Error("brain: spider has no perception; behavior disabled")
		return c, nil
	case c.nav == nil:
		c.log.Error("brain: spider has no navigator; behavior disabled")
		return c, nil
	}

	c.ready = true
	if d := c.newPatrolTarget(c.nav.Position()); d.Move == MoveTo {
		c.announce = true
	}
	c.state.PatrolTimer = randRange(c.rng, patrolRefreshMin, patrolRefreshMax)
	return c, nil
}

// Ready reports whether the controller has the collaborators it needs.
func (c *Controller) Ready() bool {
	return c != nil && c.ready
}

func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a copy of the current behavior state.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Mode() Mode {
	return c.state.Mode
}

// Apply feeds d to the controller's own navigator and animator.
func (c *Controller) Apply(d Directive) {
	if !c.Ready() {
		return
	}
	Apply(d, c.cfg.BaseSpeed, c.nav, c.anim)
}

// Tick advances the behavior by dt seconds toward a target standing at
// target and returns what the spider should do this frame. A non-positive
// dt changes nothing.
func (c *Controller) Tick(dt float64, target cp.Vector) Directive {
	if !c.Ready() || !(dt > 0) || math.IsInf(dt, 0) {
		return c.unchanged()
	}

	self := c.nav.Position()
	distance := self.Distance(target)
	prev := c.state.Mode

	var d Directive
	switch {
	case distance < c.cfg.DetectionRange && c.lineOfSight(self, target):
		c.state.LastKnownTarget = target
		c.state.Hunting = true
		c.state.HuntTimer = randRange(c.rng, huntMemoryMin, huntMemoryMax)
		c.state.LoseTargetTimer = 0
		if distance < c.cfg.AttackRange {
			d = c.attack()
		} else {
			d = c.chase(dt, self, target)
		}
	case c.state.Hunting && c.state.HuntTimer > 0:
		var done bool
		d, done = c.search(dt, self)
		if done {
			d = c.patrol(dt, self, target)
		}
	default:
		d = c.patrol(dt, self, target)
	}

	if c.announce {
		c.announce = false
		if d.Move == MoveKeep && c.state.Mode == Patrolling && c.state.HasPatrolDestination {
			d.Move = MoveTo
			d.Destination = c.state.PatrolDestination
		}
	}

	d.Mode = c.state.Mode
	d.Attacking = c.state.Mode == Attacking
	if d.Attacking {
		c.walking = false
	} else {
		c.walking = c.isWalking()
	}
	d.Walking = c.walking

	if prev != c.state.Mode {
		c.log.Debug("spider mode changed", "from", prev.String(), "to", c.state.Mode.String())
	}
	return d
}

func (c *Controller) unchanged() Directive {
	return Directive{
		Mode:      c.state.Mode,
		Move:      MoveKeep,
		Walking:   c.walking,
		Attacking: c.state.Mode == Attacking,
	}
}

func (c *Controller) lineOfSight(self, target cp.Vector) bool {
	hit, isTarget := c.perception.LineOfSight(self, target, c.cfg.DetectionRange)
	return hit && isTarget
}

func (c *Controller) attack() Directive {
	c.state.Mode = Attacking
	c.flanking = false
	return hold()
}

func (c *Controller) chase(dt float64, self, target cp.Vector) Directive {
	c.state.Mode = Chasing
	c.state.SearchTimer -= dt

	// Keep running to a chosen flank point until it is reached or the
	// cooldown expires.
	if c.flanking && c.state.SearchTimer > 0 && self.Distance(c.flankPoint) > c.cfg.ArriveDistance {
		return Directive{Move: MoveKeep}
	}
	c.flanking = false

	if c.rng.Float64() < c.cfg.FlankChance && c.state.SearchTimer <= 0 {
		dir := common.Normalize(target.Sub(self))
		angle := randRange(c.rng, -flankAngleMax, flankAngleMax)
		offset := common.RotateDeg(dir, angle).Mult(randRange(c.rng, flankDistanceMin, flankDistanceMax))
		if p, ok := c.nav.FindNearestNavigablePoint(target.Add(offset), c.cfg.NavSampleRadius); ok {
			c.flanking = true
			c.flankPoint = p
			c.state.SearchTimer = c.cfg.FlankCooldown
			return moveTo(p)
		}
	}

	d := moveTo(target)
	d.SpeedMultiplier = randRange(c.rng, chaseSpeedMin, c.cfg.ChaseSpeedMultiplier)
	return d
}

// search runs one tick of the hunt memory window. done reports that the
// window ran out during this tick.
func (c *Controller) search(dt float64, self cp.Vector) (d Directive, done bool) {
	c.state.Mode = Searching
	c.flanking = false
	c.state.HuntTimer -= dt
	c.state.SearchTimer -= dt
	if c.state.HuntTimer <= 0 {
		c.state.HuntTimer = 0
		c.state.Hunting = false
		return Directive{}, true
	}

	d = Directive{Move: MoveKeep}
	if self.Distance(c.state.LastKnownTarget) > c.cfg.ArriveDistance {
		if c.state.LoseTargetTimer <= 0 {
			p := c.state.LastKnownTarget.Add(insideUnitCircle(c.rng).Mult(searchJitter))
			d = c.moveToNavigable(p)
			c.state.LoseTargetTimer = randRange(c.rng, searchRetargetMin, searchRetargetMax)
		}
		c.state.LoseTargetTimer -= dt
	} else if c.state.SearchTimer <= 0 {
		probe := insideUnitCircle(c.rng).Mult(randRange(c.rng, searchProbeMin, searchProbeMax))
		d = c.moveToNavigable(self.Add(probe))
		c.state.SearchTimer = randRange(c.rng, searchProbeWaitMin, searchProbeWaitMax)
	}

	if c.rng.Float64() < c.cfg.ListenChance {
		d = hold()
		c.state.SearchTimer = listenDuration
	}
	return d, false
}

func (c *Controller) patrol(dt float64, self, target cp.Vector) Directive {
	c.state.Mode = Patrolling
	c.state.Hunting = false
	c.flanking = false

	d := Directive{Move: MoveKeep}
	speed := randRange(c.rng, patrolSpeedMin, c.cfg.PatrolSpeedMultiplier)

	arrived := c.state.HasPatrolDestination && self.Distance(c.state.PatrolDestination) < c.cfg.ArriveDistance
	if c.rng.Float64() < c.cfg.AmbientSenseChance {
		offset := insideUnitCircle(c.rng).Mult(randRange(c.rng, ambientOffsetMin, ambientOffsetMax))
		d = c.moveToNavigable(target.Add(offset))
		c.state.PatrolTimer = randRange(c.rng, ambientFocusMin, ambientFocusMax)
	} else if c.state.PatrolTimer <= 0 || arrived {
		d = c.newPatrolTarget(self)
		c.state.PatrolTimer = randRange(c.rng, patrolRefreshMin, patrolRefreshMax)
	}
	c.state.PatrolTimer -= dt

	if c.rng.Float64() < c.cfg.PauseChance {
		d = hold()
		c.state.PatrolTimer = randRange(c.rng, patrolPauseMin, patrolPauseMax)
	}
	d.SpeedMultiplier = speed
	return d
}

// newPatrolTarget picks a random walkable point within PatrolRadius of
// self. When none resolves the spider holds and tries again at the next
// refresh.
func (c *Controller) newPatrolTarget(self cp.Vector) Directive {
	candidate := self.Add(insideUnitCircle(c.rng).Mult(c.cfg.PatrolRadius))
	p, ok := c.nav.FindNearestNavigablePoint(candidate, c.cfg.PatrolRadius)
	if !ok || p.Distance(self) > c.cfg.PatrolRadius {
		c.state.HasPatrolDestination = false
		c.log.Debug("brain: no navigable patrol point", "around", fmt.Sprintf("%.1f,%.1f", candidate.X, candidate.Y))
		return hold()
	}
	c.state.PatrolDestination = p
	c.state.HasPatrolDestination = true
	return moveTo(p)
}

func (c *Controller) moveToNavigable(p cp.Vector) Directive {
	resolved, ok := c.nav.FindNearestNavigablePoint(p, c.cfg.NavSampleRadius)
	if !ok {
		return hold()
	}
	return moveTo(resolved)
}

// isWalking derives the walking flag from the body's motion: moving, or
// turning in place toward a destination it has not started moving to.
func (c *Controller) isWalking() bool {
	if c.nav.CurrentVelocity().Length() > movingSpeedThreshold {
		return true
	}
	heading := c.nav.Heading()
	desired := c.nav.DesiredVelocity()
	forward := desired.Dot(heading)
	lateral := math.Abs(heading.Cross(desired))
	return lateral > turnLateralThreshold && forward < turnForwardThreshold
}
