package system

import (
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/brain"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

// ModeChange is the payload of ecs.EventSpiderMode.
type ModeChange struct {
	Spider ecs.Entity
	From   brain.Mode
	To     brain.Mode
}

// SpiderAISystem ticks one behavior controller per spider toward the
// player and applies the resulting directive to the spider's agent and
// animator.
type SpiderAISystem struct {
	physics     *PhysicsSystem
	log         *slog.Logger
	perceptions map[ecs.Entity]*EntityPerception
	failed      map[ecs.Entity]bool
}

func NewSpiderAISystem(physics *PhysicsSystem, logger *slog.Logger) *SpiderAISystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpiderAISystem{
		physics:     physics,
		log:         logger,
		perceptions: make(map[ecs.Entity]*EntityPerception),
		failed:      make(map[ecs.Entity]bool),
	}
}

func (s *SpiderAISystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil {
		return
	}
	s.cleanupEntities(w)

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	target := cp.Vector{X: pt.X, Y: pt.Y}
	grid, _ := navGrid(w)

	ecs.ForEach4(w, component.SpiderBrainComponent.Kind(), component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), component.AnimationFlagsComponent.Kind(), func(e ecs.Entity, sb *component.SpiderBrain, agent *component.NavAgent, transform *component.Transform, anim *component.AnimationFlags) {
		if sb.Controller == nil {
			if s.failed[e] {
				return
			}
			ctl, err := s.build(e, sb, agent, transform, anim, grid)
			if err != nil {
				s.log.Error("spider ai: build controller", "spider", e.String(), "err", err)
				s.failed[e] = true
				return
			}
			sb.Controller = ctl
			sb.Mode = ctl.Mode()
		}
		if p := s.perceptions[e]; p != nil {
			p.Target = player
		}

		d := sb.Controller.Tick(dt, target)
		sb.Controller.Apply(d)

		if d.Mode != sb.Mode {
			w.Events().Push(ecs.Event{Type: ecs.EventSpiderMode, Data: ModeChange{Spider: e, From: sb.Mode, To: d.Mode}})
			sb.Mode = d.Mode
			sb.ModeTime = 0
		} else if dt > 0 {
			sb.ModeTime += dt
		}
	})
}

// cleanupEntities forgets spiders that were destroyed or lost their brain.
func (s *SpiderAISystem) cleanupEntities(w *ecs.World) {
	for e := range s.perceptions {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.SpiderBrainComponent.Kind()) {
			delete(s.perceptions, e)
		}
	}
	for e := range s.failed {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.SpiderBrainComponent.Kind()) {
			delete(s.failed, e)
		}
	}
}

func (s *SpiderAISystem) build(e ecs.Entity, sb *component.SpiderBrain, agent *component.NavAgent, transform *component.Transform, anim *component.AnimationFlags, grid *component.NavGrid) (*brain.Controller, error) {
	deps := brain.Deps{
		Navigator: &AgentNavigator{Agent: agent, Transform: transform, Grid: grid},
		Animator:  anim,
		Logger:    s.log.With("spider", e.String()),
	}
	if s.physics != nil {
		p := &EntityPerception{Physics: s.physics, Self: e, Last: &sb.LastSight}
		s.perceptions[e] = p
		deps.Perception = p
	}
	return brain.New(sb.Config, deps)
}
