package system

import (
	"log/slog"

	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

type PipelineOptions struct {
	// Input samples devices into Input components. Headless runs leave it
	// nil and drive Input themselves.
	Input  ecs.System
	Death  component.DeathSequence
	Seed   int64
	Logger *slog.Logger
}

// NewPipeline returns the per-frame system order shared by the game and
// the headless simulation.
func NewPipeline(physics *PhysicsSystem, opts PipelineOptions) *ecs.Scheduler {
	s := ecs.NewScheduler()
	if opts.Input != nil {
		s.Add(opts.Input)
	}
	s.Add(NewPlayerControllerSystem())
	s.Add(NewSpiderAISystem(physics, opts.Logger))
	s.Add(NewNavAgentSystem())
	s.Add(physics)
	s.Add(NewAttackTriggerSystem(opts.Death))
	s.Add(NewDeathSystem(opts.Seed))
	s.Add(NewAnimationSystem())
	return s
}
