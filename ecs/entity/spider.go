package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
	"github.com/milk9111/ritual/prefabs"
)

// NewSpiderAt creates a spider whose behavior is seeded with seed.
func NewSpiderAt(w *ecs.World, spec prefabs.SpiderSpec, x, y float64, seed int64) (ecs.Entity, error) {
	cfg := spec.BrainConfig(seed)
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("spider: %w", err)
	}

	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.SpiderTagComponent.Kind(), &component.SpiderTag{}); err != nil {
		return 0, fmt.Errorf("spider: add spider tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("spider: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: spec.Radius}); err != nil {
		return 0, fmt.Errorf("spider: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.NavAgentComponent.Kind(), &component.NavAgent{
		Speed:            cfg.BaseSpeed,
		Acceleration:     spec.Agent.Acceleration,
		AngularSpeed:     spec.Agent.AngularSpeed,
		StoppingDistance: spec.Agent.StoppingDistance,
		Heading:          cp.Vector{X: 1},
	}); err != nil {
		return 0, fmt.Errorf("spider: add nav agent: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationFlagsComponent.Kind(), &component.AnimationFlags{FPS: spec.Animation.WalkFPS}); err != nil {
		return 0, fmt.Errorf("spider: add animation flags: %w", err)
	}
	if err := ecs.Add(w, e, component.AttackTriggerComponent.Kind(), &component.AttackTrigger{Radius: spec.AttackTrigger.Radius}); err != nil {
		return 0, fmt.Errorf("spider: add attack trigger: %w", err)
	}
	if err := ecs.Add(w, e, component.SpiderBrainComponent.Kind(), &component.SpiderBrain{Config: cfg}); err != nil {
		return 0, fmt.Errorf("spider: add brain: %w", err)
	}
	return e, nil
}
