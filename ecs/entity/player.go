package entity

import (
	"fmt"

	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
	"github.com/milk9111/ritual/prefabs"
)

func NewPlayerAt(w *ecs.World, spec prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: spec.Radius}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerControllerComponent.Kind(), &component.PlayerController{
		WalkSpeed:      spec.WalkSpeed,
		SprintSpeed:    spec.SprintSpeed,
		SprintDuration: spec.SprintDuration,
		SprintCooldown: spec.SprintCooldown,
		SprintTimer:    spec.SprintDuration,
	}); err != nil {
		return 0, fmt.Errorf("player: add controller: %w", err)
	}
	return e, nil
}
