package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/brain"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

const frame = 1.0 / 60

type rect struct{ x, y, w, h float64 }

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

// newArena returns a world with level bounds, the given walls (top-left
// rectangles) and a nav grid with unit cells.
func newArena(t *testing.T, width, height float64, walls ...rect) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	bounds := ecs.CreateEntity(w)
	mustAdd(t, w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: width, Height: height})
	for _, r := range walls {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.WallTagComponent.Kind(), &component.WallTag{})
		mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: r.x + r.w/2, Y: r.y + r.h/2})
		mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: r.w, Height: r.h, Static: true})
	}
	grid, ok := BuildNavGrid(w, 1)
	if !ok {
		t.Fatalf("BuildNavGrid failed")
	}
	mustAdd(t, w, bounds, component.NavGridComponent.Kind(), &grid)
	return w
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 0.4})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.PlayerControllerComponent.Kind(), &component.PlayerController{
		WalkSpeed:      5,
		SprintSpeed:    8,
		SprintDuration: 5,
		SprintCooldown: 3,
		SprintTimer:    5,
	})
	return e
}

func addSpider(t *testing.T, w *ecs.World, x, y float64, cfg brain.Config) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.SpiderTagComponent.Kind(), &component.SpiderTag{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 0.45})
	mustAdd(t, w, e, component.NavAgentComponent.Kind(), &component.NavAgent{
		Speed:            cfg.BaseSpeed,
		Acceleration:     10,
		AngularSpeed:     270,
		StoppingDistance: 0.3,
		Heading:          cp.Vector{X: 1},
	})
	mustAdd(t, w, e, component.AnimationFlagsComponent.Kind(), &component.AnimationFlags{FPS: 10})
	mustAdd(t, w, e, component.AttackTriggerComponent.Kind(), &component.AttackTrigger{Radius: cfg.AttackRange})
	mustAdd(t, w, e, component.SpiderBrainComponent.Kind(), &component.SpiderBrain{Config: cfg})
	return e
}

// quietConfig never flanks, listens, senses or pauses, so runs are
// deterministic apart from patrol destinations.
func quietConfig() brain.Config {
	cfg := brain.DefaultConfig()
	cfg.FlankChance = 0
	cfg.ListenChance = 0
	cfg.AmbientSenseChance = 0
	cfg.PauseChance = 0
	cfg.Seed = 1
	return cfg
}

func position(t *testing.T, w *ecs.World, e ecs.Entity) cp.Vector {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no transform", e.String())
	}
	return cp.Vector{X: tr.X, Y: tr.Y}
}
