package entity

import (
	"fmt"

	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
	"github.com/milk9111/ritual/ecs/system"
	"github.com/milk9111/ritual/prefabs"
)

// NewArena creates the level bounds, border and interior walls, and the
// navigation grid rasterized from them. It returns the entity carrying
// LevelBounds and NavGrid.
func NewArena(w *ecs.World, spec prefabs.ArenaSpec) (ecs.Entity, error) {
	boundsEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  spec.Width,
		Height: spec.Height,
	}); err != nil {
		return 0, fmt.Errorf("arena: add bounds: %w", err)
	}

	walls := append([]prefabs.RectSpec(nil), spec.Walls...)
	if b := spec.WallBorder; b > 0 {
		walls = append(walls,
			prefabs.RectSpec{X: 0, Y: 0, Width: spec.Width, Height: b},
			prefabs.RectSpec{X: 0, Y: spec.Height - b, Width: spec.Width, Height: b},
			prefabs.RectSpec{X: 0, Y: b, Width: b, Height: spec.Height - 2*b},
			prefabs.RectSpec{X: spec.Width - b, Y: b, Width: b, Height: spec.Height - 2*b},
		)
	}
	for i, r := range walls {
		if _, err := NewWall(w, r); err != nil {
			return 0, fmt.Errorf("arena: wall %d: %w", i, err)
		}
	}

	grid, ok := system.BuildNavGrid(w, spec.CellSize)
	if !ok {
		return 0, fmt.Errorf("arena: build nav grid: %w", prefabs.ErrInvalidSpec)
	}
	if err := ecs.Add(w, boundsEntity, component.NavGridComponent.Kind(), &grid); err != nil {
		return 0, fmt.Errorf("arena: add nav grid: %w", err)
	}
	return boundsEntity, nil
}

// NewWall creates a static box from its top-left rectangle.
func NewWall(w *ecs.World, r prefabs.RectSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WallTagComponent.Kind(), &component.WallTag{}); err != nil {
		return 0, fmt.Errorf("wall: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}); err != nil {
		return 0, fmt.Errorf("wall: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  r.Width,
		Height: r.Height,
		Static: true,
	}); err != nil {
		return 0, fmt.Errorf("wall: add physics body: %w", err)
	}
	return e, nil
}
