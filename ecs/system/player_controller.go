package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/common"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	grid, _ := navGrid(w)

	entities := ecs.Query(w,
		component.PlayerControllerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if bodyComp.Body == nil {
			continue
		}
		if pc.Disabled {
			bodyComp.Body.SetVelocityVector(cp.Vector{})
			continue
		}

		updateSprint(pc, input.Sprint, dt)

		speed := pc.WalkSpeed
		if pc.Sprinting {
			speed = pc.SprintSpeed
		}
		move := cp.Vector{X: input.MoveX, Y: input.MoveY}
		if move.Length() > 1 {
			move = common.Normalize(move)
		}
		vel := move.Mult(speed)
		pos := cp.Vector{X: transform.X, Y: transform.Y}
		vel = clampToWalkable(grid, pos, vel, bodyComp.Radius, dt)

		bodyComp.Body.SetVelocityVector(vel)
		if vel.LengthSq() > 0 {
			bodyComp.Body.SetAngle(vel.ToAngle())
		}
	}
}

// updateSprint drains stamina while sprinting. Stamina only starts to
// recover after SprintCooldown seconds without sprinting, and then refills
// at once.
func updateSprint(pc *component.PlayerController, wantSprint bool, dt float64) {
	if wantSprint && pc.SprintTimer > 0 && pc.CooldownTimer <= 0 {
		pc.Sprinting = true
		pc.SprintTimer -= dt
		return
	}

	pc.Sprinting = false
	if pc.SprintTimer < pc.SprintDuration {
		pc.CooldownTimer += dt
	}
	if pc.CooldownTimer >= pc.SprintCooldown {
		pc.SprintTimer = pc.SprintDuration
		pc.CooldownTimer = 0
	}
}
