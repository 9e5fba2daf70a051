package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

// AttackTriggerSystem kills the player when an attacking spider has it
// within its trigger radius.
type AttackTriggerSystem struct {
	// Death is copied onto the player when it is killed.
	Death component.DeathSequence
}

func NewAttackTriggerSystem(death component.DeathSequence) *AttackTriggerSystem {
	return &AttackTriggerSystem{Death: death}
}

func (a *AttackTriggerSystem) Update(w *ecs.World, _ float64) {
	if a == nil || w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok || ecs.Has(w, player, component.DeathSequenceComponent.Kind()) {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	playerPos := cp.Vector{X: pt.X, Y: pt.Y}

	for _, e := range ecs.Query(w, component.AttackTriggerComponent.Kind(), component.AnimationFlagsComponent.Kind(), component.TransformComponent.Kind()) {
		trigger, _ := ecs.Get(w, e, component.AttackTriggerComponent.Kind())
		anim, _ := ecs.Get(w, e, component.AnimationFlagsComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if !anim.Attacking() {
			continue
		}
		if playerPos.Distance(cp.Vector{X: t.X, Y: t.Y}) > trigger.Radius {
			continue
		}
		if TriggerDeath(w, player, a.Death) {
			return
		}
	}
}

// TriggerDeath starts the death sequence on player and disables its
// controls. It reports false when the player is already dead.
func TriggerDeath(w *ecs.World, player ecs.Entity, death component.DeathSequence) bool {
	if !ecs.IsAlive(w, player) || ecs.Has(w, player, component.DeathSequenceComponent.Kind()) {
		return false
	}
	seq := death
	seq.Phase = component.DeathDelay
	seq.Elapsed = 0
	seq.Fade = 0
	if err := ecs.Add(w, player, component.DeathSequenceComponent.Kind(), &seq); err != nil {
		return false
	}
	if pc, ok := ecs.Get(w, player, component.PlayerControllerComponent.Kind()); ok {
		pc.Disabled = true
		pc.Sprinting = false
	}
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerKilled, Data: player})
	return true
}
