package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

func TestUpdateSprint(t *testing.T) {
	cases := []struct {
		name          string
		timer         float64
		cooldown      float64
		want          bool
		dt            float64
		wantSprinting bool
		wantTimer     float64
		wantCooldown  float64
	}{
		{"sprint_drains", 5, 0, true, 1, true, 4, 0},
		{"exhausted_cannot_sprint", 0, 0, true, 1, false, 0, 1},
		{"cooldown_blocks_sprint", 2, 1, true, 0.5, false, 2, 1.5},
		{"release_starts_cooldown", 4, 0, false, 0.5, false, 4, 0.5},
		{"cooldown_refills", 2, 2.5, false, 0.5, false, 5, 0},
		{"full_stamina_idle", 5, 0, false, 1, false, 5, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pc := &component.PlayerController{
				SprintDuration: 5,
				SprintCooldown: 3,
				SprintTimer:    c.timer,
				CooldownTimer:  c.cooldown,
			}
			updateSprint(pc, c.want, c.dt)
			if pc.Sprinting != c.wantSprinting {
				t.Fatalf("sprinting = %v, want %v", pc.Sprinting, c.wantSprinting)
			}
			if math.Abs(pc.SprintTimer-c.wantTimer) > 1e-9 || math.Abs(pc.CooldownTimer-c.wantCooldown) > 1e-9 {
				t.Fatalf("timer %v cooldown %v, want %v %v", pc.SprintTimer, pc.CooldownTimer, c.wantTimer, c.wantCooldown)
			}
		})
	}
}

func runPlayer(w *ecs.World, ps *PhysicsSystem, seconds float64) {
	pcs := NewPlayerControllerSystem()
	for i := 0; i < int(seconds/frame+0.5); i++ {
		pcs.Update(w, frame)
		ps.Update(w, frame)
	}
}

func TestPlayerControllerMovement(t *testing.T) {
	cases := []struct {
		name     string
		walls    []rect
		input    component.Input
		disabled bool
		seconds  float64
		check    func(t *testing.T, p cp.Vector)
	}{
		{
			name:    "walk",
			input:   component.Input{MoveX: 1},
			seconds: 1,
			check: func(t *testing.T, p cp.Vector) {
				if p.Distance(cp.Vector{X: 10, Y: 5}) > 0.05 {
					t.Fatalf("expected (10,5), got %v", p)
				}
			},
		},
		{
			name:    "sprint",
			input:   component.Input{MoveX: 1, Sprint: true},
			seconds: 1,
			check: func(t *testing.T, p cp.Vector) {
				if p.Distance(cp.Vector{X: 13, Y: 5}) > 0.05 {
					t.Fatalf("expected (13,5), got %v", p)
				}
			},
		},
		{
			name:    "diagonal_is_normalized",
			input:   component.Input{MoveX: 1, MoveY: 1},
			seconds: 1,
			check: func(t *testing.T, p cp.Vector) {
				if d := p.Distance(cp.Vector{X: 5, Y: 5}); math.Abs(d-5) > 0.05 {
					t.Fatalf("expected to travel 5 units, travelled %v", d)
				}
			},
		},
		{
			name:    "wall_stops",
			walls:   []rect{{x: 8, y: 0, w: 1, h: 20}},
			input:   component.Input{MoveX: 1},
			seconds: 3,
			check: func(t *testing.T, p cp.Vector) {
				if p.X > 7.7 || p.X < 7 {
					t.Fatalf("expected to stop short of the wall, got %v", p)
				}
			},
		},
		{
			name:     "disabled",
			input:    component.Input{MoveX: 1},
			disabled: true,
			seconds:  1,
			check: func(t *testing.T, p cp.Vector) {
				if p != (cp.Vector{X: 5, Y: 5}) {
					t.Fatalf("disabled player moved to %v", p)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newArena(t, 20, 20, c.walls...)
			player := addPlayer(t, w, 5, 5)
			in, _ := ecs.Get(w, player, component.InputComponent.Kind())
			*in = c.input
			pc, _ := ecs.Get(w, player, component.PlayerControllerComponent.Kind())
			pc.Disabled = c.disabled
			ps := NewPhysicsSystem()
			ps.Sync(w)

			runPlayer(w, ps, c.seconds)
			c.check(t, position(t, w, player))
		})
	}
}
