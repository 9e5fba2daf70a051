package system

import (
	"testing"

	"github.com/milk9111/ritual/brain"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

func modeChanges(w *ecs.World) []ModeChange {
	var out []ModeChange
	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventSpiderMode {
			continue
		}
		if mc, ok := evt.Data.(ModeChange); ok {
			out = append(out, mc)
		}
	}
	return out
}

func TestSpiderAI(t *testing.T) {
	cases := []struct {
		name      string
		walls     []rect
		spiderX   float64
		wantMode  brain.Mode
		wantEvent bool
	}{
		{"visible_player_is_chased", nil, 6, brain.Chasing, true},
		{"close_player_is_attacked", nil, 9.5, brain.Attacking, true},
		{"wall_hides_player", []rect{{x: 8, y: 0, w: 1, h: 20}}, 6, brain.Patrolling, false},
		{"out_of_range_player", nil, 0.5, brain.Patrolling, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newArena(t, 20, 20, c.walls...)
			player := addPlayer(t, w, 10.5, 10.5)
			spider := addSpider(t, w, c.spiderX, 10.5, quietConfig())
			ps := NewPhysicsSystem()
			ps.Sync(w)

			NewSpiderAISystem(ps, nil).Update(w, frame)

			sb, _ := ecs.Get(w, spider, component.SpiderBrainComponent.Kind())
			if sb.Controller == nil {
				t.Fatalf("controller was not built")
			}
			if sb.Mode != c.wantMode {
				t.Fatalf("mode = %s, want %s", sb.Mode, c.wantMode)
			}

			changes := modeChanges(w)
			if c.wantEvent {
				if len(changes) != 1 || changes[0].Spider != spider || changes[0].From != brain.Patrolling || changes[0].To != c.wantMode {
					t.Fatalf("unexpected mode events %+v", changes)
				}
			} else if len(changes) != 0 {
				t.Fatalf("expected no mode events, got %+v", changes)
			}

			anim, _ := ecs.Get(w, spider, component.AnimationFlagsComponent.Kind())
			if anim.Attacking() != (c.wantMode == brain.Attacking) {
				t.Fatalf("attacking flag = %v in mode %s", anim.Attacking(), sb.Mode)
			}
			if c.wantMode == brain.Chasing {
				agent, _ := ecs.Get(w, spider, component.NavAgentComponent.Kind())
				pp := position(t, w, player)
				if !agent.HasDestination || agent.Destination != pp {
					t.Fatalf("chasing spider should head for the player at %v, agent %+v", pp, agent)
				}
			}
			if c.walls != nil && (!sb.LastSight.Hit || sb.LastSight.HitTarget) {
				t.Fatalf("sight probe should record the wall, got %+v", sb.LastSight)
			}
		})
	}
}

func TestSpiderAIInvalidConfigIsSkipped(t *testing.T) {
	w := newArena(t, 20, 20)
	addPlayer(t, w, 10, 10)
	cfg := quietConfig()
	cfg.DetectionRange = 0
	spider := addSpider(t, w, 5, 5, cfg)
	ps := NewPhysicsSystem()
	ps.Sync(w)

	ai := NewSpiderAISystem(ps, nil)
	for i := 0; i < 3; i++ {
		ai.Update(w, frame)
	}
	sb, _ := ecs.Get(w, spider, component.SpiderBrainComponent.Kind())
	if sb.Controller != nil {
		t.Fatalf("invalid config should not build a controller")
	}
	if !ai.failed[spider] {
		t.Fatalf("spider should be marked failed")
	}
}

func TestSpiderAIWithoutPlayerDoesNothing(t *testing.T) {
	w := newArena(t, 20, 20)
	spider := addSpider(t, w, 5, 5, quietConfig())
	NewSpiderAISystem(NewPhysicsSystem(), nil).Update(w, frame)

	sb, _ := ecs.Get(w, spider, component.SpiderBrainComponent.Kind())
	if sb.Controller != nil {
		t.Fatalf("controller should wait for a player")
	}
}

func TestSpiderAIModeTimeAccumulates(t *testing.T) {
	w := newArena(t, 20, 20)
	addPlayer(t, w, 10.5, 10.5)
	spider := addSpider(t, w, 6, 10.5, quietConfig())
	ps := NewPhysicsSystem()
	ps.Sync(w)

	ai := NewSpiderAISystem(ps, nil)
	ai.Update(w, frame) // patrolling -> chasing
	for i := 0; i < 9; i++ {
		ai.Update(w, frame)
	}
	sb, _ := ecs.Get(w, spider, component.SpiderBrainComponent.Kind())
	if sb.Mode != brain.Chasing {
		t.Fatalf("mode = %s, want chasing", sb.Mode)
	}
	if d := sb.ModeTime - 9*frame; d > 1e-9 || d < -1e-9 {
		t.Fatalf("mode time = %v, want %v", sb.ModeTime, 9*frame)
	}
}

func TestSpiderAIForgetsDestroyedSpiders(t *testing.T) {
	w := newArena(t, 20, 20)
	addPlayer(t, w, 10.5, 10.5)
	live := addSpider(t, w, 6, 10.5, quietConfig())
	bad := quietConfig()
	bad.DetectionRange = 0
	broken := addSpider(t, w, 4, 4, bad)
	ps := NewPhysicsSystem()
	ps.Sync(w)

	ai := NewSpiderAISystem(ps, nil)
	ai.Update(w, frame)
	if ai.perceptions[live] == nil || !ai.failed[broken] {
		t.Fatalf("expected tracked spiders, got %d perceptions and %d failures", len(ai.perceptions), len(ai.failed))
	}

	ecs.DestroyEntity(w, live)
	ecs.DestroyEntity(w, broken)
	ai.Update(w, frame)
	if len(ai.perceptions) != 0 || len(ai.failed) != 0 {
		t.Fatalf("destroyed spiders still tracked: %d perceptions, %d failures", len(ai.perceptions), len(ai.failed))
	}
}
