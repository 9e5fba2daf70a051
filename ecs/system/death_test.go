package system

import (
	"testing"

	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

func TestDeathSequence(t *testing.T) {
	w := newArena(t, 10, 10)
	player := addPlayer(t, w, 5, 5)
	if !TriggerDeath(w, player, testDeath) {
		t.Fatalf("TriggerDeath failed")
	}
	w.Events().Drain()

	death := NewDeathSystem(1)
	seq, _ := ecs.Get(w, player, component.DeathSequenceComponent.Kind())
	shaking := func() bool { return ecs.Has(w, player, component.CameraShakeRequestComponent.Kind()) }

	steps := 0
	advance := func(seconds float64) {
		for i := 0; i < int(seconds/frame+0.5); i++ {
			death.Update(w, frame)
			steps++
		}
	}

	advance(0.1)
	if seq.Phase != component.DeathDelay || shaking() || seq.Fade != 0 {
		t.Fatalf("at 0.1s: phase %s shaking %v fade %v", seq.Phase, shaking(), seq.Fade)
	}

	advance(0.2)
	if seq.Phase != component.DeathScreamer || !shaking() {
		t.Fatalf("at 0.3s: phase %s shaking %v", seq.Phase, shaking())
	}
	shake, _ := ecs.Get(w, player, component.CameraShakeRequestComponent.Kind())
	if m := shake.Offset.Length(); m == 0 || m > testDeath.ShakeMagnitude*1.5 {
		t.Fatalf("shake offset %v out of range", shake.Offset)
	}
	if seq.Fade <= 0 || seq.Fade >= 1 {
		t.Fatalf("at 0.3s fade should be partial, got %v", seq.Fade)
	}

	advance(0.7)
	if shaking() {
		t.Fatalf("shake should have ended by 1s")
	}
	if seq.Fade != 1 {
		t.Fatalf("fade should clamp at 1, got %v", seq.Fade)
	}
	if _, ok := PendingRestart(w); ok {
		t.Fatalf("restart requested too early")
	}

	for i := 0; i < 200; i++ {
		death.Update(w, frame)
		steps++
		if _, ok := PendingRestart(w); ok {
			break
		}
	}
	if seq.Phase != component.DeathDone {
		t.Fatalf("expected done phase, got %s", seq.Phase)
	}
	if steps < 179 || steps > 181 {
		t.Fatalf("restart after %d frames, want about 180", steps)
	}
	if n := countEvents(w, ecs.EventRestart); n != 1 {
		t.Fatalf("expected one restart event, got %d", n)
	}

	advance(1)
	if _, ok := PendingRestart(w); ok {
		t.Fatalf("a finished sequence must not request again")
	}
}

func TestPendingRestartConsumesRequests(t *testing.T) {
	w := ecs.NewWorld()
	if _, ok := PendingRestart(w); ok {
		t.Fatalf("empty world has no restart")
	}
	RequestRestart(w, "manual")
	RequestRestart(w, "again")
	reason, ok := PendingRestart(w)
	if !ok || reason != "manual" {
		t.Fatalf("got (%q, %v), want (\"manual\", true)", reason, ok)
	}
	if _, ok := PendingRestart(w); ok {
		t.Fatalf("requests should be consumed")
	}
}
