package system

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

// DeathSystem advances death sequences: a short delay, then the screamer
// with camera shake and a fade to black, then a restart request.
type DeathSystem struct {
	rng *rand.Rand
}

func NewDeathSystem(seed int64) *DeathSystem {
	return &DeathSystem{rng: rand.New(rand.NewSource(seed))}
}

func (d *DeathSystem) Update(w *ecs.World, dt float64) {
	if d == nil || w == nil || dt <= 0 {
		return
	}

	ecs.ForEach(w, component.DeathSequenceComponent.Kind(), func(e ecs.Entity, seq *component.DeathSequence) {
		if seq.Phase == component.DeathDone {
			return
		}
		seq.Elapsed += dt

		if seq.Phase == component.DeathDelay && seq.Elapsed >= seq.VideoDelay {
			seq.Phase = component.DeathScreamer
			if seq.ShakeDuration > 0 {
				_ = ecs.Add(w, e, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{
					Remaining: seq.ShakeDuration,
					Magnitude: seq.ShakeMagnitude,
				})
			}
		} else if seq.Phase == component.DeathScreamer {
			seq.Fade += dt * seq.FadeSpeed
			if seq.Fade > 1 {
				seq.Fade = 1
			}
		}

		if seq.Elapsed >= seq.Duration {
			seq.Phase = component.DeathDone
			RequestRestart(w, "player killed")
		}
	})

	for _, e := range ecs.Query(w, component.CameraShakeRequestComponent.Kind()) {
		shake, _ := ecs.Get(w, e, component.CameraShakeRequestComponent.Kind())
		shake.Remaining -= dt
		if shake.Remaining <= 0 {
			ecs.Remove(w, e, component.CameraShakeRequestComponent.Kind())
			continue
		}
		shake.Offset = cp.Vector{
			X: (d.rng.Float64()*2 - 1) * shake.Magnitude,
			Y: (d.rng.Float64()*2 - 1) * shake.Magnitude,
		}
	}
}

// RequestRestart raises a RestartRequest for the host to pick up.
func RequestRestart(w *ecs.World, reason string) {
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.RestartRequestComponent.Kind(), &component.RestartRequest{Reason: reason})
	w.Events().Push(ecs.Event{Type: ecs.EventRestart, Data: reason})
}

// PendingRestart reports and consumes any RestartRequest in w.
func PendingRestart(w *ecs.World) (string, bool) {
	reqs := ecs.Query(w, component.RestartRequestComponent.Kind())
	if len(reqs) == 0 {
		return "", false
	}
	r, _ := ecs.Get(w, reqs[0], component.RestartRequestComponent.Kind())
	reason := r.Reason
	for _, e := range reqs {
		w.DestroyEntity(e)
	}
	return reason, true
}
