package system

import (
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
)

const defaultWalkFPS = 8.0

// AnimationSystem advances the walk cycle of every entity whose walking
// flag is set and rests it otherwise.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.AnimationFlagsComponent.Kind(), func(e ecs.Entity, anim *component.AnimationFlags) {
		if !anim.Walking() {
			anim.Frame = 0
			anim.FrameTimer = 0
			return
		}
		fps := anim.FPS
		if fps <= 0 {
			fps = defaultWalkFPS
		}
		anim.FrameTimer += dt
		for anim.FrameTimer >= 1/fps {
			anim.FrameTimer -= 1 / fps
			anim.Frame++
		}
	})
}
