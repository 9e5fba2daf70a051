package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/brain"
	"github.com/milk9111/ritual/common"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
	"github.com/milk9111/ritual/ecs/entity"
	"golang.org/x/image/colornames"
)

// view maps world units onto the screen.
type view struct {
	scale   float64
	offsetX float64
	offsetY float64
}

func newView(bounds component.LevelBounds, shake cp.Vector) view {
	scale := math.Min(screenWidth/bounds.Width, screenHeight/bounds.Height)
	return view{
		scale:   scale,
		offsetX: (screenWidth-bounds.Width*scale)/2 + shake.X*scale,
		offsetY: (screenHeight-bounds.Height*scale)/2 + shake.Y*scale,
	}
}

func (v view) point(p cp.Vector) (float32, float32) {
	return float32(p.X*v.scale + v.offsetX), float32(p.Y*v.scale + v.offsetY)
}

func (v view) length(l float64) float32 {
	return float32(l * v.scale)
}

func modeColor(m brain.Mode) color.Color {
	switch m {
	case brain.Chasing:
		return colornames.Orange
	case brain.Attacking:
		return colornames.Red
	case brain.Searching:
		return colornames.Gold
	default:
		return colornames.Slategray
	}
}

func drawWorld(screen *ebiten.Image, w *ecs.World, p entity.Prefabs, debug bool) {
	screen.Fill(p.Arena.FloorColor.Or(colornames.Black))
	if w == nil {
		return
	}
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())

	var shake cp.Vector
	for _, e := range ecs.Query(w, component.CameraShakeRequestComponent.Kind()) {
		s, _ := ecs.Get(w, e, component.CameraShakeRequestComponent.Kind())
		shake = shake.Add(s.Offset)
	}
	v := newView(*bounds, shake)

	wallColor := p.Arena.WallColor.Or(colornames.Dimgray)
	ecs.ForEach3(w, component.WallTagComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.WallTag, t *component.Transform, body *component.PhysicsBody) {
		x, y := v.point(cp.Vector{X: t.X - body.Width/2, Y: t.Y - body.Height/2})
		vector.FillRect(screen, x, y, v.length(body.Width), v.length(body.Height), wallColor, false)
	})

	if debug {
		drawNavPaths(screen, w, v)
	}

	ecs.ForEach3(w, component.SpiderBrainComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, sb *component.SpiderBrain, t *component.Transform, body *component.PhysicsBody) {
		cx, cy := v.point(cp.Vector{X: t.X, Y: t.Y})
		r := body.Radius
		if anim, ok := ecs.Get(w, e, component.AnimationFlagsComponent.Kind()); ok && anim.Walking() {
			r *= 1 + 0.12*math.Sin(float64(anim.Frame)*math.Pi/2)
		}
		vector.DrawFilledCircle(screen, cx, cy, v.length(r), p.Spider.Color.Or(colornames.Darkred), true)
		vector.StrokeCircle(screen, cx, cy, v.length(body.Radius)+2, 2, modeColor(sb.Mode), true)

		hx, hy := v.point(cp.Vector{X: t.X, Y: t.Y}.Add(cp.ForAngle(t.Rotation).Mult(body.Radius * 1.6)))
		vector.StrokeLine(screen, cx, cy, hx, hy, 2, colornames.White, true)

		if debug {
			if trig, ok := ecs.Get(w, e, component.AttackTriggerComponent.Kind()); ok {
				vector.StrokeCircle(screen, cx, cy, v.length(trig.Radius), 1, colornames.Darkred, true)
			}
			s := sb.LastSight
			if s.FromX != 0 || s.FromY != 0 || s.ToX != 0 || s.ToY != 0 {
				sightColor := color.Color(colornames.Gray)
				if s.HitTarget {
					sightColor = colornames.Lime
				} else if s.Hit {
					sightColor = colornames.Crimson
				}
				x0, y0 := v.point(cp.Vector{X: s.FromX, Y: s.FromY})
				x1, y1 := v.point(cp.Vector{X: s.ToX, Y: s.ToY})
				vector.StrokeLine(screen, x0, y0, x1, y1, 1, sightColor, true)
			}
		}
	})

	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform, body *component.PhysicsBody) {
		cx, cy := v.point(cp.Vector{X: t.X, Y: t.Y})
		vector.DrawFilledCircle(screen, cx, cy, v.length(body.Radius), p.Player.Color.Or(colornames.Beige), true)
		if pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind()); ok {
			barW := v.length(body.Radius * 2)
			vector.FillRect(screen, cx-barW/2, cy-v.length(body.Radius)-6, barW*float32(pc.Stamina()), 3, colornames.Skyblue, false)
		}
	})

	for _, e := range ecs.Query(w, component.DeathSequenceComponent.Kind()) {
		seq, _ := ecs.Get(w, e, component.DeathSequenceComponent.Kind())
		if seq.Fade <= 0 {
			continue
		}
		alpha := uint8(math.Round(common.Lerp(0, 255, common.Clamp(seq.Fade, 0, 1))))
		vector.FillRect(screen, 0, 0, screenWidth, screenHeight, color.NRGBA{A: alpha}, false)
	}
}

func drawNavPaths(screen *ebiten.Image, w *ecs.World, v view) {
	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, agent *component.NavAgent, t *component.Transform) {
		if !agent.HasDestination {
			return
		}
		prevX, prevY := v.point(cp.Vector{X: t.X, Y: t.Y})
		for _, wp := range agent.Path {
			x, y := v.point(wp)
			vector.StrokeLine(screen, prevX, prevY, x, y, 1, colornames.Steelblue, false)
			prevX, prevY = x, y
		}
		dx, dy := v.point(agent.Destination)
		vector.StrokeRect(screen, dx-3, dy-3, 6, 6, 1, colornames.Steelblue, false)
	})
}

func drawDebugText(screen *ebiten.Image, w *ecs.World, lvl entity.Level, header string) {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	if pc, ok := ecs.Get(w, lvl.Player, component.PlayerControllerComponent.Kind()); ok {
		fmt.Fprintf(&b, "player stamina %.0f%% sprint=%v\n", pc.Stamina()*100, pc.Sprinting)
	}
	for _, e := range lvl.Spiders {
		sb, ok := ecs.Get(w, e, component.SpiderBrainComponent.Kind())
		if !ok || sb.Controller == nil {
			continue
		}
		st := sb.Controller.State()
		fmt.Fprintf(&b, "spider %s %-10s %.1fs hunt=%.1f search=%.1f patrol=%.1f\n",
			e.String(), st.Mode.String(), sb.ModeTime, st.HuntTimer, st.SearchTimer, st.PatrolTimer)
	}
	ebitenutil.DebugPrint(screen, b.String())
}
