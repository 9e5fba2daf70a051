package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/entity"
	"github.com/milk9111/ritual/ecs/system"
	"github.com/milk9111/ritual/prefabs"
)

const (
	screenWidth    = 960
	screenHeight   = 720
	ticksPerSecond = 60
	fixedDT        = 1.0 / ticksPerSecond
)

type GameOptions struct {
	Debug   bool
	Seed    int64
	Watch   bool
	Spiders int
}

type Game struct {
	opts    GameOptions
	watcher *prefabs.Watcher
	input   *InputSystem

	prefabs   entity.Prefabs
	world     *ecs.World
	physics   *system.PhysicsSystem
	scheduler *ecs.Scheduler
	level     entity.Level

	paused  bool
	pauseUI *ebitenui.UI

	frames   int
	elapsed  float64
	restarts int
}

func NewGame(opts GameOptions) (*Game, error) {
	g := &Game{opts: opts, input: NewInputSystem()}
	g.pauseUI = NewPauseUI(g)

	p, err := entity.LoadPrefabs()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g.prefabs = p
	if err := g.rebuild(); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskDir())
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// rebuild throws the current world away and builds a fresh one from the
// loaded prefabs.
func (g *Game) rebuild() error {
	seed := g.opts.Seed
	if seed == 0 {
		seed = g.prefabs.Spider.Seed
	}

	world := ecs.NewWorld()
	lvl, err := entity.BuildLevel(world, g.prefabs, g.opts.Spiders, seed)
	if err != nil {
		return fmt.Errorf("game: build level: %w", err)
	}
	physics := system.NewPhysicsSystem()
	physics.Sync(world)

	g.world = world
	g.physics = physics
	g.level = lvl
	g.scheduler = system.NewPipeline(physics, system.PipelineOptions{
		Input:  g.input,
		Death:  entity.DeathSequence(g.prefabs.Death),
		Seed:   seed,
		Logger: slog.Default(),
	})
	g.elapsed = 0
	return nil
}

// reload re-reads the prefabs after a change on disk. A broken edit keeps
// the previous prefabs running.
func (g *Game) reload(changed []string) {
	p, err := entity.LoadPrefabs()
	if err != nil {
		log.Printf("prefabs: reload after %v: %v", changed, err)
		return
	}
	g.prefabs = p
	if err := g.rebuild(); err != nil {
		log.Printf("prefabs: rebuild after %v: %v", changed, err)
		return
	}
	log.Printf("prefabs: reloaded %v", changed)
}

func (g *Game) Update() error {
	g.frames++

	if changed := g.watcher.Drain(); len(changed) > 0 {
		g.reload(changed)
	}
	for _, err := range g.watcher.DrainErrors() {
		log.Printf("prefabs: watch: %v", err)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return g.handleRestart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.opts.Debug = !g.opts.Debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		system.RequestRestart(g.world, "manual")
	}

	g.scheduler.Update(g.world, fixedDT)
	g.elapsed += fixedDT

	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventSpiderMode:
			if mc, ok := evt.Data.(system.ModeChange); ok {
				slog.Debug("spider mode", "spider", mc.Spider.String(), "from", mc.From.String(), "to", mc.To.String(), "t", g.elapsed)
			}
		case ecs.EventPlayerKilled:
			log.Printf("game: player killed at %.2fs", g.elapsed)
		}
	}

	return g.handleRestart()
}

func (g *Game) handleRestart() error {
	reason, ok := system.PendingRestart(g.world)
	if !ok {
		return nil
	}
	g.restarts++
	log.Printf("game: restart (%s)", reason)
	return g.rebuild()
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.world, g.prefabs, g.opts.Debug)
	if g.opts.Debug {
		drawDebugText(screen, g.world, g.level, fmt.Sprintf("FPS: %.1f  t=%.1fs  restarts=%d", ebiten.ActualFPS(), g.elapsed, g.restarts))
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
