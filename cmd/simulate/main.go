// Command simulate runs the arena headless: a scripted player walks the
// arena route while the spiders hunt it, and mode changes are logged.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ritual/brain"
	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
	"github.com/milk9111/ritual/ecs/entity"
	"github.com/milk9111/ritual/ecs/system"
	"github.com/milk9111/ritual/prefabs"
)

// routeReach is how close the scripted player gets to a route point
// before heading for the next one.
const routeReach = 0.5

type sim struct {
	prefabs entity.Prefabs
	seed    int64
	spiders int
	logger  *slog.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	level     entity.Level
	routeIdx  int

	elapsed  float64
	kills    int
	restarts int
	modeTime map[brain.Mode]float64
	changes  int
}

func (s *sim) build() error {
	world := ecs.NewWorld()
	lvl, err := entity.BuildLevel(world, s.prefabs, s.spiders, s.seed)
	if err != nil {
		return err
	}
	physics := system.NewPhysicsSystem()
	physics.Sync(world)

	s.world = world
	s.level = lvl
	s.routeIdx = 0
	s.scheduler = system.NewPipeline(physics, system.PipelineOptions{
		Death:  entity.DeathSequence(s.prefabs.Death),
		Seed:   s.seed,
		Logger: s.logger,
	})
	return nil
}

// steer points the player's Input at the next route point.
func (s *sim) steer() {
	route := s.prefabs.Arena.Route
	in, ok := ecs.Get(s.world, s.level.Player, component.InputComponent.Kind())
	if !ok || len(route) == 0 {
		return
	}
	t, ok := ecs.Get(s.world, s.level.Player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pos := cp.Vector{X: t.X, Y: t.Y}
	next := cp.Vector{X: route[s.routeIdx].X, Y: route[s.routeIdx].Y}
	if pos.Distance(next) < routeReach {
		s.routeIdx = (s.routeIdx + 1) % len(route)
		next = cp.Vector{X: route[s.routeIdx].X, Y: route[s.routeIdx].Y}
	}
	dir := next.Sub(pos).Normalize()
	in.MoveX, in.MoveY = dir.X, dir.Y
	in.Sprint = false
}

func (s *sim) step(dt float64) error {
	s.steer()
	s.scheduler.Update(s.world, dt)
	s.elapsed += dt

	for _, e := range s.level.Spiders {
		if sb, ok := ecs.Get(s.world, e, component.SpiderBrainComponent.Kind()); ok {
			s.modeTime[sb.Mode] += dt
		}
	}

	for _, evt := range s.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventSpiderMode:
			if mc, ok := evt.Data.(system.ModeChange); ok {
				s.changes++
				log.Printf("%7.2fs spider %s: %s -> %s", s.elapsed, mc.Spider.String(), mc.From.String(), mc.To.String())
			}
		case ecs.EventPlayerKilled:
			s.kills++
			log.Printf("%7.2fs player killed", s.elapsed)
		}
	}

	if reason, ok := system.PendingRestart(s.world); ok {
		s.restarts++
		log.Printf("%7.2fs restart (%s)", s.elapsed, reason)
		return s.build()
	}
	return nil
}

func (s *sim) summary() {
	modes := make([]brain.Mode, 0, len(s.modeTime))
	for m := range s.modeTime {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })

	fmt.Printf("simulated %.1fs: %d mode changes, %d kills, %d restarts\n", s.elapsed, s.changes, s.kills, s.restarts)
	for _, m := range modes {
		fmt.Printf("  %-10s %8.2f spider-seconds\n", m.String(), s.modeTime[m])
	}
}

func main() {
	seed := flag.Int64("seed", 0, "behavior seed (0 uses the spider prefab seed)")
	seconds := flag.Float64("seconds", 60, "simulated time")
	dt := flag.Float64("dt", 1.0/60, "fixed step in seconds")
	spiders := flag.Int("spiders", 0, "number of spiders (0 uses the spider prefab count)")
	dir := flag.String("prefabs", "", "read prefabs from this directory instead of the embedded copies")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *dir != "" {
		prefabs.SetDiskDir(*dir)
	}
	if *dt <= 0 {
		log.Fatalf("simulate: -dt must be positive, got %v", *dt)
	}

	p, err := entity.LoadPrefabs()
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}
	s := &sim{
		prefabs:  p,
		seed:     *seed,
		spiders:  *spiders,
		logger:   logger,
		modeTime: make(map[brain.Mode]float64),
	}
	if s.seed == 0 {
		s.seed = p.Spider.Seed
	}
	if err := s.build(); err != nil {
		log.Fatalf("simulate: %v", err)
	}

	steps := int(*seconds / *dt)
	for i := 0; i < steps; i++ {
		if err := s.step(*dt); err != nil {
			log.Fatalf("simulate: %v", err)
		}
	}
	s.summary()
}
