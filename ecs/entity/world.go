package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/ritual/ecs"
	"github.com/milk9111/ritual/ecs/component"
	"github.com/milk9111/ritual/prefabs"
)

// Prefabs is every spec a level needs.
type Prefabs struct {
	Arena  prefabs.ArenaSpec
	Player prefabs.PlayerSpec
	Spider prefabs.SpiderSpec
	Death  prefabs.DeathSpec
}

func LoadPrefabs() (Prefabs, error) {
	var p Prefabs
	var err error
	if p.Arena, err = prefabs.LoadArenaSpec(); err != nil {
		return p, err
	}
	if p.Player, err = prefabs.LoadPlayerSpec(); err != nil {
		return p, err
	}
	if p.Spider, err = prefabs.LoadSpiderSpec(); err != nil {
		return p, err
	}
	if p.Death, err = prefabs.LoadDeathSpec(); err != nil {
		return p, err
	}
	return p, nil
}

// Level lists the entities BuildLevel created.
type Level struct {
	Arena   ecs.Entity
	Player  ecs.Entity
	Spiders []ecs.Entity
}

// BuildLevel populates w with the arena, the player and spiders. spiders
// overrides the prefab count when positive; spawns are reused round-robin.
// Spider i is seeded with seed+i.
func BuildLevel(w *ecs.World, p Prefabs, spiders int, seed int64) (Level, error) {
	var lvl Level
	var err error

	if lvl.Arena, err = NewArena(w, p.Arena); err != nil {
		return lvl, err
	}
	spawn := p.Arena.PlayerSpawn
	if lvl.Player, err = NewPlayerAt(w, p.Player, spawn.X, spawn.Y); err != nil {
		return lvl, err
	}

	count := p.Spider.Count
	if spiders > 0 {
		count = spiders
	}
	for i := 0; i < count; i++ {
		s := p.Arena.SpiderSpawns[i%len(p.Arena.SpiderSpawns)]
		e, err := NewSpiderAt(w, p.Spider, s.X, s.Y, seed+int64(i))
		if err != nil {
			return lvl, fmt.Errorf("level: spider %d: %w", i, err)
		}
		lvl.Spiders = append(lvl.Spiders, e)
	}
	log.Printf("level: built %s with %d spiders", p.Arena.Name, len(lvl.Spiders))
	return lvl, nil
}

// DeathSequence converts the death spec into the template the attack
// trigger copies onto a killed player.
func DeathSequence(spec prefabs.DeathSpec) component.DeathSequence {
	return component.DeathSequence{
		VideoDelay:     spec.VideoDelay,
		Duration:       spec.Duration,
		FadeSpeed:      spec.FadeSpeed,
		ShakeDuration:  spec.ShakeDuration,
		ShakeMagnitude: spec.ShakeMagnitude,
	}
}
