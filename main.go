package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and debug logging")
	seed := flag.Int64("seed", 0, "behavior seed (0 uses the spider prefab seed)")
	watch := flag.Bool("watch", true, "rebuild the world when files in prefabs/ change")
	spiders := flag.Int("spiders", 0, "number of spiders (0 uses the spider prefab count)")
	flag.Parse()

	if *debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	game, err := NewGame(GameOptions{
		Debug:   *debug,
		Seed:    *seed,
		Watch:   *watch,
		Spiders: *spiders,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ritual")
	ebiten.SetTPS(ticksPerSecond)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
