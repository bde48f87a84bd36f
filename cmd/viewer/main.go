//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"hexweave/internal/app"
	"hexweave/internal/core"
	_ "hexweave/internal/sims/hexpipes"
	_ "hexweave/internal/sims/pipes"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxWindow = 1200

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown generator %q (have %v)", cfg.Sim, core.Names())
	}
	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}

	sim := factory(opts)
	sim.Reset(cfg.Seed)
	size := sim.Size()

	scale := cfg.Scale
	for scale > 1 && (size.W*scale > maxWindow || size.H*scale > maxWindow) {
		scale--
	}

	game := app.New(sim, scale, cfg.Seed, cfg.TPS, cfg.HUD)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("hexweave: " + sim.Name())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
