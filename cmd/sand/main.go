//go:build ebiten

package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rdavidson1994/sand/internal/app"
	"github.com/rdavidson1994/sand/internal/core"
	"github.com/rdavidson1994/sand/internal/sims/sand"
	"github.com/rdavidson1994/sand/pkg/logger"
)

func main() {
	logger.Init()
	log := logger.For("main")

	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}
	sim, ok := factory(cfg.Options()).(*sand.Sim)
	if !ok {
		log.Fatalf("sim %q has no interactive front-end", cfg.Sim)
	}

	game := app.New(sim, cfg.Scale, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("Falling sand")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+app.PanelWidth, size.H*cfg.Scale)

	log.WithField("size", size).Info("starting")
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
