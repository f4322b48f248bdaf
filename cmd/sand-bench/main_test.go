package main

import (
	"context"
	"testing"

	"github.com/rdavidson1994/sand/internal/sims/sand"
)

func benchPair() (*sand.Sim, *sand.Sim) {
	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = 24, 24
	cfg.Scene = sand.SceneDemo
	cfg.Params.BandRows = 6
	cfg.Params.Workers = 3
	single := cfg
	single.Params.Workers = 1
	return sand.NewWithConfig(cfg), sand.NewWithConfig(single)
}

func TestCompareRunsMatchesFinishedRuns(t *testing.T) {
	sim, reference := benchPair()
	for range 3 {
		sim.Step()
		reference.Step()
	}
	match, ok := compareRuns(context.Background(), sim, reference)
	if !ok || !match {
		t.Fatalf("compareRuns = (%v,%v), want (true,true)", match, ok)
	}
}

func TestCompareRunsSkipsInterruptedRuns(t *testing.T) {
	sim, reference := benchPair()
	sim.Step()
	sim.Step()
	reference.Step()
	if _, ok := compareRuns(context.Background(), sim, reference); ok {
		t.Fatal("runs stopped on different turns were compared")
	}

	reference.Step()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := compareRuns(ctx, sim, reference); ok {
		t.Fatal("cancelled run was compared")
	}
}
