package sand

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFromMapOverridesAndIgnoresInvalid(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                 "64",
		"h":                 "-3",
		"seed":              "99",
		"scene":             SceneWire,
		"gravity_period":    "2",
		"reaction_period":   "zero",
		"fluid_push_chance": "1.5",
		"heat_transfer":     "0.25",
		"band_rows":         "2",
		"workers":           "3",
	})
	def := DefaultConfig()

	if cfg.Width != 64 || cfg.Height != def.Height {
		t.Fatalf("size = %dx%d, want 64x%d", cfg.Width, cfg.Height, def.Height)
	}
	if cfg.Seed != 99 || cfg.Scene != SceneWire {
		t.Fatalf("seed/scene = %d/%q", cfg.Seed, cfg.Scene)
	}
	if cfg.Params.GravityPeriod != 2 || cfg.Params.ReactionPeriod != def.Params.ReactionPeriod {
		t.Fatalf("periods = %d/%d", cfg.Params.GravityPeriod, cfg.Params.ReactionPeriod)
	}
	if cfg.Params.FluidPushChance != def.Params.FluidPushChance {
		t.Fatalf("out of range push chance accepted: %g", cfg.Params.FluidPushChance)
	}
	if cfg.Params.HeatTransfer != 0.25 || cfg.Params.Workers != 3 {
		t.Fatalf("heat/workers = %g/%d", cfg.Params.HeatTransfer, cfg.Params.Workers)
	}
	if cfg.Params.BandRows != def.Params.BandRows {
		t.Fatalf("band rows below the margin accepted: %d", cfg.Params.BandRows)
	}
}

func TestDefaultScheduleMatchesFrameBudget(t *testing.T) {
	p := DefaultConfig().Params
	if p.GravityPeriod != 5 || p.ReactionPeriod != 3 || p.UpdatesPerStep != 20 || p.PauseVelocity != 3 {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadTuningOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := "gravity_period: 7\nrestitution: 0.25\nworkers: 2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	base := DefaultConfig().Params
	p, err := LoadTuning(path, base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.GravityPeriod != 7 || p.Restitution != 0.25 || p.Workers != 2 {
		t.Fatalf("file values not applied: %+v", p)
	}
	if p.ReactionPeriod != base.ReactionPeriod || p.CollideRestitution != base.CollideRestitution {
		t.Fatalf("missing keys lost their base values: %+v", p)
	}

	cfg := FromMap(map[string]string{"tuning": path, "gravity_period": "9"})
	if cfg.Params.GravityPeriod != 9 || cfg.Params.Restitution != 0.25 {
		t.Fatalf("flag keys should apply after the tuning file: %+v", cfg.Params)
	}
}

func TestLoadTuningErrors(t *testing.T) {
	base := DefaultConfig().Params
	_, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml"), base)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("reaction_period: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadTuning(bad, base)
	if err == nil {
		t.Fatal("zero reaction period accepted")
	}
	if p != base {
		t.Fatalf("failed load should return base, got %+v", p)
	}

	garbled := filepath.Join(t.TempDir(), "garbled.yaml")
	if err := os.WriteFile(garbled, []byte("gravity_period: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(garbled, base); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}
