package sand

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rdavidson1994/sand/internal/engine"
)

// Params holds the tick schedule and the motion model tuning.
type Params struct {
	// GravityPeriod is the number of ticks between gravity passes.
	GravityPeriod int `yaml:"gravity_period"`
	// ReactionPeriod is the number of ticks between periodic reaction passes.
	ReactionPeriod int `yaml:"reaction_period"`
	// UpdatesPerStep is the number of ticks one Step advances.
	UpdatesPerStep int `yaml:"updates_per_step"`

	PauseVelocity      int     `yaml:"pause_velocity"`
	Restitution        float64 `yaml:"restitution"`
	CollideRestitution float64 `yaml:"collide_restitution"`
	FluidPushChance    float64 `yaml:"fluid_push_chance"`
	HeatTransfer       float64 `yaml:"heat_transfer"`

	BandRows int `yaml:"band_rows"`
	Workers  int `yaml:"workers"`
}

// Config controls the sand simulation dimensions and tuning.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Scene names the layout Reset paints after building the walls.
	Scene string

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	phys := engine.DefaultPhysics()
	return Config{
		Width:  200,
		Height: 200,
		Seed:   1,
		Scene:  SceneEmpty,
		Params: Params{
			GravityPeriod:      5,
			ReactionPeriod:     3,
			UpdatesPerStep:     20,
			PauseVelocity:      int(phys.PauseVelocity),
			Restitution:        phys.Restitution,
			CollideRestitution: phys.CollideRestitution,
			FluidPushChance:    phys.FluidPushChance,
			HeatTransfer:       phys.HeatTransfer,
			BandRows:           phys.BandRows,
			Workers:            phys.Workers,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// A "tuning" key names a YAML file that is applied before the other keys.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["tuning"]; ok && v != "" {
		if p, err := LoadTuning(v, c.Params); err == nil {
			c.Params = p
		} else {
			log.WithError(err).Warn("ignoring tuning file")
		}
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scene"]; ok && v != "" {
		c.Scene = v
	}
	if v, ok := cfg["gravity_period"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.GravityPeriod = parsed
		}
	}
	if v, ok := cfg["reaction_period"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ReactionPeriod = parsed
		}
	}
	if v, ok := cfg["updates_per_step"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.UpdatesPerStep = parsed
		}
	}
	if v, ok := cfg["pause_velocity"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 127 {
			c.Params.PauseVelocity = parsed
		}
	}
	if v, ok := cfg["restitution"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Restitution = parsed
		}
	}
	if v, ok := cfg["collide_restitution"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.CollideRestitution = parsed
		}
	}
	if v, ok := cfg["fluid_push_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.FluidPushChance = parsed
		}
	}
	if v, ok := cfg["heat_transfer"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.HeatTransfer = parsed
		}
	}
	if v, ok := cfg["band_rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 2*engine.Margin {
			c.Params.BandRows = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.Workers = parsed
		}
	}
	return c
}

// LoadTuning reads a YAML tuning file on top of base. Keys missing from the
// file keep their value from base.
func LoadTuning(path string, base Params) (Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read tuning %s: %w", path, err)
	}
	p := base
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return base, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return base, fmt.Errorf("tuning %s: %w", path, err)
	}
	log.WithField("path", path).Info("tuning loaded")
	return p, nil
}

// Validate reports the first out-of-range value.
func (p Params) Validate() error {
	switch {
	case p.GravityPeriod <= 0:
		return fmt.Errorf("gravity_period must be positive, got %d", p.GravityPeriod)
	case p.ReactionPeriod <= 0:
		return fmt.Errorf("reaction_period must be positive, got %d", p.ReactionPeriod)
	case p.UpdatesPerStep <= 0:
		return fmt.Errorf("updates_per_step must be positive, got %d", p.UpdatesPerStep)
	case p.PauseVelocity < 0 || p.PauseVelocity > 127:
		return fmt.Errorf("pause_velocity must be in [0,127], got %d", p.PauseVelocity)
	case p.FluidPushChance < 0 || p.FluidPushChance > 1:
		return fmt.Errorf("fluid_push_chance must be in [0,1], got %g", p.FluidPushChance)
	case p.HeatTransfer < 0 || p.HeatTransfer > 1:
		return fmt.Errorf("heat_transfer must be in [0,1], got %g", p.HeatTransfer)
	case p.BandRows < 2*engine.Margin:
		return fmt.Errorf("band_rows must be at least %d, got %d", 2*engine.Margin, p.BandRows)
	}
	return nil
}

// Physics converts the tuning into the engine's motion model.
func (p Params) Physics() engine.Physics {
	return engine.Physics{
		PauseVelocity:      int8(p.PauseVelocity),
		Restitution:        p.Restitution,
		CollideRestitution: p.CollideRestitution,
		FluidPushChance:    p.FluidPushChance,
		HeatTransfer:       p.HeatTransfer,
		BandRows:           p.BandRows,
		Workers:            p.Workers,
	}
}

// Engine returns the world configuration for c.
func (c Config) Engine() engine.Config {
	return engine.Config{Width: c.Width, Height: c.Height, Seed: c.Seed, Physics: c.Params.Physics()}
}
