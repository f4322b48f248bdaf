package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim    string
	Scale  int
	TPS    int
	Seed   int64
	Width  int
	Height int
	Scene  string
	Tuning string
	// Workers of zero keeps the simulation default.
	Workers int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", Scale: 3, TPS: 60, Seed: 1, Width: 200, Height: 200}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.StringVar(&c.Scene, "scene", c.Scene, "initial scene")
	fs.StringVar(&c.Tuning, "tuning", c.Tuning, "YAML tuning file")
	fs.IntVar(&c.Workers, "workers", c.Workers, "band workers (0 = GOMAXPROCS)")
}

// Options renders the configuration as the flag-style map simulation
// factories accept. Unset optional values are omitted.
func (c *Config) Options() map[string]string {
	opts := map[string]string{
		"w":    strconv.Itoa(c.Width),
		"h":    strconv.Itoa(c.Height),
		"seed": strconv.FormatInt(c.Seed, 10),
	}
	if c.Scene != "" {
		opts["scene"] = c.Scene
	}
	if c.Tuning != "" {
		opts["tuning"] = c.Tuning
	}
	if c.Workers > 0 {
		opts["workers"] = strconv.Itoa(c.Workers)
	}
	return opts
}
