// Package sand hosts the falling-sand world behind the core.Sim contract:
// it owns the tick schedule, the pens and the stock scenes.
package sand

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rdavidson1994/sand/internal/core"
	"github.com/rdavidson1994/sand/internal/elements"
	"github.com/rdavidson1994/sand/internal/engine"
	"github.com/rdavidson1994/sand/pkg/logger"
)

var log = logger.For("sand")

var (
	_ core.Sim                = (*Sim)(nil)
	_ core.Painter            = (*Sim)(nil)
	_ core.ParameterProvider  = (*Sim)(nil)
	_ core.IntParameterSetter = (*Sim)(nil)
)

// Sim drives an engine.World with the stock element pack.
type Sim struct {
	cfg   Config
	world *engine.World
	rng   *core.RNG
	turn  int

	// display mirrors the element id of every cell after each Step.
	display []uint8
	// observer, when set, is handed every completed step.
	observer func(StepReport)
}

// StepReport summarises one Step for observers such as metrics exporters.
type StepReport struct {
	Turn     int
	Ticks    int
	Occupied int
	Paused   int
	Elapsed  time.Duration
	Stats    engine.Stats
}

// New returns a w x h sand world using the default tuning.
func New(w, h int) *Sim {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a sand world configured from the provided options.
func NewWithConfig(cfg Config) *Sim {
	if err := cfg.Params.Validate(); err != nil {
		log.WithError(err).Warn("invalid tuning, using defaults")
		cfg.Params = DefaultConfig().Params
	}
	world := engine.NewWorld(cfg.Engine(), elements.Catalog())
	elements.Register(world)
	g := world.Grid()
	s := &Sim{
		cfg:     cfg,
		world:   world,
		display: make([]uint8, g.Len()),
	}
	// The engine may widen tiny grids.
	s.cfg.Width, s.cfg.Height = g.W, g.H
	s.Reset(0)
	return s
}

// Name returns the registry name.
func (s *Sim) Name() string { return "sand" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Cells exposes the element id of every cell as of the last Step or Reset.
func (s *Sim) Cells() []uint8 { return s.display }

// World exposes the underlying engine world.
func (s *Sim) World() *engine.World { return s.world }

// Config returns the active configuration.
func (s *Sim) Config() Config { return s.cfg }

// Turn reports how many ticks have run since the last Reset.
func (s *Sim) Turn() int { return s.turn }

// Observe installs fn as the step observer. A nil fn removes it.
func (s *Sim) Observe(fn func(StepReport)) { s.observer = fn }

// Reset clears the world, rebuilds the boundary walls and paints the
// configured scene. A zero seed reuses the configured one.
func (s *Sim) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	s.world.Clear()
	s.world.Reseed(effective)
	s.rng = core.NewRNG(effective)
	s.turn = 0
	s.world.CreateWalls(elements.Wall)
	if err := PaintScene(s.cfg.Scene, s.world, s.rng); err != nil {
		log.WithError(err).Warn("scene skipped")
	}
	s.refreshDisplay()
	occupied, _ := s.world.Counts()
	log.WithFields(logrus.Fields{
		"seed":     effective,
		"scene":    s.cfg.Scene,
		"width":    s.cfg.Width,
		"height":   s.cfg.Height,
		"occupied": occupied,
	}).Info("world reset")
}

// Tick advances the world by one update: sleep detection, gravity and
// periodic reactions on their periods, then velocity integration.
func (s *Sim) Tick() {
	p := s.cfg.Params
	s.world.PauseParticles()
	if s.turn%p.GravityPeriod == 0 {
		s.world.ApplyGravity()
	}
	if s.turn%p.ReactionPeriod == 0 {
		s.world.ApplyPeriodicReactions()
	}
	s.world.ApplyVelocity()
	s.turn++
}

// Step runs one frame worth of ticks.
func (s *Sim) Step() {
	start := time.Now()
	s.world.ResetStats()
	for range s.cfg.Params.UpdatesPerStep {
		s.Tick()
	}
	s.refreshDisplay()
	if s.observer == nil {
		return
	}
	occupied, paused := s.world.Counts()
	s.observer(StepReport{
		Turn:     s.turn,
		Ticks:    s.cfg.Params.UpdatesPerStep,
		Occupied: occupied,
		Paused:   paused,
		Elapsed:  time.Since(start),
		Stats:    s.world.Stats(),
	})
}

// SetIntParameter adjusts a schedule parameter at runtime. It reports
// whether key names a known schedule parameter and value is accepted.
func (s *Sim) SetIntParameter(key string, value int) bool {
	if value <= 0 {
		return false
	}
	switch key {
	case "gravity_period":
		s.cfg.Params.GravityPeriod = value
	case "reaction_period":
		s.cfg.Params.ReactionPeriod = value
	case "updates_per_step":
		s.cfg.Params.UpdatesPerStep = value
	default:
		return false
	}
	log.WithFields(logrus.Fields{"key": key, "value": value}).Debug("parameter changed")
	return true
}

func (s *Sim) refreshDisplay() {
	for i, t := range s.world.Cells() {
		s.display[i] = uint8(t.Element())
	}
}

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
