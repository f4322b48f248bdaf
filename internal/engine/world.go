package engine

import (
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/rdavidson1994/sand/internal/core"
	"github.com/rdavidson1994/sand/pkg/logger"
)

// Physics holds the tunable constants of the motion model.
type Physics struct {
	// PauseVelocity is the largest speed per axis at which a supported tile
	// may fall asleep.
	PauseVelocity int8
	// Restitution scales the speed of a tile bouncing off a fixed one.
	Restitution float64
	// CollideRestitution scales both outgoing speeds of a two-body collision.
	CollideRestitution float64
	// FluidPushChance is the probability that a tile pushes through a fluid
	// instead of stopping at it.
	FluidPushChance float64
	// HeatTransfer is the fraction of the temperature difference exchanged by
	// colliding tiles. Zero disables exchange.
	HeatTransfer float64
	BandRows     int
	Workers      int
}

// DefaultPhysics returns the stock tuning.
func DefaultPhysics() Physics {
	return Physics{
		PauseVelocity:      3,
		Restitution:        0.5,
		CollideRestitution: 0.8,
		FluidPushChance:    0.5,
		HeatTransfer:       0,
		BandRows:           DefaultBandRows,
		Workers:            runtime.GOMAXPROCS(0),
	}
}

// Config sizes and seeds a world.
type Config struct {
	Width   int
	Height  int
	Seed    int64
	Physics Physics
}

// Stats counts events since the last ResetStats.
type Stats struct {
	Moves        int
	Collisions   int
	Bounces      int
	PushThroughs int
	Reactions    int
}

// World owns the cell buffer and runs the per-tick phases over it.
type World struct {
	grid      core.Grid
	cells     []Tile
	catalog   *Catalog
	physics   Physics
	seed      int64
	rng       *core.RNG
	driver    *Driver
	reactions *Reactions
	queue     motionQueue
	passes    uint64
	stats     Stats
	log       *logrus.Entry
}

// NewWorld allocates an empty world. Grids narrower or shorter than three
// cells are widened so every cell has a neighbourhood.
func NewWorld(cfg Config, catalog *Catalog) *World {
	if catalog == nil {
		panic("new world: nil catalog")
	}
	grid := core.NewGrid(max(cfg.Width, 3), max(cfg.Height, 3))
	phys := cfg.Physics
	if phys.BandRows == 0 {
		phys.BandRows = DefaultBandRows
	}
	w := &World{
		grid:      grid,
		cells:     make([]Tile, grid.Len()),
		catalog:   catalog,
		physics:   phys,
		seed:      cfg.Seed,
		rng:       core.NewRNG(cfg.Seed),
		driver:    NewDriver(grid, phys.BandRows, phys.Workers),
		reactions: newReactions(catalog),
		log:       logger.For("engine"),
	}
	w.log.WithFields(logrus.Fields{
		"width":    grid.W,
		"height":   grid.H,
		"elements": catalog.Len() - 1,
		"bands":    w.driver.Chunks(),
		"workers":  w.driver.Workers(),
	}).Debug("world created")
	return w
}

// Grid returns the world geometry.
func (w *World) Grid() core.Grid { return w.grid }

// Catalog returns the element catalog.
func (w *World) Catalog() *Catalog { return w.catalog }

// Physics returns the active tuning.
func (w *World) Physics() Physics { return w.physics }

// Cells exposes the cell buffer for read access by renderers.
func (w *World) Cells() []Tile { return w.cells }

// At returns a copy of the tile at i.
func (w *World) At(i int) Tile { return w.cells[i] }

// Set overwrites the cell at i and wakes whatever rests on it.
func (w *World) Set(i int, t Tile) {
	w.cells[i] = t
	if a, ok := w.grid.Above(i); ok {
		w.Unpause(a)
	}
}

// Spawn returns a resting tile of element id at its default temperature.
func (w *World) Spawn(id ElementID) Tile {
	return w.catalog.Spawn(id)
}

// Clear empties every cell and resets the pass counter and statistics.
func (w *World) Clear() {
	clear(w.cells)
	w.passes = 0
	w.stats = Stats{}
}

// Reseed restarts the world's random sources.
func (w *World) Reseed(seed int64) {
	w.seed = seed
	w.rng = core.NewRNG(seed)
	w.passes = 0
}

// CreateWalls fills the outer ring of cells with element id.
func (w *World) CreateWalls(id ElementID) {
	wall := w.catalog.Spawn(id)
	for x := 0; x < w.grid.W; x++ {
		w.cells[w.grid.Point(x, 0)] = wall
		w.cells[w.grid.Point(x, w.grid.H-1)] = wall
	}
	for y := 0; y < w.grid.H; y++ {
		w.cells[w.grid.Point(0, y)] = wall
		w.cells[w.grid.Point(w.grid.W-1, y)] = wall
	}
}

// Swap exchanges two cells and wakes the stack resting above the source.
func (w *World) Swap(i, j int) {
	w.cells[i], w.cells[j] = w.cells[j], w.cells[i]
	if a, ok := w.grid.Above(i); ok {
		w.Unpause(a)
	}
}

// Unpause wakes the tile at i and every sleeping tile stacked directly above
// it. The walk stops at the first empty or awake cell.
func (w *World) Unpause(i int) {
	for {
		t := &w.cells[i]
		if t.IsEmpty() || !t.Paused {
			return
		}
		t.Paused = false
		above, ok := w.grid.Above(i)
		if !ok {
			return
		}
		i = above
	}
}

// HasStableFloor reports whether the tile at i rests on the bottom edge, a
// fixed tile or a sleeping tile.
func (w *World) HasStableFloor(i int) bool {
	below, ok := w.grid.Below(i)
	if !ok {
		return true
	}
	t := w.cells[below]
	if t.IsEmpty() {
		return false
	}
	return t.Paused || w.catalog.Has(t.Element(), Fixed)
}

// PauseParticles puts to sleep every slow tile resting on a stable floor.
func (w *World) PauseParticles() {
	limit := int(w.physics.PauseVelocity)
	for i := range w.cells {
		t := &w.cells[i]
		if t.IsEmpty() || t.Paused {
			continue
		}
		if w.catalog.Has(t.Element(), PauseExempt) {
			continue
		}
		if abs8(t.Velocity.X) > limit || abs8(t.Velocity.Y) > limit {
			continue
		}
		if !w.HasStableFloor(i) {
			continue
		}
		t.Paused = true
		t.Stop()
	}
}

// ApplyGravity accelerates every awake, unfixed tile with the Gravity flag
// downward by one unit.
func (w *World) ApplyGravity() {
	w.driver.ForEach(w.cells, func(c *Chunk, i int) {
		t := c.At(i)
		if t.IsEmpty() || t.Paused {
			return
		}
		e := w.catalog.Get(t.Element())
		if !e.Has(Gravity) || e.Has(Fixed) {
			return
		}
		t.Velocity.Y = saturatingAdd(t.Velocity.Y, 1)
	})
}

// MoveParticle moves the tile at source one cell to destination, resolving a
// collision if destination is occupied. An empty source is a no-op.
func (w *World) MoveParticle(source, destination int) {
	s, d := w.MutatePair(source, destination)
	if s.IsEmpty() {
		return
	}
	if d.IsEmpty() {
		w.Swap(source, destination)
		w.stats.Moves++
		return
	}

	w.stats.Collisions++
	se, de := w.catalog.Get(s.Element()), w.catalog.Get(d.Element())
	horizontal := w.grid.AdjacentX(source, destination)
	if de.Has(Fixed) {
		r := w.physics.Restitution
		if se.Has(PerfectRestitution) {
			r = 1
		}
		// The overflowed sub-cell offset is dropped so the reflected
		// velocity does not carry the tile straight back out.
		if horizontal {
			s.Velocity.X = reflect(s.Velocity.X, r)
			s.Position.X = 0
		} else {
			s.Velocity.Y = reflect(s.Velocity.Y, r)
			s.Position.Y = 0
		}
		w.stats.Bounces++
	} else {
		r1, r2 := w.physics.CollideRestitution, w.physics.CollideRestitution
		if se.Has(PerfectRestitution) {
			r1 = 1
		}
		if de.Has(PerfectRestitution) {
			r2 = 1
		}
		if horizontal {
			s.Velocity.X, d.Velocity.X = elasticCollide(s.Velocity.X, d.Velocity.X, se.Mass, de.Mass, r1, r2)
		} else {
			s.Velocity.Y, d.Velocity.Y = elasticCollide(s.Velocity.Y, d.Velocity.Y, se.Mass, de.Mass, r1, r2)
		}
	}
	w.exchangeHeat(s, d)
	w.Unpause(destination)

	if de.Has(Fluid) && !de.Has(Fixed) && w.rng.Chance(w.physics.FluidPushChance) {
		w.Swap(source, destination)
		w.stats.PushThroughs++
	}
	if w.reactions.dispatch(w, source, destination) {
		w.stats.Reactions++
	}
}

func (w *World) exchangeHeat(a, b *Tile) {
	if w.physics.HeatTransfer <= 0 {
		return
	}
	delta := int(float64(int(b.Temperature)-int(a.Temperature)) * w.physics.HeatTransfer / 2)
	a.Temperature += int16(delta)
	b.Temperature -= int16(delta)
}

// Stats returns the event counters.
func (w *World) Stats() Stats { return w.stats }

// ResetStats zeroes the event counters.
func (w *World) ResetStats() { w.stats = Stats{} }

// Counts returns the number of occupied and sleeping cells.
func (w *World) Counts() (occupied, paused int) {
	for i := range w.cells {
		if w.cells[i].IsEmpty() {
			continue
		}
		occupied++
		if w.cells[i].Paused {
			paused++
		}
	}
	return occupied, paused
}

// Histogram returns the number of cells holding each element, indexed by id.
// Slot zero counts empty cells.
func (w *World) Histogram() []int {
	h := make([]int, w.catalog.Len())
	for i := range w.cells {
		h[w.cells[i].Element()]++
	}
	return h
}

// RegisterCollisionReaction binds fn to collisions between a and b. a must
// not be greater than b.
func (w *World) RegisterCollisionReaction(a, b ElementID, fn CollisionReaction) {
	w.reactions.RegisterCollisionReaction(a, b, fn)
	w.logRegistration("reaction", a, b)
}

// RegisterCollisionSideEffect binds fn to collisions between a and b with
// access to the surrounding cells. a must not be greater than b.
func (w *World) RegisterCollisionSideEffect(a, b ElementID, fn CollisionSideEffect) {
	w.reactions.RegisterCollisionSideEffect(a, b, fn)
	w.logRegistration("side effect", a, b)
}

// RegisterFlagCollisionReaction binds fn to collisions between element id
// and any element carrying flag.
func (w *World) RegisterFlagCollisionReaction(id ElementID, flag Flags, fn CollisionReaction) {
	w.reactions.RegisterFlagCollisionReaction(id, flag, fn)
	w.log.WithFields(logrus.Fields{
		"element": w.catalog.Name(id),
		"flag":    flag,
	}).Debug("flag reaction registered")
}

func (w *World) logRegistration(kind string, a, b ElementID) {
	w.log.WithFields(logrus.Fields{
		"kind":   kind,
		"first":  w.catalog.Name(a),
		"second": w.catalog.Name(b),
	}).Debug("collision handler registered")
}
