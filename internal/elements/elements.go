// Package elements is the stock content pack: element descriptors and the
// collision handlers that make them interact.
package elements

import (
	"image/color"

	"github.com/rdavidson1994/sand/internal/core"
	"github.com/rdavidson1994/sand/internal/engine"
)

// Element ids. Collision handlers are registered with the lower id first, so
// the order here is part of the content contract.
const (
	Wall engine.ElementID = iota + 1
	Rock
	Sand
	Gas
	Fire
	Ash
	Water
	Metal
	Electron
	Glass
	Snow
	Oil
	Lava
	SolidGlue
	Glue
	Steam
	Dirt
	Seed
	Plant
)

// Default temperatures.
const (
	roomTemperature  = 20
	snowTemperature  = -10
	steamTemperature = 120
	fireTemperature  = 300
	lavaTemperature  = 1200
)

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

// Catalog builds the element table.
func Catalog() *engine.Catalog {
	return engine.MustCatalog(
		engine.Element{ID: Wall, Name: "wall", Flags: engine.Fixed, Mass: 127, Color: rgb(1, 1, 1), DefaultTemperature: roomTemperature},
		engine.Element{ID: Rock, Name: "rock", Flags: engine.Gravity, Mass: 50, Color: rgb(0.5, 0.5, 0.5), DefaultTemperature: roomTemperature},
		engine.Element{ID: Sand, Name: "sand", Flags: engine.Gravity, Mass: 10, Color: rgb(1, 1, 0.5), DefaultTemperature: roomTemperature},
		gas(),
		fire(),
		ash(),
		water(),
		metal(),
		electron(),
		glass(),
		snow(),
		oil(),
		lava(),
		solidGlue(),
		glue(),
		steam(),
		dirt(),
		seed(),
		plant(),
	)
}

// Register installs every collision handler of the pack on w. Pairs are
// listed in ascending id order.
func Register(w *engine.World) {
	w.RegisterCollisionSideEffect(Sand, Fire, igniteSand)
	w.RegisterCollisionSideEffect(Gas, Fire, explodeGas)
	w.RegisterCollisionReaction(Fire, Water, quenchFire)
	w.RegisterCollisionReaction(Fire, Snow, meltSnow)
	w.RegisterCollisionReaction(Fire, Oil, burnOil)
	w.RegisterCollisionReaction(Water, Dirt, soakDirt)
	w.RegisterCollisionReaction(Metal, Electron, chargeMetal)
	w.RegisterCollisionReaction(Metal, Lava, meltMetal)
	w.RegisterFlagCollisionReaction(Glue, engine.Fixed, setGlue)
}

// Palette lists the elements a user may paint with, in menu order.
func Palette() []engine.ElementID {
	return []engine.ElementID{
		Sand, Water, Rock, Wall, Fire, Gas, Oil, Lava,
		Metal, Electron, Glass, Snow, Glue, Dirt, Seed,
	}
}

func randomVelocity(rng *core.RNG, span int) engine.Vector {
	return engine.Vector{X: int8(rng.Range(-span, span+1)), Y: int8(rng.Range(-span, span+1))}
}

func randomPosition(rng *core.RNG) engine.Vector {
	return engine.Vector{X: int8(rng.Range(-126, 127)), Y: int8(rng.Range(-126, 127))}
}

func warm(t *engine.Tile, delta, limit int) {
	v := int(t.Temperature) + delta
	if v > limit {
		v = limit
	}
	if v < int(t.Temperature) {
		return
	}
	t.Temperature = int16(v)
}
