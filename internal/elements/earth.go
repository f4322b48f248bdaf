package elements

import (
	"image/color"

	"github.com/rdavidson1994/sand/internal/engine"
)

// Glass special info.
const (
	GlassEdge  uint8 = 1
	GlassInner uint8 = 2
)

const (
	glueLifetime  = 10
	glueRarity    = 100
	soakLimit     = 192
	soakAmount    = 64
	wickMargin    = 5
	seedThirst    = 64
	seedDrink     = 10
	sproutWater   = 20
	plantCapacity = 192
)

func glass() engine.Element {
	pale, dark := rgb(0.9, 0.9, 1), rgb(0.1, 0.1, 0.2)
	return engine.Element{
		ID:                 Glass,
		Name:               "glass",
		Flags:              engine.Fixed,
		Mass:               10,
		Color:              pale,
		DefaultTemperature: roomTemperature,
		StateColor: func(info uint8) color.RGBA {
			if info == GlassInner {
				return dark
			}
			return pale
		},
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			enclosed := len(v.Neighbors()) == 8 && v.CountElement(Glass) == 8
			if enclosed {
				t.SetInfo(GlassInner)
			} else {
				t.SetInfo(GlassEdge)
			}
			return t
		}),
	}
}

func glue() engine.Element {
	return engine.Element{
		ID:                 Glue,
		Name:               "glue",
		Flags:              engine.Gravity | engine.Fluid,
		Mass:               10,
		Color:              rgb(0.9, 0.9, 0.5),
		DefaultTemperature: roomTemperature,
	}
}

func solidGlue() engine.Element {
	return engine.Element{
		ID:                 SolidGlue,
		Name:               "solid glue",
		Flags:              engine.Fixed,
		Mass:               10,
		Color:              rgb(0.8, 0.8, 0.7),
		DefaultTemperature: roomTemperature,
		Periodic:           engine.DecayInto{Element: Glue, Lifetime: glueLifetime, Rarity: glueRarity},
	}
}

// setGlue hardens glue that touches anything fixed.
func setGlue(g, fixed engine.Tile) (engine.Tile, engine.Tile) {
	g.Stop()
	g.SetElement(SolidGlue)
	return g, fixed
}

func moisture(t engine.Tile) uint8 {
	if t.Is(Dirt) {
		return t.SpecialInfo()
	}
	return 0
}

func dirt() engine.Element {
	dry := rgb(0.6, 0.6, 0.2)
	wet := [...]color.RGBA{rgb(0.5, 0.5, 0.25), rgb(0.4, 0.4, 0.2), rgb(0.3, 0.3, 0.15), rgb(0.2, 0.2, 0.1)}
	return engine.Element{
		ID:                 Dirt,
		Name:               "dirt",
		Flags:              engine.Gravity,
		Mass:               10,
		Color:              dry,
		DefaultTemperature: roomTemperature,
		StateColor: func(m uint8) color.RGBA {
			switch {
			case m <= engine.InfoNone:
				return dry
			case m <= 64:
				return wet[0]
			case m <= 128:
				return wet[1]
			case m <= 192:
				return wet[2]
			}
			return wet[3]
		},
		// Moisture wicks from wetter dirt into this cell one unit at a time.
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			mine := int(t.SpecialInfo())
			v.ForEachNeighbor(func(_ int, n *engine.Tile) {
				if int(moisture(*n)) > mine+wickMargin {
					n.AdjustInfo(-1)
					t.AdjustInfo(1)
				}
			})
			return t
		}),
	}
}

// soakDirt lets dirt absorb water until it is nearly saturated.
func soakDirt(w, d engine.Tile) (engine.Tile, engine.Tile) {
	if d.SpecialInfo() > soakLimit {
		return w, d
	}
	d.AdjustInfo(soakAmount)
	return engine.Tile{}, d
}

func seed() engine.Element {
	return engine.Element{
		ID:                 Seed,
		Name:               "seed",
		Flags:              engine.Gravity,
		Mass:               10,
		Color:              rgb(0.5, 0.6, 0.1),
		DefaultTemperature: roomTemperature,
		// A resting seed drinks from wet dirt around it and sprouts upward.
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			if !t.Velocity.IsZero() {
				return t
			}
			above := v.Above()
			if above == nil || !(above.IsEmpty() || above.Is(Dirt)) {
				return t
			}
			drunk := 0
			v.ForEachNeighbor(func(_ int, n *engine.Tile) {
				if moisture(*n) > seedThirst {
					n.AdjustInfo(-seedDrink)
					drunk += seedDrink
				}
			})
			if drunk > sproutWater {
				above.SetState(engine.NewState(Plant, uint8(min(drunk, 255))))
				above.Temperature = t.Temperature
			}
			return t
		}),
	}
}

func plant() engine.Element {
	return engine.Element{
		ID:                 Plant,
		Name:               "plant",
		Flags:              engine.Fixed,
		Mass:               3,
		Color:              rgb(0.1, 0.8, 0.1),
		DefaultTemperature: roomTemperature,
		// Special info is stored sap. Sap climbs the stem and a plant with
		// enough of it grows a new cell on top.
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			if below := v.Below(); below != nil && below.Is(Plant) &&
				below.SpecialInfo() > seedDrink && t.SpecialInfo() < plantCapacity {
				t.AdjustInfo(seedDrink)
				below.AdjustInfo(-seedDrink)
			}
			if t.SpecialInfo() <= sproutWater {
				return t
			}
			if above := v.Above(); above != nil && (above.IsEmpty() || above.Is(Dirt)) {
				above.SetState(engine.NewState(Plant, engine.InfoNone))
				above.Temperature = t.Temperature
				t.AdjustInfo(-seedDrink)
			}
			return t
		}),
	}
}
