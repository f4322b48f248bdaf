package elements

import (
	"image/color"

	"github.com/rdavidson1994/sand/internal/engine"
)

// Metal special info. Charge moves through metal like a wireworld signal:
// a neutral cell next to one or two heads becomes a head, heads decay to
// tails and tails back to neutral.
const (
	Neutral     uint8 = 1
	ChargedHead uint8 = 2
	ChargedTail uint8 = 3
)

const (
	electronLifetime = 60
	electronRarity   = 2
	lavaFireOdds     = 150
	lavaCoolOdds     = 30
	lavaHeat         = 5
)

func metal() engine.Element {
	neutral, head, tail := rgb(0.2, 0.2, 0.25), rgb(0.5, 0.5, 0.8), rgb(0.3, 0.3, 0.7)
	return engine.Element{
		ID:                 Metal,
		Name:               "metal",
		Flags:              engine.Fixed,
		Mass:               10,
		Color:              neutral,
		DefaultTemperature: roomTemperature,
		StateColor: func(info uint8) color.RGBA {
			switch info {
			case ChargedHead:
				return head
			case ChargedTail:
				return tail
			}
			return neutral
		},
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			switch t.SpecialInfo() {
			case ChargedHead:
				t.SetInfo(ChargedTail)
			case ChargedTail:
				t.SetInfo(Neutral)
			default:
				heads := v.Count(func(n engine.Tile) bool { return n.HasState(Metal, ChargedHead) })
				if heads == 1 || heads == 2 {
					t.SetInfo(ChargedHead)
				}
			}
			return t
		}),
	}
}

func electron() engine.Element {
	return engine.Element{
		ID:                 Electron,
		Name:               "electron",
		Flags:              engine.PauseExempt | engine.PerfectRestitution,
		Mass:               2,
		Color:              rgb(0.5, 0.5, 1),
		DefaultTemperature: roomTemperature,
		Periodic:           engine.DecayToNothing{Lifetime: electronLifetime, Rarity: electronRarity},
	}
}

func lava() engine.Element {
	return engine.Element{
		ID:                 Lava,
		Name:               "lava",
		Flags:              engine.Gravity | engine.PauseExempt,
		Mass:               50,
		Color:              rgb(0.8, 0.5, 0.2),
		DefaultTemperature: lavaTemperature,
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			rng := v.Rand()
			v.ForEachNeighbor(func(_ int, n *engine.Tile) {
				if !n.IsEmpty() {
					warm(n, lavaHeat, lavaTemperature)
					return
				}
				if !rng.OneIn(lavaFireOdds) {
					return
				}
				n.SetState(engine.NewState(Fire, NoAsh))
				n.Position = randomPosition(rng)
				n.Velocity = randomVelocity(rng, 10)
				n.Temperature = fireTemperature
				if rng.OneIn(lavaCoolOdds) {
					t.SetElement(Rock)
				}
			})
			return t
		}),
	}
}

func chargeMetal(m, e engine.Tile) (engine.Tile, engine.Tile) {
	m.SetInfo(ChargedHead)
	e.SetElement(Gas)
	return m, e
}

func meltMetal(m, l engine.Tile) (engine.Tile, engine.Tile) {
	m.SetElement(Lava)
	m.Temperature = l.Temperature
	return m, l
}
