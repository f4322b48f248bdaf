package elements

import "github.com/rdavidson1994/sand/internal/engine"

// Fire special info.
const (
	NoAsh    uint8 = 1
	MakesAsh uint8 = 2
)

const (
	burnOdds  = 100
	ashOdds   = 3
	explosion = 50
)

func fire() engine.Element {
	return engine.Element{
		ID:                 Fire,
		Name:               "fire",
		Mass:               3,
		Color:              rgb(1, 0, 0),
		DefaultTemperature: fireTemperature,
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			rng := v.Rand()
			if !rng.OneIn(burnOdds) {
				return t
			}
			if t.SpecialInfo() == MakesAsh && rng.OneIn(ashOdds) {
				t.SetElement(Ash)
				return t
			}
			return engine.Tile{}
		}),
	}
}

func ash() engine.Element {
	return engine.Element{
		ID:                 Ash,
		Name:               "ash",
		Flags:              engine.Gravity | engine.PerfectRestitution,
		Mass:               3,
		Color:              rgb(0.1, 0.1, 0.1),
		DefaultTemperature: roomTemperature,
	}
}

func gas() engine.Element {
	return engine.Element{
		ID:                 Gas,
		Name:               "gas",
		Flags:              engine.PauseExempt | engine.PerfectRestitution,
		Mass:               3,
		Color:              rgb(1, 0.5, 1),
		DefaultTemperature: roomTemperature,
	}
}

func oil() engine.Element {
	return engine.Element{
		ID:                 Oil,
		Name:               "oil",
		Flags:              engine.Gravity,
		Mass:               20,
		Color:              rgb(0.4, 0.2, 0.1),
		DefaultTemperature: roomTemperature,
		// Whatever rests on oil slides off sideways.
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			if above := v.Above(); above != nil && !above.IsEmpty() {
				above.AddVelocity(v.Rand().Range(-3, 4), 0)
				above.Paused = false
			}
			return t
		}),
	}
}

// igniteSand turns burning sand into ash-making fire and throws flames into
// the empty cells around it.
func igniteSand(sand, flame engine.Tile, v *engine.CollisionView) (engine.Tile, engine.Tile) {
	rng := v.Rand()
	temperature := (sand.Temperature + flame.Temperature) / 2
	v.ForNeighborsOfFirst(func(_ int, n *engine.Tile) {
		if !n.IsEmpty() {
			return
		}
		*n = engine.NewTile(engine.NewState(Fire, NoAsh), randomPosition(rng), randomVelocity(rng, 10), temperature)
	})
	sand.SetState(engine.NewState(Fire, MakesAsh))
	sand.Temperature = temperature
	return sand, flame
}

// explodeGas turns the gas into fire and blasts every cell around the flame
// outward, filling gaps with new fire.
func explodeGas(g, flame engine.Tile, v *engine.CollisionView) (engine.Tile, engine.Tile) {
	const diagonal = explosion * 1414 / 2000
	grid := v.Grid()
	fx, fy := grid.Coords(v.Second())
	temperature := (g.Temperature + flame.Temperature) / 2
	v.ForNeighborsOfSecond(func(j int, n *engine.Tile) {
		x, y := grid.Coords(j)
		dx, dy := x-fx, y-fy
		speed := explosion
		if dx != 0 && dy != 0 {
			speed = diagonal
		}
		if n.IsEmpty() {
			*n = engine.Stationary(engine.StateOf(Fire), temperature)
		}
		n.AddVelocity(dx*speed, dy*speed)
		n.Paused = false
	})
	g.SetElement(Fire)
	g.Temperature = temperature
	return g, flame
}

func quenchFire(flame, water engine.Tile) (engine.Tile, engine.Tile) {
	if flame.SpecialInfo() == MakesAsh {
		flame.SetElement(Ash)
		return flame, water
	}
	return engine.Tile{}, water
}

func burnOil(flame, o engine.Tile) (engine.Tile, engine.Tile) {
	o.SetState(engine.NewState(Fire, MakesAsh))
	warm(&o, fireTemperature, fireTemperature)
	return flame, o
}
