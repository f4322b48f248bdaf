package elements

import "github.com/rdavidson1994/sand/internal/engine"

const (
	boilingPoint   = 100
	condensePoint  = 99
	freezingPoint  = 0
	steamCoolOdds  = 4
	snowMeltOdds   = 100
	snowMeltedInfo = 255
)

func water() engine.Element {
	return engine.Element{
		ID:                 Water,
		Name:               "water",
		Flags:              engine.Gravity | engine.PauseExempt | engine.Fluid,
		Mass:               8,
		Color:              rgb(0, 0, 1),
		DefaultTemperature: roomTemperature,
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			switch {
			case t.Temperature > boilingPoint:
				t.SetElement(Steam)
			case t.Temperature < freezingPoint:
				t.SetElement(Snow)
			default:
				t.AddVelocity(v.Rand().Range(-3, 4), 0)
			}
			return t
		}),
	}
}

func steam() engine.Element {
	return engine.Element{
		ID:                 Steam,
		Name:               "steam",
		Flags:              engine.PauseExempt | engine.PerfectRestitution | engine.Fluid,
		Mass:               8,
		Color:              rgb(0.8, 0.8, 1),
		DefaultTemperature: steamTemperature,
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			rng := v.Rand()
			if t.Temperature < condensePoint {
				t.SetElement(Water)
				return t
			}
			if rng.OneIn(steamCoolOdds) {
				t.Temperature--
			}
			if abs(int(t.Velocity.X)) < 2 && abs(int(t.Velocity.Y)) < 2 {
				t.AddVelocity(rng.Range(-3, 4), rng.Range(-3, 4))
			}
			return t
		}),
	}
}

func snow() engine.Element {
	return engine.Element{
		ID:                 Snow,
		Name:               "snow",
		Flags:              engine.Gravity,
		Mass:               10,
		Color:              rgb(0.9, 0.9, 1),
		DefaultTemperature: snowTemperature,
		// Special info counts up as the snow slowly melts.
		Periodic: engine.Custom(func(t engine.Tile, v *engine.NeighborhoodView) engine.Tile {
			if !v.Rand().OneIn(snowMeltOdds) {
				return t
			}
			t.AdjustInfo(1)
			if t.Staged().Info == snowMeltedInfo {
				t.SetElement(Water)
				t.Temperature = freezingPoint + 1
			}
			return t
		}),
	}
}

func meltSnow(flame, s engine.Tile) (engine.Tile, engine.Tile) {
	s.SetElement(Water)
	s.Temperature = freezingPoint + 1
	return flame, s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
