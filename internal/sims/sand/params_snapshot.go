package sand

import (
	"strconv"

	"github.com/rdavidson1994/sand/internal/core"
)

func (s *Sim) Parameters() core.ParameterSnapshot {
	p := s.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", s.cfg.Width),
				intParam("h", "Height", s.cfg.Height),
				int64Param("seed", "Seed", s.cfg.Seed),
				stringParam("scene", "Scene", s.cfg.Scene),
			},
		},
		{
			Name: "Schedule",
			Params: []core.Parameter{
				intParam("gravity_period", "Gravity period", p.GravityPeriod),
				intParam("reaction_period", "Reaction period", p.ReactionPeriod),
				intParam("updates_per_step", "Updates per step", p.UpdatesPerStep),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				intParam("pause_velocity", "Pause velocity", p.PauseVelocity),
				floatParam("restitution", "Wall restitution", p.Restitution),
				floatParam("collide_restitution", "Collision restitution", p.CollideRestitution),
				floatParam("fluid_push_chance", "Fluid push chance", p.FluidPushChance),
				floatParam("heat_transfer", "Heat transfer", p.HeatTransfer),
			},
		},
		{
			Name:    "Workers",
			Summary: "Row bands updated in two passes",
			Params: []core.Parameter{
				intParam("band_rows", "Band rows", p.BandRows),
				intParam("workers", "Workers", p.Workers),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
