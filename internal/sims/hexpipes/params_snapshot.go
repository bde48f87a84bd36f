package hexpipes

import "hexweave/internal/core"

// Parameters reports the running configuration.
func (w *World) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Region",
			Params: []core.Parameter{
				core.IntParam("radius", "Radius", int64(w.cfg.Radius)),
				core.IntParam("ppu", "Pixels per unit", int64(w.cfg.PixelsPerUnit)),
				core.IntParam("seed", "Seed", w.seed),
			},
		},
		{
			Name: "Constraints",
			Params: []core.Parameter{
				core.BoolParam("border", "Sealed border", w.cfg.Border),
				core.FloatParam("voids", "Void threshold", w.cfg.Voids),
				core.FloatParam("void_scale", "Void scale", w.cfg.VoidScale),
			},
		},
		{
			Name: "Solver",
			Params: []core.Parameter{
				core.FloatParam("noise", "Tie-break noise", w.cfg.Noise),
				core.IntParam("attempts", "Max attempts", int64(w.cfg.MaxAttempts)),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "voids", Label: "Void threshold", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "void_scale", Label: "Void scale", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, HasMin: true},
		{Key: "noise", Label: "Tie-break noise", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, HasMin: true},
		{Key: "attempts", Label: "Max attempts", Type: core.ParamTypeInt, Step: 5, Min: 1, HasMin: true},
	}
}
