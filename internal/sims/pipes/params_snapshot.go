package pipes

import "hexweave/internal/core"

// Parameters reports the running configuration.
func (w *World) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("w", "Width", int64(w.cfg.Width)),
				core.IntParam("h", "Height", int64(w.cfg.Height)),
				core.IntParam("seed", "Seed", w.seed),
				core.IntParam("conn", "Connectivity", int64(w.cfg.Connectivity)),
				core.BoolParam("wrap", "Wrap", w.cfg.Wrap),
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
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "conn", Label: "Connectivity", Type: core.ParamTypeInt, Step: 4, Min: 4, Max: 8, HasMin: true, HasMax: true},
		{Key: "voids", Label: "Void threshold", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "void_scale", Label: "Void scale", Type: core.ParamTypeFloat, Step: 0.02, Min: 0.02, HasMin: true},
		{Key: "noise", Label: "Tie-break noise", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, HasMin: true},
		{Key: "attempts", Label: "Max attempts", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
	}
}
