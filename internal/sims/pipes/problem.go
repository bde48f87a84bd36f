package pipes

import (
	"hexweave/internal/attempt"
	"hexweave/internal/pieces"
	"hexweave/pkg/geom"
	"hexweave/pkg/wfc"
)

// Problem holds everything a solve of the configured grid needs except the
// noise. It is shared between attempts.
type Problem struct {
	Config  Config
	Set     *pieces.Set
	Grid    geom.Grid
	Catalog *wfc.Catalog
	Rules   *wfc.Adjacency

	// Tracer, when set, receives solver events of every attempt.
	Tracer wfc.Tracer
}

// NewProblem resolves the piece set and compiles its rules for cfg.
func NewProblem(cfg Config) (*Problem, error) {
	set := pieces.SquarePipes()
	conn := geom.Four
	if cfg.Connectivity == 8 {
		set = pieces.OctoPipes()
		conn = geom.Eight
	}
	g := geom.NewGrid(cfg.Width, cfg.Height, conn)
	g.Wrap = cfg.Wrap
	cat, err := set.Catalog()
	if err != nil {
		return nil, err
	}
	rules, err := set.Adjacency(g)
	if err != nil {
		return nil, err
	}
	return &Problem{Config: cfg, Set: set, Grid: g, Catalog: cat, Rules: rules}, nil
}

// Constraints lists the pre-pass constraints enabled by the config.
func (p *Problem) Constraints() []wfc.Constraint[geom.Point] {
	var out []wfc.Constraint[geom.Point]
	if p.Config.Border && !p.Config.Wrap {
		out = append(out, pieces.BorderConstraint[geom.Point](p.Set))
	}
	if p.Config.Voids > 0 {
		coords := func(pt geom.Point) (float64, float64) { return float64(pt.X), float64(pt.Y) }
		out = append(out, pieces.VoidConstraint(p.Set, coords, pieces.VoidConfig{
			Seed:      p.Config.Seed,
			Scale:     p.Config.VoidScale,
			Threshold: p.Config.Voids,
		}))
	}
	return out
}

// Build implements attempt.Builder.
func (p *Problem) Build(noise wfc.NoiseSource) (*wfc.Collapser[geom.Point], error) {
	return wfc.New(wfc.Options[geom.Point]{
		Space:          p.Grid,
		Catalog:        p.Catalog,
		Rules:          p.Rules,
		Noise:          noise,
		NoiseAmplitude: p.Config.Noise,
		Constraints:    p.Constraints(),
		Tracer:         p.Tracer,
	})
}

// Builder returns the attempt builder for cfg.
func Builder(cfg Config) (attempt.Builder[geom.Point], *Problem, error) {
	p, err := NewProblem(cfg)
	if err != nil {
		return nil, nil, err
	}
	return p.Build, p, nil
}

// Glyph returns the ASCII glyph of a solved position.
func (p *Problem) Glyph(res *wfc.Result[geom.Point]) func(x, y int) rune {
	return func(x, y int) rune {
		id, ok := res.Tiles[geom.Point{X: x, Y: y}]
		if !ok {
			return '?'
		}
		return p.Set.Glyph(id)
	}
}
