package hexpipes

import (
	"hexweave/internal/attempt"
	"hexweave/internal/pieces"
	"hexweave/pkg/geom"
	"hexweave/pkg/wfc"
)

// Problem holds the compiled inputs of a hex solve.
type Problem struct {
	Config  Config
	Set     *pieces.Set
	Region  geom.HexRegion
	Catalog *wfc.Catalog
	Rules   *wfc.Adjacency
	Tracer  wfc.Tracer
}

// NewProblem compiles the hex piece set for cfg.
func NewProblem(cfg Config) (*Problem, error) {
	set := pieces.HexPipes()
	region := geom.HexRegion{Radius: cfg.Radius}
	cat, err := set.Catalog()
	if err != nil {
		return nil, err
	}
	rules, err := set.Adjacency(region)
	if err != nil {
		return nil, err
	}
	return &Problem{Config: cfg, Set: set, Region: region, Catalog: cat, Rules: rules}, nil
}

// Constraints lists the pre-pass constraints enabled by the config.
func (p *Problem) Constraints() []wfc.Constraint[geom.Cube] {
	var out []wfc.Constraint[geom.Cube]
	if p.Config.Border {
		out = append(out, pieces.BorderConstraint[geom.Cube](p.Set))
	}
	if p.Config.Voids > 0 {
		out = append(out, pieces.VoidConstraint(p.Set, geom.ToOrtho, pieces.VoidConfig{
			Seed:      p.Config.Seed,
			Scale:     p.Config.VoidScale,
			Threshold: p.Config.Voids,
		}))
	}
	return out
}

// Build implements attempt.Builder.
func (p *Problem) Build(noise wfc.NoiseSource) (*wfc.Collapser[geom.Cube], error) {
	return wfc.New(wfc.Options[geom.Cube]{
		Space:          p.Region,
		Catalog:        p.Catalog,
		Rules:          p.Rules,
		Noise:          noise,
		NoiseAmplitude: p.Config.Noise,
		Constraints:    p.Constraints(),
		Tracer:         p.Tracer,
	})
}

// Builder returns the attempt builder for cfg.
func Builder(cfg Config) (attempt.Builder[geom.Cube], *Problem, error) {
	p, err := NewProblem(cfg)
	if err != nil {
		return nil, nil, err
	}
	return p.Build, p, nil
}

// Glyph returns the ASCII glyph of a solved position.
func (p *Problem) Glyph(res *wfc.Result[geom.Cube]) func(c geom.Cube) rune {
	return func(c geom.Cube) rune {
		id, ok := res.Tiles[c]
		if !ok {
			return '?'
		}
		return p.Set.Glyph(id)
	}
}
