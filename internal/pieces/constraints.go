package pieces

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"hexweave/pkg/wfc"
)

// BorderConstraint excludes, at every position, the pieces that would connect
// toward a missing neighbor.
func BorderConstraint[P comparable](s *Set) wfc.Constraint[P] {
	return func(space wfc.Space[P]) []wfc.Exclusion[P] {
		var out []wfc.Exclusion[P]
		for _, p := range space.Positions() {
			var tiles []wfc.TileID
			for d := 0; d < space.NumDirections(); d++ {
				if _, ok := space.Neighbor(p, wfc.Direction(d)); !ok {
					tiles = append(tiles, s.With(wfc.Direction(d))...)
				}
			}
			if len(tiles) > 0 {
				out = append(out, wfc.Exclusion[P]{Position: p, Tiles: tiles})
			}
		}
		return out
	}
}

// VoidConfig shapes the holes carved by VoidConstraint.
type VoidConfig struct {
	Seed int64
	// Scale multiplies coordinates before sampling; smaller values make
	// larger voids.
	Scale float64
	// Threshold is the normalized noise level below which a position is void.
	Threshold float64
}

// VoidConstraint samples normalized simplex noise at each position and, where
// it falls below the threshold, leaves only unconnected pieces.
func VoidConstraint[P comparable](s *Set, coords func(P) (x, y float64), cfg VoidConfig) wfc.Constraint[P] {
	return func(space wfc.Space[P]) []wfc.Exclusion[P] {
		noise := opensimplex.NewNormalized(cfg.Seed)
		connected := s.Connected()
		var out []wfc.Exclusion[P]
		for _, p := range space.Positions() {
			x, y := coords(p)
			if noise.Eval2(x*cfg.Scale, y*cfg.Scale) < cfg.Threshold {
				out = append(out, wfc.Exclusion[P]{Position: p, Tiles: connected})
			}
		}
		return out
	}
}
