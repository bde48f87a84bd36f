package wfc

// Space is an enumerable set of positions with a neighbor function. The
// neighbor relation must be symmetric: if q is p's neighbor along d, then p is
// q's neighbor along Opposite(d).
type Space[P comparable] interface {
	Topology
	// Positions lists every position once. The order fixes cell creation
	// order and therefore which noise draw each cell receives.
	Positions() []P
	// Neighbor returns the position next to p along d, or false at a boundary.
	Neighbor(p P, d Direction) (P, bool)
}

// Exclusion names tiles to remove from one position.
type Exclusion[P comparable] struct {
	Position P
	Tiles    []TileID
}

// Constraint is evaluated once against the whole space before collapsing
// starts. Its exclusions are applied in order, followed by propagation.
type Constraint[P comparable] func(space Space[P]) []Exclusion[P]

// NoiseSource yields values in [0,1). It supplies both tie-break noise and
// weighted sampling draws.
type NoiseSource func() float64
