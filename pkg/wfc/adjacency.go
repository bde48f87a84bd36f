package wfc

import (
	"fmt"
	"slices"
)

// Direction indexes one of a topology's neighbor directions.
type Direction int

// Topology describes the direction set of a position space.
type Topology interface {
	NumDirections() int
	Opposite(d Direction) Direction
}

// AdjacencyBuilder accumulates compatibility rules. The zero value is not
// usable; construct one with NewAdjacencyBuilder.
type AdjacencyBuilder struct {
	n        int
	opposite []Direction
	compat   map[TileID][][]TileID
	order    []TileID
	err      error
}

// NewAdjacencyBuilder returns a builder for the directions of topo.
func NewAdjacencyBuilder(topo Topology) *AdjacencyBuilder {
	n := topo.NumDirections()
	opp := make([]Direction, n)
	for d := 0; d < n; d++ {
		opp[d] = topo.Opposite(Direction(d))
	}
	return &AdjacencyBuilder{n: n, opposite: opp, compat: map[TileID][][]TileID{}}
}

// AddRule registers b as a permitted neighbor of a along d, and a as a
// permitted neighbor of b along the opposite of d.
func (b *AdjacencyBuilder) AddRule(a, c TileID, d Direction) *AdjacencyBuilder {
	if !b.validDirection(d) {
		return b
	}
	b.AddCompatible(a, c, d)
	b.AddCompatible(c, a, b.opposite[d])
	return b
}

// AddCompatible registers the one-sided relation "c may sit next to a along
// d". Callers that use it must register the opposite side themselves.
// Registering the same triple twice has no further effect.
func (b *AdjacencyBuilder) AddCompatible(a, c TileID, d Direction) *AdjacencyBuilder {
	if !b.validDirection(d) {
		return b
	}
	byDir := b.lists(a)
	b.lists(c)
	if slices.Contains(byDir[d], c) {
		return b
	}
	byDir[d] = append(byDir[d], c)
	return b
}

func (b *AdjacencyBuilder) lists(t TileID) [][]TileID {
	byDir, ok := b.compat[t]
	if !ok {
		byDir = make([][]TileID, b.n)
		b.compat[t] = byDir
		b.order = append(b.order, t)
	}
	return byDir
}

func (b *AdjacencyBuilder) validDirection(d Direction) bool {
	if d >= 0 && int(d) < b.n {
		return true
	}
	if b.err == nil {
		b.err = fmt.Errorf("%w: %d (have %d)", ErrInvalidDirection, d, b.n)
	}
	return false
}

// Build freezes the rules.
func (b *AdjacencyBuilder) Build() (*Adjacency, error) {
	if b.err != nil {
		return nil, b.err
	}
	a := &Adjacency{
		n:        b.n,
		opposite: append([]Direction(nil), b.opposite...),
		compat:   make(map[TileID][][]TileID, len(b.compat)),
		order:    append([]TileID(nil), b.order...),
	}
	for t, byDir := range b.compat {
		cp := make([][]TileID, b.n)
		for d, list := range byDir {
			cp[d] = append([]TileID(nil), list...)
		}
		a.compat[t] = cp
	}
	return a, nil
}

// Adjacency is the frozen compatibility relation between tiles per direction.
// It is read-only and safe to share between solves.
type Adjacency struct {
	n        int
	opposite []Direction
	compat   map[TileID][][]TileID
	order    []TileID
}

// NumDirections implements Topology.
func (a *Adjacency) NumDirections() int { return a.n }

// Opposite implements Topology.
func (a *Adjacency) Opposite(d Direction) Direction { return a.opposite[d] }

// Compatible lists the tiles that may neighbor t along d. An empty list means
// nothing may be placed there.
func (a *Adjacency) Compatible(t TileID, d Direction) []TileID {
	byDir, ok := a.compat[t]
	if !ok || d < 0 || int(d) >= a.n {
		return nil
	}
	return byDir[d]
}

// EnablerCount is the initial live-enabler count for (t, d).
func (a *Adjacency) EnablerCount(t TileID, d Direction) int {
	return len(a.Compatible(t, d))
}

// Tiles returns the tiles mentioned by any rule, in first-registration order.
func (a *Adjacency) Tiles() []TileID { return append([]TileID(nil), a.order...) }

// CheckSymmetry verifies that every relation has its counterpart along the
// opposite direction.
func (a *Adjacency) CheckSymmetry() error {
	for _, t := range a.order {
		for d, list := range a.compat[t] {
			od := a.opposite[d]
			for _, c := range list {
				if !slices.Contains(a.Compatible(c, od), t) {
					return fmt.Errorf("%w: %d -> %d along %d", ErrAsymmetricRule, t, c, d)
				}
			}
		}
	}
	return nil
}
