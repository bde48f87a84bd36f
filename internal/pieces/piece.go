// Package pieces turns connection-mask pieces into solver tiles. A piece has a
// connection along each direction or not, and two pieces may sit side by side
// exactly when they agree on the shared edge.
package pieces

import (
	"errors"
	"fmt"

	"hexweave/pkg/wfc"
)

// Piece is a tile described by its connections.
type Piece struct {
	ID wfc.TileID
	// Connections holds one bit per direction; the most significant of the
	// set's n bits is direction 0.
	Connections uint
	Weight      float64
	Glyph       rune
}

// HasConnection reports whether the piece connects along d in an n-direction
// topology.
func (p Piece) HasConnection(d wfc.Direction, n int) bool {
	return (p.Connections>>(n-int(d)-1))&1 == 1
}

// Empty reports whether the piece has no connections at all.
func (p Piece) Empty() bool { return p.Connections == 0 }

// Set is an ordered collection of pieces for one direction count.
type Set struct {
	name    string
	n       int
	pieces  []Piece
	index   map[wfc.TileID]int
	with    [][]wfc.TileID
	without [][]wfc.TileID
}

// NewSet validates pieces and indexes them by connection per direction.
func NewSet(name string, n int, pieces ...Piece) (*Set, error) {
	if n <= 0 {
		return nil, fmt.Errorf("pieces: %s: direction count must be positive", name)
	}
	if len(pieces) == 0 {
		return nil, fmt.Errorf("pieces: %s: empty set", name)
	}
	s := &Set{
		name:    name,
		n:       n,
		pieces:  append([]Piece(nil), pieces...),
		index:   make(map[wfc.TileID]int, len(pieces)),
		with:    make([][]wfc.TileID, n),
		without: make([][]wfc.TileID, n),
	}
	for i, p := range s.pieces {
		if p.Connections>>n != 0 {
			return nil, fmt.Errorf("pieces: %s: piece %d mask %b exceeds %d directions", name, p.ID, p.Connections, n)
		}
		if _, dup := s.index[p.ID]; dup {
			return nil, fmt.Errorf("pieces: %s: %w: %d", name, wfc.ErrDuplicateTile, p.ID)
		}
		s.index[p.ID] = i
		for d := 0; d < n; d++ {
			if p.HasConnection(wfc.Direction(d), n) {
				s.with[d] = append(s.with[d], p.ID)
			} else {
				s.without[d] = append(s.without[d], p.ID)
			}
		}
	}
	return s, nil
}

// Name identifies the set in flags and logs.
func (s *Set) Name() string { return s.name }

// Directions is the direction count the masks are written for.
func (s *Set) Directions() int { return s.n }

// Len reports the number of pieces.
func (s *Set) Len() int { return len(s.pieces) }

// Pieces returns the pieces in order.
func (s *Set) Pieces() []Piece { return append([]Piece(nil), s.pieces...) }

// Get returns the piece with id.
func (s *Set) Get(id wfc.TileID) (Piece, bool) {
	i, ok := s.index[id]
	if !ok {
		return Piece{}, false
	}
	return s.pieces[i], true
}

// Glyph returns the display rune of id, or '?' if unknown.
func (s *Set) Glyph(id wfc.TileID) rune {
	p, ok := s.Get(id)
	if !ok || p.Glyph == 0 {
		return '?'
	}
	return p.Glyph
}

// Placeholder glyphs for cells that have not collapsed.
const (
	GlyphOpen         = '·'
	GlyphContradicted = '!'
)

// CellGlyph renders a cell in the middle of a solve.
func (s *Set) CellGlyph(c *wfc.Cell) rune {
	if id, ok := c.Committed(); ok {
		return s.Glyph(id)
	}
	if c.State() == wfc.CellContradicted {
		return GlyphContradicted
	}
	return GlyphOpen
}

// With lists the pieces that connect along d.
func (s *Set) With(d wfc.Direction) []wfc.TileID { return s.with[d] }

// Without lists the pieces that do not connect along d.
func (s *Set) Without(d wfc.Direction) []wfc.TileID { return s.without[d] }

// Connected lists the pieces with at least one connection.
func (s *Set) Connected() []wfc.TileID {
	var out []wfc.TileID
	for _, p := range s.pieces {
		if !p.Empty() {
			out = append(out, p.ID)
		}
	}
	return out
}

// Catalog returns the pieces as solver tiles.
func (s *Set) Catalog() (*wfc.Catalog, error) {
	tiles := make([]wfc.Tile, len(s.pieces))
	for i, p := range s.pieces {
		tiles[i] = wfc.NewTile(p.ID, p.Weight)
	}
	return wfc.NewCatalog(tiles...)
}

var errTopology = errors.New("pieces: topology does not match the set")

// Adjacency makes two pieces compatible along d when the first connects
// along d exactly when the second connects along the opposite direction.
func (s *Set) Adjacency(topo wfc.Topology) (*wfc.Adjacency, error) {
	if topo.NumDirections() != s.n {
		return nil, fmt.Errorf("%w: %s has %d directions, topology %d", errTopology, s.name, s.n, topo.NumDirections())
	}
	b := wfc.NewAdjacencyBuilder(topo)
	for _, p := range s.pieces {
		for d := 0; d < s.n; d++ {
			dir := wfc.Direction(d)
			od := topo.Opposite(dir)
			match := s.without[od]
			if p.HasConnection(dir, s.n) {
				match = s.with[od]
			}
			for _, other := range match {
				b.AddCompatible(p.ID, other, dir)
			}
		}
	}
	return b.Build()
}
