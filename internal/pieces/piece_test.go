package pieces

import (
	"slices"
	"testing"

	"hexweave/pkg/core"
	"hexweave/pkg/geom"
	"hexweave/pkg/wfc"
)

func TestHasConnectionMostSignificantFirst(t *testing.T) {
	p := Piece{ID: 0, Connections: 0b100101, Weight: 1}
	want := []bool{true, false, false, true, false, true}
	for d, w := range want {
		if got := p.HasConnection(wfc.Direction(d), 6); got != w {
			t.Fatalf("direction %d: got %v, want %v", d, got, w)
		}
	}
}

func TestNewSetValidation(t *testing.T) {
	if _, err := NewSet("bad", 4, Piece{ID: 0, Connections: 0b10000, Weight: 1}); err == nil {
		t.Fatal("mask wider than the direction count accepted")
	}
	if _, err := NewSet("dup", 4, Piece{ID: 1, Weight: 1}, Piece{ID: 1, Weight: 1}); err == nil {
		t.Fatal("duplicate id accepted")
	}
	if _, err := NewSet("none", 4); err == nil {
		t.Fatal("empty set accepted")
	}
}

func TestBuiltinSetsAreSymmetric(t *testing.T) {
	topos := map[string]wfc.Topology{
		"square": geom.NewGrid(1, 1, geom.Four),
		"octo":   geom.NewGrid(1, 1, geom.Eight),
		"hex":    geom.HexRegion{},
	}
	for _, name := range Names() {
		s, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		adj, err := s.Adjacency(topos[name])
		if err != nil {
			t.Fatalf("%s adjacency: %v", name, err)
		}
		if err := adj.CheckSymmetry(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, err := s.Catalog(); err != nil {
			t.Fatalf("%s catalog: %v", name, err)
		}
	}
	if _, err := ByName("triangle"); err == nil {
		t.Fatal("unknown set accepted")
	}
}

func TestBuiltinGlyphsAreDistinct(t *testing.T) {
	for _, name := range Names() {
		s, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		seen := map[rune]uint{}
		for _, p := range s.Pieces() {
			if p.Glyph == GlyphContradicted {
				t.Fatalf("%s: piece %b renders as the contradiction glyph", name, p.Connections)
			}
			if prev, ok := seen[p.Glyph]; ok {
				t.Fatalf("%s: pieces %b and %b share glyph %c", name, prev, p.Connections, p.Glyph)
			}
			seen[p.Glyph] = p.Connections
		}
	}
}

func TestAdjacencyRejectsWrongTopology(t *testing.T) {
	if _, err := HexPipes().Adjacency(geom.NewGrid(2, 2, geom.Four)); err == nil {
		t.Fatal("hex set accepted a square topology")
	}
}

func TestSquareAdjacencyAgreesOnEdges(t *testing.T) {
	s := SquarePipes()
	adj, err := s.Adjacency(geom.NewGrid(1, 1, geom.Four))
	if err != nil {
		t.Fatalf("Adjacency: %v", err)
	}
	horizontal, _ := s.Get(2) // '─'
	for _, id := range adj.Compatible(horizontal.ID, geom.East) {
		p, _ := s.Get(id)
		if !p.HasConnection(geom.West, 4) {
			t.Fatalf("%c placed east of ─ without a west connection", p.Glyph)
		}
	}
	if got, want := len(adj.Compatible(horizontal.ID, geom.East)), len(s.With(geom.West)); got != want {
		t.Fatalf("east of ─ allows %d pieces, want %d", got, want)
	}
}

func TestBorderConstraint(t *testing.T) {
	s := SquarePipes()
	g := geom.NewGrid(3, 3, geom.Four)
	ex := BorderConstraint[geom.Point](s)(g)
	byPos := map[geom.Point][]wfc.TileID{}
	for _, e := range ex {
		byPos[e.Position] = e.Tiles
	}
	if _, ok := byPos[geom.Point{X: 1, Y: 1}]; ok {
		t.Fatal("interior cell should not be constrained")
	}
	corner := byPos[geom.Point{X: 0, Y: 0}]
	for _, id := range s.With(geom.North) {
		if !slices.Contains(corner, id) {
			t.Fatalf("corner keeps north-connected piece %d", id)
		}
	}
	if slices.Contains(corner, 4) { // '┌' only points inward
		t.Fatal("corner excluded an inward piece")
	}
}

func TestVoidConstraintThresholds(t *testing.T) {
	s := SquarePipes()
	g := geom.NewGrid(4, 4, geom.Four)
	coords := func(p geom.Point) (float64, float64) { return float64(p.X), float64(p.Y) }

	none := VoidConstraint(s, coords, VoidConfig{Seed: 1, Scale: 0.3, Threshold: 0})(g)
	if len(none) != 0 {
		t.Fatalf("threshold 0 carved %d voids", len(none))
	}
	all := VoidConstraint(s, coords, VoidConfig{Seed: 1, Scale: 0.3, Threshold: 1.01})(g)
	if len(all) != g.Len() {
		t.Fatalf("threshold above 1 carved %d of %d cells", len(all), g.Len())
	}
	if !slices.Equal(all[0].Tiles, s.Connected()) {
		t.Fatal("void should exclude exactly the connected pieces")
	}
}

func TestSquarePipesSolveSealed(t *testing.T) {
	s := SquarePipes()
	g := geom.NewGrid(8, 6, geom.Four)
	cat, err := s.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	adj, err := s.Adjacency(g)
	if err != nil {
		t.Fatalf("Adjacency: %v", err)
	}
	c, err := wfc.New(wfc.Options[geom.Point]{
		Space:       g,
		Catalog:     cat,
		Rules:       adj,
		Noise:       core.NewRNG(9).Noise(),
		Constraints: []wfc.Constraint[geom.Point]{BorderConstraint[geom.Point](s)},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, p := range g.Positions() {
		here, _ := s.Get(res.Tiles[p])
		for d := wfc.Direction(0); d < 4; d++ {
			q, ok := g.Neighbor(p, d)
			if !ok {
				if here.HasConnection(d, 4) {
					t.Fatalf("%v connects off the grid", p)
				}
				continue
			}
			there, _ := s.Get(res.Tiles[q])
			if here.HasConnection(d, 4) != there.HasConnection(g.Opposite(d), 4) {
				t.Fatalf("%v and %v disagree", p, q)
			}
		}
	}
}

func TestCellGlyph(t *testing.T) {
	s := SquarePipes()
	g := geom.NewGrid(3, 3, geom.Four)
	cat, _ := s.Catalog()
	adj, _ := s.Adjacency(g)
	c, err := wfc.New(wfc.Options[geom.Point]{Space: g, Catalog: cat, Rules: adj, Noise: core.NewRNG(4).Noise()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.CellGlyph(c.CellAt(0)); got != GlyphOpen {
		t.Fatalf("open cell glyph %q", got)
	}
	res, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, p := range c.Positions() {
		if got, want := s.CellGlyph(c.CellAt(i)), s.Glyph(res.Tiles[p]); got != want {
			t.Fatalf("%v: glyph %q, want %q", p, got, want)
		}
	}
}
