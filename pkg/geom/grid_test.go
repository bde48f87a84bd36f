package geom

import (
	"slices"
	"testing"

	"hexweave/pkg/wfc"
)

func TestGridOpposites(t *testing.T) {
	for _, conn := range []Connectivity{Four, Eight} {
		g := NewGrid(3, 3, conn)
		for d := 0; d < g.NumDirections(); d++ {
			v := g.Vector(wfc.Direction(d))
			o := g.Vector(g.Opposite(wfc.Direction(d)))
			if v.X != -o.X || v.Y != -o.Y {
				t.Fatalf("%d-conn direction %d: %v is not opposite of %v", conn, d, o, v)
			}
		}
	}
	if NewGrid(2, 2, Four).Opposite(North) != South || NewGrid(2, 2, Four).Opposite(West) != East {
		t.Fatal("four-way opposite mapping wrong")
	}
}

func TestGridEightOrder(t *testing.T) {
	g := NewGrid(3, 3, Eight)
	got := make([]Point, 0, 8)
	for d := 0; d < 8; d++ {
		q, ok := g.Neighbor(Point{1, 1}, wfc.Direction(d))
		if !ok {
			t.Fatalf("center should have all neighbors, missing %d", d)
		}
		got = append(got, q)
	}
	want := []Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}}
	if !slices.Equal(got, want) {
		t.Fatalf("clockwise order = %v", got)
	}
}

func TestGridBoundsAndWrap(t *testing.T) {
	g := NewGrid(4, 3, Four)
	if _, ok := g.Neighbor(Point{0, 0}, North); ok {
		t.Fatal("bounded grid should stop at the edge")
	}
	g.Wrap = true
	q, ok := g.Neighbor(Point{0, 0}, West)
	if !ok || q != (Point{3, 0}) {
		t.Fatalf("wrapped west neighbor = %v, %v", q, ok)
	}
	q, _ = g.Neighbor(Point{2, 2}, South)
	if q != (Point{2, 0}) {
		t.Fatalf("wrapped south neighbor = %v", q)
	}
}

func TestGridPositionsRowMajor(t *testing.T) {
	g := NewGrid(3, 2, Four)
	ps := g.Positions()
	if len(ps) != 6 {
		t.Fatalf("len = %d", len(ps))
	}
	for i, p := range ps {
		if g.Index(p) != i || g.At(i) != p {
			t.Fatalf("index mismatch at %d: %v", i, p)
		}
	}
	if NewGrid(0, -2, 7).Len() != 1 || NewGrid(0, 0, 7).Conn != Four {
		t.Fatal("NewGrid should sanitize input")
	}
}

func TestParseConnectivity(t *testing.T) {
	if c, err := ParseConnectivity("8"); err != nil || c != Eight {
		t.Fatalf("ParseConnectivity(8) = %v, %v", c, err)
	}
	if _, err := ParseConnectivity("6"); err == nil {
		t.Fatal("expected an error for 6")
	}
}
