package geom

import (
	"fmt"

	"hexweave/pkg/wfc"
)

// Point is a square-grid cell coordinate.
type Point struct{ X, Y int }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Add returns p shifted by v.
func (p Point) Add(v Point) Point { return Point{p.X + v.X, p.Y + v.Y} }

// Connectivity selects the neighbor set of a Grid.
type Connectivity int

const (
	// Four connects N, E, S, W.
	Four Connectivity = 4
	// Eight adds the diagonals, listed clockwise from the top-left.
	Eight Connectivity = 8
)

var (
	fourSteps  = []Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	eightSteps = []Point{{-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}}
)

// Square directions for Four connectivity.
const (
	North wfc.Direction = iota
	East
	South
	West
)

// ParseConnectivity accepts "4" or "8".
func ParseConnectivity(s string) (Connectivity, error) {
	switch s {
	case "4", "four":
		return Four, nil
	case "8", "eight":
		return Eight, nil
	}
	return 0, fmt.Errorf("geom: unknown connectivity %q", s)
}

// Grid is a W×H square grid in row-major order with optional toroidal wrap.
type Grid struct {
	W, H int
	Conn Connectivity
	Wrap bool
}

// NewGrid returns a bounded grid. Non-positive dimensions are raised to 1 and
// an unknown connectivity falls back to Four.
func NewGrid(w, h int, conn Connectivity) Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if conn != Eight {
		conn = Four
	}
	return Grid{W: w, H: h, Conn: conn}
}

func (g Grid) steps() []Point {
	if g.Conn == Eight {
		return eightSteps
	}
	return fourSteps
}

// NumDirections implements wfc.Topology.
func (g Grid) NumDirections() int { return len(g.steps()) }

// Opposite implements wfc.Topology.
func (g Grid) Opposite(d wfc.Direction) wfc.Direction {
	n := wfc.Direction(g.NumDirections())
	return (d + n/2) % n
}

// Vector returns the offset of direction d.
func (g Grid) Vector(d wfc.Direction) Point { return g.steps()[d] }

// Len reports the number of cells.
func (g Grid) Len() int { return g.W * g.H }

// Index returns the linear slice index for p.
func (g Grid) Index(p Point) int { return p.Y*g.W + p.X }

// At is the inverse of Index.
func (g Grid) At(i int) Point { return Point{i % g.W, i / g.W} }

// Contains reports whether p lies on the grid.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.W && p.Y < g.H
}

// WrapPoint applies toroidal wrapping to p.
func (g Grid) WrapPoint(p Point) Point {
	p.X = (p.X%g.W + g.W) % g.W
	p.Y = (p.Y%g.H + g.H) % g.H
	return p
}

// Positions lists every cell in row-major order.
func (g Grid) Positions() []Point {
	out := make([]Point, 0, g.Len())
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			out = append(out, Point{x, y})
		}
	}
	return out
}

// Neighbor implements wfc.Space.
func (g Grid) Neighbor(p Point, d wfc.Direction) (Point, bool) {
	steps := g.steps()
	if d < 0 || int(d) >= len(steps) {
		return Point{}, false
	}
	q := p.Add(steps[d])
	if g.Wrap {
		return g.WrapPoint(q), true
	}
	return q, g.Contains(q)
}
