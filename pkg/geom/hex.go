package geom

import (
	"fmt"
	"math"

	"hexweave/pkg/wfc"
)

// Cube is a hex position in cube coordinates. Q+R+S is always 0.
type Cube struct{ Q, R, S int }

// NewCube derives S from q and r.
func NewCube(q, r int) Cube { return Cube{q, r, -q - r} }

func (c Cube) String() string { return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S) }

// Add returns c shifted by v.
func (c Cube) Add(v Cube) Cube { return Cube{c.Q + v.Q, c.R + v.R, c.S + v.S} }

// Scale multiplies every component by k.
func (c Cube) Scale(k int) Cube { return Cube{c.Q * k, c.R * k, c.S * k} }

// Distance is the hex step distance between a and b.
func Distance(a, b Cube) int {
	return max(abs(a.Q-b.Q), abs(a.R-b.R), abs(a.S-b.S))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// HexDirections are the six neighbor offsets; direction d+3 is opposite d.
var HexDirections = [6]Cube{
	{1, 0, -1},
	{0, 1, -1},
	{-1, 1, 0},
	{-1, 0, 1},
	{0, -1, 1},
	{1, -1, 0},
}

// HexNeighbor returns the position next to c along d.
func HexNeighbor(c Cube, d wfc.Direction) Cube { return c.Add(HexDirections[d]) }

// Ring returns the positions at exactly distance r from center, starting at
// center + dir4·r and walking directions 0 through 5. A radius of 0 yields
// nothing.
func Ring(center Cube, r int) []Cube {
	if r <= 0 {
		return nil
	}
	out := make([]Cube, 0, 6*r)
	c := center.Add(HexDirections[4].Scale(r))
	for d := 0; d < 6; d++ {
		for i := 0; i < r; i++ {
			out = append(out, c)
			c = c.Add(HexDirections[d])
		}
	}
	return out
}

// Spiral returns center followed by rings 1 through r.
func Spiral(center Cube, r int) []Cube {
	out := make([]Cube, 0, 1+3*r*(r+1))
	out = append(out, center)
	for k := 1; k <= r; k++ {
		out = append(out, Ring(center, k)...)
	}
	return out
}

// HexRegion is the hexagon of the given radius around Center.
type HexRegion struct {
	Center Cube
	Radius int
}

// NumDirections implements wfc.Topology.
func (h HexRegion) NumDirections() int { return 6 }

// Opposite implements wfc.Topology.
func (h HexRegion) Opposite(d wfc.Direction) wfc.Direction { return (d + 3) % 6 }

// Contains reports whether c lies inside the region.
func (h HexRegion) Contains(c Cube) bool { return Distance(h.Center, c) <= h.Radius }

// Len reports the number of cells.
func (h HexRegion) Len() int { return 1 + 3*h.Radius*(h.Radius+1) }

// Positions lists the region in spiral order.
func (h HexRegion) Positions() []Cube { return Spiral(h.Center, h.Radius) }

// Neighbor implements wfc.Space.
func (h HexRegion) Neighbor(c Cube, d wfc.Direction) (Cube, bool) {
	if d < 0 || d >= 6 {
		return Cube{}, false
	}
	n := HexNeighbor(c, d)
	return n, h.Contains(n)
}

var sqrt3 = math.Sqrt(3)

// ToOrtho converts c to pointy-top cartesian coordinates with unit hex size.
func ToOrtho(c Cube) (x, y float64) {
	return sqrt3 * (float64(c.Q) + float64(c.R)/2), 1.5 * float64(c.R)
}

// FromOrtho converts cartesian coordinates back to the nearest hex.
func FromOrtho(x, y float64) Cube {
	r := y / 1.5
	q := x/sqrt3 - r/2
	return Round(q, r, -q-r)
}

// Round snaps fractional cube coordinates to the nearest hex, fixing the
// component with the largest rounding error so that Q+R+S stays 0.
func Round(q, r, s float64) Cube {
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	default:
		rs = -rq - rr
	}
	return Cube{int(rq), int(rr), int(rs)}
}
