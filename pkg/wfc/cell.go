package wfc

import (
	"fmt"
	"math"
)

// CellState is the lifecycle state of a cell.
type CellState uint8

const (
	// CellOpen cells still have a choice to make.
	CellOpen CellState = iota
	// CellCollapsed cells have a committed tile.
	CellCollapsed
	// CellContradicted cells ran out of allowed tiles before collapsing.
	CellContradicted
)

func (s CellState) String() string {
	switch s {
	case CellOpen:
		return "open"
	case CellCollapsed:
		return "collapsed"
	case CellContradicted:
		return "contradicted"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// Cell is the mutable per-position state of a solve. Tiles are tracked by
// catalog index and resolved through the shared catalog.
type Cell struct {
	catalog *Catalog
	dirs    int

	allowed   []bool
	remaining int

	weightSum          float64
	weightLogWeightSum float64
	entropyNoise       float64

	// enablers[tile*dirs+d] counts the tiles still possible at the neighbor
	// along d that permit tile here.
	enablers []int

	committed int
	version   uint32
}

// NewCell returns a cell with every catalog tile allowed. enablers holds the
// initial count for each (tile, direction) pair, laid out tile-major; it is
// copied.
func NewCell(catalog *Catalog, dirs int, enablers []int, noise float64) *Cell {
	c := &Cell{
		catalog:            catalog,
		dirs:               dirs,
		allowed:            make([]bool, catalog.Len()),
		remaining:          catalog.Len(),
		weightSum:          catalog.WeightSum(),
		weightLogWeightSum: catalog.WeightLogWeightSum(),
		entropyNoise:       noise,
		enablers:           make([]int, catalog.Len()*dirs),
		committed:          -1,
	}
	for i := range c.allowed {
		c.allowed[i] = true
	}
	copy(c.enablers, enablers)
	if c.remaining == 0 {
		c.weightSum, c.weightLogWeightSum = 0, 0
	}
	return c
}

// State reports where the cell is in its lifecycle.
func (c *Cell) State() CellState {
	switch {
	case c.committed >= 0:
		return CellCollapsed
	case c.remaining == 0:
		return CellContradicted
	default:
		return CellOpen
	}
}

// Entropy returns the Shannon entropy of the allowed tile weights plus the
// cell's tie-break noise. A cell with one tile left has exactly the noise as
// entropy. The result is NaN for a contradicted cell.
func (c *Cell) Entropy() float64 {
	switch {
	case c.remaining == 0:
		return math.NaN()
	case c.remaining == 1:
		return c.entropyNoise
	}
	return math.Log2(c.weightSum) - c.weightLogWeightSum/c.weightSum + c.entropyNoise
}

// EntropyNoise is the tie-break offset drawn when the cell was created.
func (c *Cell) EntropyNoise() float64 { return c.entropyNoise }

// WeightSum is the running sum of allowed tile weights.
func (c *Cell) WeightSum() float64 { return c.weightSum }

// WeightLogWeightSum is the running sum of weight·log2(weight) over allowed tiles.
func (c *Cell) WeightLogWeightSum() float64 { return c.weightLogWeightSum }

// AllowedCount reports how many tiles remain allowed.
func (c *Cell) AllowedCount() int { return c.remaining }

// Allowed lists the allowed tiles in enumeration order.
func (c *Cell) Allowed() []TileID {
	out := make([]TileID, 0, c.remaining)
	for i, ok := range c.allowed {
		if ok {
			out = append(out, c.catalog.At(i).ID)
		}
	}
	return out
}

// IsAllowed reports whether id is still allowed.
func (c *Cell) IsAllowed(id TileID) bool {
	i, ok := c.catalog.Index(id)
	return ok && c.allowed[i]
}

// Committed returns the collapsed tile, if any.
func (c *Cell) Committed() (TileID, bool) {
	if c.committed < 0 {
		return 0, false
	}
	return c.catalog.At(c.committed).ID, true
}

// ChooseTile maps sample in [0,1) onto the allowed tiles by cumulative
// weight, walking them in enumeration order.
func (c *Cell) ChooseTile(sample float64) (TileID, error) {
	i := c.chooseIndex(sample)
	if i < 0 {
		return 0, ErrContradiction
	}
	return c.catalog.At(i).ID, nil
}

func (c *Cell) chooseIndex(sample float64) int {
	r := sample * c.weightSum
	last := -1
	for i, ok := range c.allowed {
		if !ok {
			continue
		}
		last = i
		w := c.catalog.At(i).Weight
		if r < w {
			return i
		}
		r -= w
	}
	// Rounding can leave a sliver past the final weight.
	return last
}

// Collapse commits the cell to id and returns the other allowed tiles in
// enumeration order. The returned tiles are still allowed; the caller
// disallows them.
func (c *Cell) Collapse(id TileID) ([]TileID, error) {
	i, ok := c.catalog.Index(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTile, id)
	}
	idx, err := c.collapseIndex(i)
	if err != nil {
		return nil, err
	}
	out := make([]TileID, len(idx))
	for k, j := range idx {
		out[k] = c.catalog.At(j).ID
	}
	return out, nil
}

func (c *Cell) collapseIndex(i int) ([]int, error) {
	if c.committed >= 0 {
		return nil, ErrAlreadyCollapsed
	}
	if !c.allowed[i] {
		return nil, fmt.Errorf("%w: %d", ErrTileNotAllowed, c.catalog.At(i).ID)
	}
	c.committed = i
	excluded := make([]int, 0, c.remaining-1)
	for j, ok := range c.allowed {
		if ok && j != i {
			excluded = append(excluded, j)
		}
	}
	return excluded, nil
}

// Disallow removes id from the allowed set and updates both aggregates.
func (c *Cell) Disallow(id TileID) error {
	i, ok := c.catalog.Index(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTile, id)
	}
	return c.disallowIndex(i)
}

func (c *Cell) disallowIndex(i int) error {
	if !c.allowed[i] {
		return fmt.Errorf("%w: %d", ErrTileNotAllowed, c.catalog.At(i).ID)
	}
	t := c.catalog.At(i)
	c.allowed[i] = false
	c.remaining--
	c.weightSum -= t.Weight
	c.weightLogWeightSum -= t.weightLogWeight
	if c.remaining == 0 {
		c.weightSum, c.weightLogWeightSum = 0, 0
	}
	c.version++
	return nil
}

// Enablers exposes the live enabler counts of id, one per direction.
func (c *Cell) Enablers(id TileID) (Counter, error) {
	i, ok := c.catalog.Index(id)
	if !ok {
		return Counter{}, fmt.Errorf("%w: %d", ErrUnknownTile, id)
	}
	return c.counter(i), nil
}

func (c *Cell) counter(i int) Counter {
	return Counter{counts: c.enablers[i*c.dirs : (i+1)*c.dirs]}
}

// Counter is a view over one tile's per-direction enabler counts.
type Counter struct {
	counts []int
}

// Len reports the number of directions.
func (k Counter) Len() int { return len(k.counts) }

// Get returns the count along d.
func (k Counter) Get(d Direction) int { return k.counts[d] }

// Decrement lowers the count along d and returns what is left.
func (k Counter) Decrement(d Direction) (int, error) {
	if k.counts[d] == 0 {
		return 0, fmt.Errorf("%w: direction %d", ErrAlreadyZero, d)
	}
	k.counts[d]--
	return k.counts[d], nil
}
