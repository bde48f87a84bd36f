package wfc

import (
	"fmt"
	"math"
)

// TileID identifies a tile across the catalog, adjacency rules and cells.
type TileID int

// Tile is an immutable tile identity with its relative frequency.
type Tile struct {
	ID     TileID
	Weight float64

	weightLogWeight float64
}

// NewTile returns a tile with its weight·log2(weight) term cached.
func NewTile(id TileID, weight float64) Tile {
	return Tile{ID: id, Weight: weight, weightLogWeight: weight * math.Log2(weight)}
}

// WeightLogWeight returns weight·log2(weight).
func (t Tile) WeightLogWeight() float64 { return t.weightLogWeight }

func (t Tile) String() string { return fmt.Sprintf("tile %d", t.ID) }

// Catalog is the read-only registry of tiles shared by every cell of a solve.
type Catalog struct {
	tiles []Tile
	index map[TileID]int

	weightSum          float64
	weightLogWeightSum float64
}

// NewCatalog validates tiles and computes the aggregate weight statistics.
// The order of tiles is kept and becomes the enumeration order of every cell.
func NewCatalog(tiles ...Tile) (*Catalog, error) {
	c := &Catalog{
		tiles: make([]Tile, 0, len(tiles)),
		index: make(map[TileID]int, len(tiles)),
	}
	for _, t := range tiles {
		if !(t.Weight > 0) || math.IsInf(t.Weight, 0) {
			return nil, fmt.Errorf("%w: tile %d has weight %v", ErrInvalidWeight, t.ID, t.Weight)
		}
		if _, dup := c.index[t.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTile, t.ID)
		}
		t = NewTile(t.ID, t.Weight)
		c.index[t.ID] = len(c.tiles)
		c.tiles = append(c.tiles, t)
		c.weightSum += t.Weight
		c.weightLogWeightSum += t.weightLogWeight
	}
	return c, nil
}

// Get returns the tile registered under id.
func (c *Catalog) Get(id TileID) (Tile, error) {
	i, ok := c.index[id]
	if !ok {
		return Tile{}, fmt.Errorf("%w: %d", ErrUnknownTile, id)
	}
	return c.tiles[i], nil
}

// Len reports the number of tiles.
func (c *Catalog) Len() int { return len(c.tiles) }

// At returns the tile at enumeration index i.
func (c *Catalog) At(i int) Tile { return c.tiles[i] }

// Index returns the enumeration index of id.
func (c *Catalog) Index(id TileID) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Tiles returns a copy of the tiles in enumeration order.
func (c *Catalog) Tiles() []Tile { return append([]Tile(nil), c.tiles...) }

// WeightSum is the sum of all tile weights.
func (c *Catalog) WeightSum() float64 { return c.weightSum }

// WeightLogWeightSum is the sum of weight·log2(weight) over all tiles.
func (c *Catalog) WeightLogWeightSum() float64 { return c.weightLogWeightSum }
