package render

import (
	"image/color"
	"math"

	"hexweave/pkg/wfc"
)

// Display buffer values shared by the generators.
const (
	ValueBackground    uint8 = 0
	ValueOpenMin       uint8 = 1
	ValueOpenMax       uint8 = 7
	ValueTileBase      uint8 = 8
	ValueContradiction uint8 = 255
)

// MaxEntropy is the entropy of a cell with every catalog tile allowed.
func MaxEntropy(cat *wfc.Catalog) float64 {
	ws := cat.WeightSum()
	if ws <= 0 {
		return 0
	}
	return math.Log2(ws) - cat.WeightLogWeightSum()/ws
}

// CellValue encodes a cell for the display buffer: open cells get a shade
// that darkens as entropy drops, collapsed cells get ValueTileBase plus the
// catalog index of their tile.
func CellValue(c *wfc.Cell, cat *wfc.Catalog, maxEntropy float64) uint8 {
	switch c.State() {
	case wfc.CellContradicted:
		return ValueContradiction
	case wfc.CellCollapsed:
		id, _ := c.Committed()
		i, _ := cat.Index(id)
		v := int(ValueTileBase) + i
		if v >= int(ValueContradiction) {
			v = int(ValueContradiction) - 1
		}
		return uint8(v)
	}
	if maxEntropy <= 0 {
		return ValueOpenMin
	}
	frac := (c.Entropy() - c.EntropyNoise()) / maxEntropy
	span := float64(ValueOpenMax - ValueOpenMin)
	v := int(math.Round(frac*span)) + int(ValueOpenMin)
	return uint8(min(max(v, int(ValueOpenMin)), int(ValueOpenMax)))
}

// TilePalette builds a 256-entry palette for the encoding of CellValue.
// empty lists catalog indices drawn as bare ground rather than pipe tiles.
func TilePalette(tiles int, empty []int) []color.RGBA {
	p := make([]color.RGBA, 256)
	p[ValueBackground] = color.RGBA{A: 255}
	for v := ValueOpenMin; v <= ValueOpenMax; v++ {
		k := uint8(40 + 20*int(v-ValueOpenMin))
		p[v] = color.RGBA{R: k / 2, G: k / 2, B: k, A: 255}
	}
	for i := 0; i < tiles && int(ValueTileBase)+i < int(ValueContradiction); i++ {
		p[int(ValueTileBase)+i] = color.RGBA{R: 28, G: 34, B: 40, A: 255}
	}
	for _, i := range empty {
		if i >= 0 && int(ValueTileBase)+i < int(ValueContradiction) {
			p[int(ValueTileBase)+i] = color.RGBA{R: 14, G: 16, B: 18, A: 255}
		}
	}
	p[ValueContradiction] = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	return p
}
