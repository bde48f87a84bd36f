package render

import (
	"image/color"
	"strings"
	"testing"

	"hexweave/pkg/geom"
	"hexweave/pkg/wfc"
)

func TestFillPaletteClampsIndex(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {R: 2, A: 255}}
	buf := make([]byte, 8)
	fillPaletteRGBA(buf, []uint8{0, 9}, palette)
	if buf[0] != 1 || buf[4] != 2 {
		t.Fatalf("unexpected pixels %v", buf)
	}
	fillPaletteRGBA(buf, []uint8{0, 1}, nil)
	for _, v := range buf {
		if v != 0 {
			t.Fatal("empty palette should clear the buffer")
		}
	}
}

func TestGridASCIIShape(t *testing.T) {
	out := GridASCII(3, 2, func(x, y int) rune { return rune('a' + x + 3*y) })
	if out != "abc\ndef\n" {
		t.Fatalf("got %q", out)
	}
}

func TestHexASCIIShape(t *testing.T) {
	region := geom.HexRegion{Radius: 2}
	out := HexASCII(region, func(geom.Cube) rune { return 'o' })
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d:\n%s", len(lines), out)
	}
	counts := []int{3, 4, 5, 4, 3}
	total := 0
	for i, line := range lines {
		n := strings.Count(line, "o")
		if n != counts[i] {
			t.Fatalf("row %d has %d cells, want %d", i, n, counts[i])
		}
		total += n
	}
	if total != region.Len() {
		t.Fatalf("drew %d cells, region has %d", total, region.Len())
	}
	if !strings.HasPrefix(lines[0], "  o") || !strings.HasPrefix(lines[2], "o") {
		t.Fatalf("rows not offset:\n%s", out)
	}
}

func TestCellValueEncoding(t *testing.T) {
	cat, err := wfc.NewCatalog(wfc.NewTile(0, 1), wfc.NewTile(1, 1), wfc.NewTile(2, 1), wfc.NewTile(3, 1))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	maxE := MaxEntropy(cat)
	if maxE != 2 {
		t.Fatalf("max entropy = %v", maxE)
	}
	c := wfc.NewCell(cat, 1, make([]int, 4), 0.01)
	if v := CellValue(c, cat, maxE); v != ValueOpenMax {
		t.Fatalf("fresh cell value = %d", v)
	}
	if err := c.Disallow(0); err != nil {
		t.Fatalf("Disallow: %v", err)
	}
	if v := CellValue(c, cat, maxE); v <= ValueOpenMin || v >= ValueOpenMax {
		t.Fatalf("partially reduced cell value = %d", v)
	}
	if _, err := c.Collapse(2); err != nil {
		t.Fatalf("Collapse: %v", err)
	}
	if v := CellValue(c, cat, maxE); v != ValueTileBase+2 {
		t.Fatalf("collapsed value = %d", v)
	}
	empty := wfc.NewCell(cat, 1, make([]int, 4), 0)
	for id := wfc.TileID(0); id < 4; id++ {
		_ = empty.Disallow(id)
	}
	if v := CellValue(empty, cat, maxE); v != ValueContradiction {
		t.Fatalf("contradicted value = %d", v)
	}
	p := TilePalette(4, []int{0})
	if len(p) != 256 || p[ValueContradiction].R != 200 || p[ValueTileBase] == p[ValueTileBase+1] {
		t.Fatal("palette layout unexpected")
	}
}
