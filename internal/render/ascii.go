package render

import (
	"strings"

	"hexweave/pkg/geom"
)

// GridASCII draws a w×h grid one rune per cell.
func GridASCII(w, h int, glyph func(x, y int) rune) string {
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.WriteRune(glyph(x, y))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// HexASCII draws a hex region as offset rows, one row per R coordinate, with
// a space between neighbors so that rows interleave.
func HexASCII(region geom.HexRegion, glyph func(c geom.Cube) rune) string {
	var b strings.Builder
	n := region.Radius
	for dr := -n; dr <= n; dr++ {
		b.WriteString(strings.Repeat(" ", abs(dr)))
		first := true
		for dq := max(-n, -dr-n); dq <= min(n, -dr+n); dq++ {
			if !first {
				b.WriteByte(' ')
			}
			first = false
			c := geom.NewCube(region.Center.Q+dq, region.Center.R+dr)
			b.WriteRune(glyph(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
