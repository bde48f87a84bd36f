package render

import "image/color"

// fillPaletteRGBA expands display values into RGBA bytes. Values past the
// end of the palette take its last entry; an empty palette clears the buffer.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	last := len(palette) - 1
	for i, v := range cells {
		col := palette[min(int(v), last)]
		px := buf[4*i : 4*i+4 : 4*i+4]
		px[0], px[1], px[2], px[3] = col.R, col.G, col.B, col.A
	}
}
