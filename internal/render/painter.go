//go:build ebiten

package render

import (
	"image/color"

	"hexweave/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GridPainter uploads a palette-indexed display buffer into a single RGBA
// image and draws pipe strokes on top.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a buffer of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the provided cells into the painter image and draws it scaled.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Strokes draws segments given in buffer coordinates.
func (gp *GridPainter) Strokes(dst *ebiten.Image, segs []core.Segment, scale int, clr color.Color) {
	s := float32(scale)
	width := max(1, s/4)
	for _, seg := range segs {
		vector.StrokeLine(dst, seg.X0*s, seg.Y0*s, seg.X1*s, seg.Y1*s, width, clr, true)
	}
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
