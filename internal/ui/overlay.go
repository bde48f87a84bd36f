//go:build ebiten

package ui

import (
	"image/color"

	"hexweave/internal/core"
	"hexweave/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional visuals on top of the generator view.
type Overlay struct {
	sim     core.Sim
	painter *render.GridPainter
	scale   int

	showPipes  bool
	showStatus bool

	pipeColor color.Color
}

// NewOverlay constructs a new overlay with pipe strokes and status text on.
func NewOverlay(sim core.Sim, painter *render.GridPainter, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{
		sim:        sim,
		painter:    painter,
		scale:      scale,
		showPipes:  true,
		showStatus: true,
		pipeColor:  color.RGBA{R: 235, G: 235, B: 245, A: 255},
	}
}

// Update toggles layers: 1 for pipe strokes, 2 for the status line.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showPipes = !o.showPipes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showStatus = !o.showStatus
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showPipes && o.painter != nil {
		if provider, ok := o.sim.(core.SegmentProvider); ok {
			o.painter.Strokes(screen, provider.Segments(), o.scale, o.pipeColor)
		}
	}
	if o.showStatus {
		if provider, ok := o.sim.(core.StatusProvider); ok {
			ebitenutil.DebugPrint(screen, StatusLine(provider.Status()))
		}
	}
}
