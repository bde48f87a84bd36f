//go:build ebiten

package app

import (
	"image/color"
	"time"

	"hexweave/internal/core"
	"hexweave/internal/render"
	"hexweave/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core generator to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep
	palette []color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided generator.
func New(sim core.Sim, scale int, seed int64, tps int, hudWidth int) *Game {
	if scale <= 0 {
		scale = 1
	}
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	g := &Game{
		sim:     sim,
		painter: gp,
		overlay: ui.NewOverlay(sim, gp, scale),
		hud:     ui.NewHUD(sim, hudWidth),
		timer:   core.NewFixedStep(tps),
		scale:   scale,
		seed:    seed,
	}
	if provider, ok := sim.(core.PaletteProvider); ok {
		g.palette = provider.Palette()
	}
	return g
}

// Reset restarts the generator with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the generator.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.sim.Size().W * g.scale)
	// Parameter changes rebuild the palette.
	if provider, ok := g.sim.(core.PaletteProvider); ok {
		g.palette = provider.Palette()
	}

	if g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
		return nil
	}
	due := g.timer.Due()
	if g.paused {
		return nil
	}
	for i := 0; i < due; i++ {
		g.sim.Step()
	}
	return nil
}

// Draw renders the current generator state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
