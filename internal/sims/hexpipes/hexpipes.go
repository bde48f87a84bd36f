package hexpipes

import (
	"image/color"
	"log/slog"
	"math"

	"hexweave/internal/attempt"
	"hexweave/internal/core"
	"hexweave/internal/render"
	"hexweave/pkg/geom"
	"hexweave/pkg/wfc"
)

// World steps a hex pipe solve and rasterizes it into a pixel buffer.
type World struct {
	cfg  Config
	prob *Problem
	err  error

	session *attempt.Session[geom.Cube]
	display *core.ByteGrid
	palette []color.RGBA
	maxE    float64
	seed    int64

	positions []geom.Cube
	// pixelCell maps each raster pixel to a cell index, or -1 outside.
	pixelCell []int
	originX   float64
	originY   float64
}

// New returns a generator for a region of the given radius using defaults.
func New(radius int) *World {
	cfg := DefaultConfig()
	cfg.Radius = radius
	return NewWithConfig(cfg)
}

// NewWithConfig returns a generator configured from the provided options.
func NewWithConfig(cfg Config) *World {
	w := &World{seed: cfg.Seed}
	w.configure(cfg)
	return w
}

func (w *World) configure(cfg Config) {
	if cfg.PixelsPerUnit <= 0 {
		cfg.PixelsPerUnit = 1
	}
	w.cfg = cfg
	ppu := float64(cfg.PixelsPerUnit)
	w.originX = math.Sqrt(3) * (float64(cfg.Radius) + 0.5)
	w.originY = 1.5*float64(cfg.Radius) + 1
	pw := int(math.Ceil(2 * w.originX * ppu))
	ph := int(math.Ceil(2 * w.originY * ppu))
	w.display = core.NewByteGrid(pw, ph)

	w.prob, w.err = NewProblem(cfg)
	if w.err != nil {
		slog.Error("hexpipes: invalid configuration", slog.Any("err", w.err))
		return
	}
	w.session = attempt.NewSession(attempt.Config{MaxAttempts: cfg.MaxAttempts}, w.prob.Build)
	w.maxE = render.MaxEntropy(w.prob.Catalog)
	var empty []int
	for i, p := range w.prob.Set.Pieces() {
		if p.Empty() {
			empty = append(empty, i)
		}
	}
	w.palette = render.TilePalette(w.prob.Set.Len(), empty)
	w.rasterize()
}

// rasterize assigns every pixel to the hex its center falls in.
func (w *World) rasterize() {
	w.positions = w.prob.Region.Positions()
	index := make(map[geom.Cube]int, len(w.positions))
	for i, c := range w.positions {
		index[c] = i
	}
	ppu := float64(w.cfg.PixelsPerUnit)
	w.pixelCell = make([]int, w.display.W*w.display.H)
	for y := 0; y < w.display.H; y++ {
		for x := 0; x < w.display.W; x++ {
			ox := (float64(x)+0.5)/ppu - w.originX
			oy := (float64(y)+0.5)/ppu - w.originY
			i, ok := index[geom.FromOrtho(ox, oy)]
			if !ok {
				i = -1
			}
			w.pixelCell[w.display.Index(x, y)] = i
		}
	}
}

// Name returns the generator identifier.
func (w *World) Name() string { return "hexpipes" }

// Size reports the raster dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.display.W, H: w.display.H} }

// Cells exposes the current raster.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Palette exposes the color palette for the raster.
func (w *World) Palette() []color.RGBA { return w.palette }

// Problem exposes the compiled inputs of the solve.
func (w *World) Problem() *Problem { return w.prob }

// CellAtPixel returns the cell index under pixel (x, y), or -1.
func (w *World) CellAtPixel(x, y int) int {
	if x < 0 || y < 0 || x >= w.display.W || y >= w.display.H || w.pixelCell == nil {
		return -1
	}
	return w.pixelCell[w.display.Index(x, y)]
}

// Reset starts a new solve. A zero seed falls back to the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.seed = seed
	if w.session == nil {
		w.display.Fill(render.ValueContradiction)
		return
	}
	_ = w.session.Reset(seed)
	w.refresh()
}

// Step collapses one cell.
func (w *World) Step() {
	if w.session == nil || w.session.Done() || w.session.Failed() != nil {
		return
	}
	_, _ = w.session.Step()
	w.refresh()
}

func (w *World) refresh() {
	c := w.session.Collapser()
	if c == nil {
		w.display.Fill(render.ValueContradiction)
		return
	}
	failed := w.session.Failed() != nil
	values := make([]uint8, c.Len())
	for i := range values {
		v := render.CellValue(c.CellAt(i), w.prob.Catalog, w.maxE)
		if failed && v < render.ValueTileBase {
			v = render.ValueContradiction
		}
		values[i] = v
	}
	cells := w.display.Cells()
	for px, i := range w.pixelCell {
		if i < 0 {
			cells[px] = render.ValueBackground
			continue
		}
		cells[px] = values[i]
	}
}

// Segments returns pipe strokes in raster coordinates.
func (w *World) Segments() []core.Segment {
	if w.session == nil || w.session.Collapser() == nil {
		return nil
	}
	c := w.session.Collapser()
	ppu := float64(w.cfg.PixelsPerUnit)
	var out []core.Segment
	for i, pos := range w.positions {
		id, ok := c.CellAt(i).Committed()
		if !ok {
			continue
		}
		piece, _ := w.prob.Set.Get(id)
		x, y := geom.ToOrtho(pos)
		cx, cy := (x+w.originX)*ppu, (y+w.originY)*ppu
		for d := wfc.Direction(0); d < 6; d++ {
			if !piece.HasConnection(d, 6) {
				continue
			}
			dx, dy := geom.ToOrtho(geom.HexDirections[d])
			out = append(out, core.Segment{
				X0: float32(cx), Y0: float32(cy),
				X1: float32(cx + dx*ppu/2), Y1: float32(cy + dy*ppu/2),
			})
		}
	}
	return out
}

// Text renders the running solve as interleaved hex rows.
func (w *World) Text() string {
	if w.session == nil || w.session.Collapser() == nil {
		return ""
	}
	c := w.session.Collapser()
	return render.HexASCII(w.prob.Region, func(pos geom.Cube) rune {
		cell, ok := c.Cell(pos)
		if !ok {
			return ' '
		}
		return w.prob.Set.CellGlyph(cell)
	})
}

// Status reports the progress of the running solve.
func (w *World) Status() core.Status {
	st := core.Status{Total: len(w.positions)}
	if w.err != nil {
		st.Failed, st.Err = true, w.err.Error()
		return st
	}
	if w.session == nil || w.session.Collapser() == nil {
		return st
	}
	st.Attempt = w.session.Attempt()
	st.Seed = w.session.Seed()
	st.Collapsed = len(w.session.Collapser().HistoryIndex())
	st.Done = w.session.Done()
	if err := w.session.Failed(); err != nil {
		st.Failed, st.Err = true, err.Error()
	}
	return st
}

// CommitOrder lists spiral indices in the order their cells collapsed.
func (w *World) CommitOrder() []int {
	if w.session == nil || w.session.Collapser() == nil {
		return nil
	}
	return w.session.Collapser().HistoryIndex()
}

// SetIntParameter updates an integer parameter and restarts the solve.
func (w *World) SetIntParameter(key string, value int) bool {
	cfg := w.cfg
	switch key {
	case "attempts":
		if value < 1 {
			return false
		}
		cfg.MaxAttempts = value
	default:
		return false
	}
	w.configure(cfg)
	w.Reset(w.seed)
	return true
}

// SetFloatParameter updates a floating-point parameter and restarts the solve.
func (w *World) SetFloatParameter(key string, value float64) bool {
	cfg := w.cfg
	switch key {
	case "voids":
		if value < 0 || value > 1 {
			return false
		}
		cfg.Voids = value
	case "void_scale":
		if value <= 0 {
			return false
		}
		cfg.VoidScale = value
	case "noise":
		if value <= 0 {
			return false
		}
		cfg.Noise = value
	default:
		return false
	}
	w.configure(cfg)
	w.Reset(w.seed)
	return true
}

func init() {
	core.Register("hexpipes", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
