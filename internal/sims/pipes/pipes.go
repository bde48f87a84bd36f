package pipes

import (
	"image/color"
	"log/slog"

	"hexweave/internal/attempt"
	"hexweave/internal/core"
	"hexweave/internal/render"
	"hexweave/pkg/geom"
	"hexweave/pkg/wfc"
)

// World steps a square pipe solve one collapse at a time.
type World struct {
	cfg  Config
	prob *Problem
	err  error

	session *attempt.Session[geom.Point]
	display *core.ByteGrid
	palette []color.RGBA
	maxE    float64
	seed    int64
}

// New returns a generator with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a generator configured from the provided options.
func NewWithConfig(cfg Config) *World {
	w := &World{seed: cfg.Seed}
	w.configure(cfg)
	return w
}

func (w *World) configure(cfg Config) {
	w.cfg = cfg
	w.display = core.NewByteGrid(cfg.Width, cfg.Height)
	w.prob, w.err = NewProblem(cfg)
	if w.err != nil {
		slog.Error("pipes: invalid configuration", slog.Any("err", w.err))
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
}

// Name returns the generator identifier.
func (w *World) Name() string { return "pipes" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.display.W, H: w.display.H} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Palette exposes the color palette for the display buffer.
func (w *World) Palette() []color.RGBA { return w.palette }

// Problem exposes the compiled inputs of the solve.
func (w *World) Problem() *Problem { return w.prob }

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

// Step collapses one cell. Finished or failed solves are left as they are.
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
	cells := w.display.Cells()
	for i := range cells {
		cells[i] = render.CellValue(c.CellAt(i), w.prob.Catalog, w.maxE)
	}
	if w.session.Failed() != nil {
		for i, v := range cells {
			if v < render.ValueTileBase {
				cells[i] = render.ValueContradiction
			}
		}
	}
}

// Segments returns a stroke from each collapsed cell's center toward every
// direction it connects along.
func (w *World) Segments() []core.Segment {
	if w.session == nil || w.session.Collapser() == nil {
		return nil
	}
	c := w.session.Collapser()
	g := w.prob.Grid
	n := g.NumDirections()
	var out []core.Segment
	for i := 0; i < c.Len(); i++ {
		id, ok := c.CellAt(i).Committed()
		if !ok {
			continue
		}
		piece, _ := w.prob.Set.Get(id)
		p := g.At(i)
		cx, cy := float32(p.X)+0.5, float32(p.Y)+0.5
		for d := 0; d < n; d++ {
			if !piece.HasConnection(wfc.Direction(d), n) {
				continue
			}
			v := g.Vector(wfc.Direction(d))
			out = append(out, core.Segment{X0: cx, Y0: cy, X1: cx + float32(v.X)/2, Y1: cy + float32(v.Y)/2})
		}
	}
	return out
}

// Text renders the running solve one glyph per cell.
func (w *World) Text() string {
	if w.session == nil || w.session.Collapser() == nil {
		return ""
	}
	c := w.session.Collapser()
	g := w.prob.Grid
	return render.GridASCII(g.W, g.H, func(x, y int) rune {
		return w.prob.Set.CellGlyph(c.CellAt(g.Index(geom.Point{X: x, Y: y})))
	})
}

// Status reports the progress of the running solve.
func (w *World) Status() core.Status {
	st := core.Status{Total: w.display.W * w.display.H}
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

// CommitOrder lists display indices in the order their cells collapsed.
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
	case "conn":
		if value != 4 && value != 8 {
			return false
		}
		cfg.Connectivity = value
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
	core.Register("pipes", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
