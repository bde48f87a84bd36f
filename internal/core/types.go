package core

import (
	"image/color"
	"sort"
)

// Size describes the dimensions of a generator's display buffer.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a stepwise generator must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// PaletteProvider maps display buffer values to colors.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// Segment is a stroke in display-buffer coordinates.
type Segment struct {
	X0, Y0 float32
	X1, Y1 float32
}

// SegmentProvider exposes pipe strokes for collapsed cells.
type SegmentProvider interface {
	Segments() []Segment
}

// TextProvider renders the generator state as plain text for terminals.
type TextProvider interface {
	Text() string
}

// Status summarizes generator progress for overlays and logs.
type Status struct {
	Attempt   int
	Seed      int64
	Collapsed int
	Total     int
	Done      bool
	Failed    bool
	Err       string
}

// StatusProvider exposes progress.
type StatusProvider interface {
	Status() Status
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a generator factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available generator factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists the registered generators in sorted order.
func Names() []string {
	out := make([]string, 0, len(sims))
	for name := range sims {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
