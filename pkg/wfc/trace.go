package wfc

import (
	"context"
	"log/slog"
)

// Tracer observes solver events. Implementations must not mutate solver state.
type Tracer interface {
	CellCollapsed(position any, tile TileID, step int)
	TileDisallowed(position any, tile TileID, remaining int)
	Contradiction(position any)
}

// NopTracer discards every event.
type NopTracer struct{}

func (NopTracer) CellCollapsed(any, TileID, int)  {}
func (NopTracer) TileDisallowed(any, TileID, int) {}
func (NopTracer) Contradiction(any)               {}

// SlogTracer writes solver events to a structured logger.
type SlogTracer struct {
	logger *slog.Logger
}

// NewSlogTracer tags every record with component=wfc.
func NewSlogTracer(logger *slog.Logger) *SlogTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTracer{logger: logger.With(slog.String("component", "wfc"))}
}

func (t *SlogTracer) CellCollapsed(position any, tile TileID, step int) {
	t.logger.Debug("cell collapsed",
		slog.Any("position", position),
		slog.Int("tile", int(tile)),
		slog.Int("step", step),
	)
}

func (t *SlogTracer) TileDisallowed(position any, tile TileID, remaining int) {
	// hot path
	if !t.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	t.logger.Debug("tile disallowed",
		slog.Any("position", position),
		slog.Int("tile", int(tile)),
		slog.Int("remaining", remaining),
	)
}

func (t *SlogTracer) Contradiction(position any) {
	t.logger.Warn("contradiction", slog.Any("position", position))
}
