package wfc

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogTracerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	tr := NewSlogTracer(logger)
	tr.CellCollapsed(pt{1, 2}, 3, 1)
	tr.TileDisallowed(pt{1, 2}, 4, 2)
	if buf.Len() != 0 {
		t.Fatalf("debug events leaked at warn level: %q", buf.String())
	}
	tr.Contradiction(pt{1, 2})
	out := buf.String()
	if !strings.Contains(out, "contradiction") || !strings.Contains(out, "component=wfc") {
		t.Fatalf("unexpected record %q", out)
	}
}
