package attempt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"sync/atomic"
	"testing"

	"hexweave/internal/pieces"
	"hexweave/pkg/geom"
	"hexweave/pkg/wfc"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// coinBuilder contradicts whenever the first draw of an attempt is below
// bias, so each seed deterministically succeeds or fails.
func coinBuilder(t *testing.T, bias float64) Builder[geom.Point] {
	t.Helper()
	set := pieces.SquarePipes()
	g := geom.NewGrid(5, 4, geom.Four)
	cat, err := set.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	adj, err := set.Adjacency(g)
	if err != nil {
		t.Fatalf("Adjacency: %v", err)
	}
	all := make([]wfc.TileID, set.Len())
	for i, p := range set.Pieces() {
		all[i] = p.ID
	}
	return func(noise wfc.NoiseSource) (*wfc.Collapser[geom.Point], error) {
		constraints := []wfc.Constraint[geom.Point]{pieces.BorderConstraint[geom.Point](set)}
		if noise() < bias {
			constraints = append(constraints, func(wfc.Space[geom.Point]) []wfc.Exclusion[geom.Point] {
				return []wfc.Exclusion[geom.Point]{{Position: geom.Point{X: 2, Y: 2}, Tiles: all}}
			})
		}
		return wfc.New(wfc.Options[geom.Point]{
			Space: g, Catalog: cat, Rules: adj, Noise: noise, Constraints: constraints,
		})
	}
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	build := coinBuilder(t, 0.5)
	seq, err := Solve(context.Background(), Config{Seed: 100, MaxAttempts: 30, Workers: 1, Logger: quiet}, build)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	par, err := Solve(context.Background(), Config{Seed: 100, MaxAttempts: 30, Workers: 4, Logger: quiet}, build)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if seq.Attempt != par.Attempt || seq.Seed != par.Seed {
		t.Fatalf("winning attempt differs: %d/%d vs %d/%d", seq.Attempt, seq.Seed, par.Attempt, par.Seed)
	}
	if !maps.Equal(seq.Result.Tiles, par.Result.Tiles) {
		t.Fatal("parallel result differs from sequential")
	}
	if seq.Seed != 100+int64(seq.Attempt-1) {
		t.Fatalf("attempt %d used seed %d", seq.Attempt, seq.Seed)
	}
	if seq.RunID == par.RunID {
		t.Fatal("run ids should be unique per attempt")
	}
}

func TestSolveExhausted(t *testing.T) {
	_, err := Solve(context.Background(), Config{Seed: 1, MaxAttempts: 3, Workers: 2, Logger: quiet}, coinBuilder(t, 2))
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}
	if !errors.Is(err, wfc.ErrContradiction) {
		t.Fatalf("exhaustion should carry the last contradiction, got %v", err)
	}
	var ce *wfc.ContradictionError
	if !errors.As(err, &ce) || ce.Position != (geom.Point{X: 2, Y: 2}) {
		t.Fatalf("unexpected contradiction %v", err)
	}
}

func TestSolveAbortsOnFatalError(t *testing.T) {
	var builds atomic.Int32
	good := coinBuilder(t, -1)
	build := func(noise wfc.NoiseSource) (*wfc.Collapser[geom.Point], error) {
		builds.Add(1)
		return good(noise)
	}
	broken := func(noise wfc.NoiseSource) (*wfc.Collapser[geom.Point], error) {
		builds.Add(1)
		return nil, wfc.ErrUnknownTile
	}
	if _, err := Solve(context.Background(), Config{MaxAttempts: 5, Logger: quiet}, broken); !errors.Is(err, wfc.ErrUnknownTile) {
		t.Fatalf("expected the build error, got %v", err)
	}
	if builds.Load() != 1 {
		t.Fatalf("fatal error retried: %d builds", builds.Load())
	}
	builds.Store(0)
	out, err := Solve(context.Background(), Config{MaxAttempts: 5, Logger: quiet}, build)
	if err != nil || out.Attempt != 1 || builds.Load() != 1 {
		t.Fatalf("clean builder should win first try: %v, %+v", err, out)
	}
}

func TestSolveHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Solve(ctx, Config{MaxAttempts: 3, Logger: quiet}, coinBuilder(t, -1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSessionMatchesSolve(t *testing.T) {
	build := coinBuilder(t, 0.5)
	cfg := Config{MaxAttempts: 30, Logger: quiet}
	cfg.Seed = 7
	want, err := Solve(context.Background(), cfg, build)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	s := NewSession(cfg, build)
	if _, err := s.Step(); err == nil {
		t.Fatal("stepping before Reset should fail")
	}
	if err := s.Reset(7); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	for guard := 0; guard < 10000; guard++ {
		done, err := s.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if done {
			break
		}
	}
	if !s.Done() || s.Failed() != nil {
		t.Fatal("session did not finish")
	}
	if s.Attempt() != want.Attempt || s.Seed() != want.Seed {
		t.Fatalf("session finished on attempt %d, Solve on %d", s.Attempt(), want.Attempt)
	}
	res, err := s.Collapser().Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if !maps.Equal(res.Tiles, want.Result.Tiles) {
		t.Fatal("session result differs from Solve")
	}
}

func TestSessionExhausts(t *testing.T) {
	s := NewSession(Config{MaxAttempts: 2, Logger: quiet}, coinBuilder(t, 2))
	if err := s.Reset(1); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	var err error
	for i := 0; i < 5 && err == nil; i++ {
		_, err = s.Step()
	}
	if !errors.Is(err, ErrAttemptsExhausted) || s.Failed() == nil {
		t.Fatalf("expected exhaustion, got %v", err)
	}
	if _, again := s.Step(); again != s.Failed() {
		t.Fatal("failure should be sticky")
	}
}
