// Package attempt decides what to do when a solve contradicts: start over
// with fresh noise, up to a bounded number of attempts.
package attempt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"hexweave/pkg/core"
	"hexweave/pkg/wfc"
)

// DefaultMaxAttempts bounds retries when Config leaves it unset.
const DefaultMaxAttempts = 10

// ErrAttemptsExhausted is returned when every attempt contradicted.
var ErrAttemptsExhausted = errors.New("attempt: all attempts contradicted")

// Builder constructs a fresh collapser that draws from noise.
type Builder[P comparable] func(noise wfc.NoiseSource) (*wfc.Collapser[P], error)

// Config controls retries. Attempt i (zero based) uses seed Seed+i.
type Config struct {
	Seed        int64
	MaxAttempts int
	// Workers above 1 runs attempts concurrently in batches of that size.
	Workers int
	Logger  *slog.Logger
}

func (c Config) normalized() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Outcome describes the attempt that succeeded.
type Outcome[P comparable] struct {
	Result    *wfc.Result[P]
	Collapser *wfc.Collapser[P]
	Attempt   int // one based
	Seed      int64
	RunID     uuid.UUID
	Stats     wfc.Stats
}

// Solve runs attempts until one completes. Contradictions move on to the
// next seed; any other error aborts. With several workers the lowest
// numbered success of the first batch containing one wins, so the outcome
// does not depend on scheduling.
func Solve[P comparable](ctx context.Context, cfg Config, build Builder[P]) (*Outcome[P], error) {
	cfg = cfg.normalized()
	var last error
	for start := 0; start < cfg.MaxAttempts; start += cfg.Workers {
		end := min(start+cfg.Workers, cfg.MaxAttempts)
		outcomes, errs, err := runBatch(ctx, cfg, build, start, end)
		if err != nil {
			return nil, err
		}
		for k, out := range outcomes {
			if out != nil {
				return out, nil
			}
			last = errs[k]
		}
	}
	cfg.Logger.Warn("attempts exhausted", slog.Int("attempts", cfg.MaxAttempts), slog.Int64("seed", cfg.Seed))
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, cfg.MaxAttempts, last)
}

func runBatch[P comparable](ctx context.Context, cfg Config, build Builder[P], start, end int) ([]*Outcome[P], []error, error) {
	n := end - start
	outcomes := make([]*Outcome[P], n)
	errs := make([]error, n)
	if cfg.Workers <= 1 {
		for i := start; i < end; i++ {
			out, err := runOne(ctx, cfg, build, i)
			if err != nil && !errors.Is(err, wfc.ErrContradiction) {
				return nil, nil, err
			}
			outcomes[i-start], errs[i-start] = out, err
		}
		return outcomes, errs, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := start; i < end; i++ {
		g.Go(func() error {
			out, err := runOne(gctx, cfg, build, i)
			if err != nil && !errors.Is(err, wfc.ErrContradiction) {
				return err
			}
			outcomes[i-start], errs[i-start] = out, err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return outcomes, errs, nil
}

func runOne[P comparable](ctx context.Context, cfg Config, build Builder[P], i int) (*Outcome[P], error) {
	seed := cfg.Seed + int64(i)
	id := uuid.New()
	log := cfg.Logger.With(
		slog.String("run", id.String()),
		slog.Int("attempt", i+1),
		slog.Int64("seed", seed),
	)

	c, err := build(core.NewRNG(seed).Noise())
	if err != nil {
		return nil, eris.Wrapf(err, "attempt %d: build solver", i+1)
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrapf(err, "attempt %d cancelled", i+1)
		}
		done, err := c.Step()
		if err != nil {
			if errors.Is(err, wfc.ErrContradiction) {
				log.Info("attempt contradicted", slog.Int("collapsed", len(c.HistoryIndex())), slog.Any("err", err))
			} else {
				log.Error("attempt failed", slog.Any("err", err))
			}
			return nil, eris.Wrapf(err, "attempt %d (seed %d)", i+1, seed)
		}
		if done {
			break
		}
	}
	res, err := c.Result()
	if err != nil {
		return nil, eris.Wrapf(err, "attempt %d: result", i+1)
	}
	stats := c.Stats()
	log.Info("attempt succeeded",
		slog.Int("collapses", stats.Collapses),
		slog.Int("disallowed", stats.Disallowed),
		slog.Int("max_stack", stats.MaxStack),
	)
	return &Outcome[P]{
		Result:    res,
		Collapser: c,
		Attempt:   i + 1,
		Seed:      seed,
		RunID:     id,
		Stats:     stats,
	}, nil
}
