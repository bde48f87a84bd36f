// Command wfc solves one pipe map headlessly, prints it as text, and can
// write the result as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/rotisserie/eris"

	"hexweave/internal/app"
	"hexweave/internal/attempt"
	"hexweave/internal/render"
	"hexweave/internal/sims/hexpipes"
	"hexweave/internal/sims/pipes"
	"hexweave/pkg/geom"
	"hexweave/pkg/wfc"
)

type options struct {
	space    string
	seed     int64
	attempts int
	workers  int
	set      app.KVList
	out      string
	logLevel string
	history  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("wfc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.space, "space", "grid", "position space: grid or hex")
	fs.Int64Var(&opts.seed, "seed", 0, "seed of the first attempt (0 uses the generator default)")
	fs.IntVar(&opts.attempts, "attempts", 0, "maximum attempts (0 uses the generator default)")
	fs.IntVar(&opts.workers, "workers", 1, "attempts run concurrently")
	fs.Var(&opts.set, "set", "generator option in key=value form (repeatable)")
	fs.StringVar(&opts.out, "out", "", "write the solved map as JSON to this file")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.history, "history", false, "print the commit order after the map")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		fmt.Fprintf(stderr, "wfc: %v\n", err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	kv, err := opts.set.Map()
	if err != nil {
		fmt.Fprintf(stderr, "wfc: %v\n", err)
		return 2
	}

	var doc *document
	switch opts.space {
	case "grid":
		doc, err = solveGrid(ctx, opts, kv, logger, stdout)
	case "hex":
		doc, err = solveHex(ctx, opts, kv, logger, stdout)
	default:
		fmt.Fprintf(stderr, "wfc: unknown space %q (want grid or hex)\n", opts.space)
		return 2
	}
	if err != nil {
		logger.Error("solve failed", slog.String("err", eris.ToString(err, false)))
		if errors.Is(err, attempt.ErrAttemptsExhausted) {
			fmt.Fprintln(stderr, "wfc: every attempt contradicted; try another -seed or more -attempts")
		}
		return 1
	}

	if opts.out != "" {
		if err := writeDocument(opts.out, doc); err != nil {
			logger.Error("write output", slog.String("err", eris.ToString(err, false)))
			return 1
		}
		logger.Info("wrote map", slog.String("path", opts.out))
	}
	return 0
}

func (o options) attemptConfig(seed int64, maxAttempts int, logger *slog.Logger) attempt.Config {
	if o.seed != 0 {
		seed = o.seed
	}
	if o.attempts > 0 {
		maxAttempts = o.attempts
	}
	return attempt.Config{Seed: seed, MaxAttempts: maxAttempts, Workers: o.workers, Logger: logger}
}

func solveGrid(ctx context.Context, o options, kv map[string]string, logger *slog.Logger, stdout io.Writer) (*document, error) {
	cfg := pipes.FromMap(kv)
	build, prob, err := pipes.Builder(cfg)
	if err != nil {
		return nil, eris.Wrap(err, "configure grid")
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		prob.Tracer = wfc.NewSlogTracer(logger)
	}
	out, err := attempt.Solve(ctx, o.attemptConfig(cfg.Seed, cfg.MaxAttempts, logger), build)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(stdout, render.GridASCII(prob.Grid.W, prob.Grid.H, prob.Glyph(out.Result)))
	if o.history {
		printHistory(stdout, out.Result.History)
	}
	doc := newDocument("grid", prob.Set, out, func(p geom.Point) []int { return []int{p.X, p.Y} })
	doc.Width, doc.Height = prob.Grid.W, prob.Grid.H
	doc.Connectivity = int(prob.Grid.Conn)
	doc.Wrap = prob.Grid.Wrap
	return doc, nil
}

func solveHex(ctx context.Context, o options, kv map[string]string, logger *slog.Logger, stdout io.Writer) (*document, error) {
	cfg := hexpipes.FromMap(kv)
	build, prob, err := hexpipes.Builder(cfg)
	if err != nil {
		return nil, eris.Wrap(err, "configure hex")
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		prob.Tracer = wfc.NewSlogTracer(logger)
	}
	out, err := attempt.Solve(ctx, o.attemptConfig(cfg.Seed, cfg.MaxAttempts, logger), build)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(stdout, render.HexASCII(prob.Region, prob.Glyph(out.Result)))
	if o.history {
		printHistory(stdout, out.Result.History)
	}
	doc := newDocument("hex", prob.Set, out, func(c geom.Cube) []int { return []int{c.Q, c.R, c.S} })
	doc.Radius = prob.Region.Radius
	doc.Connectivity = 6
	return doc, nil
}

func printHistory[P fmt.Stringer](w io.Writer, history []P) {
	parts := make([]string, len(history))
	for i, p := range history {
		parts[i] = p.String()
	}
	fmt.Fprintf(w, "history: %s\n", strings.Join(parts, " "))
}
