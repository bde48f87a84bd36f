// Command wfc-term plays a generator's solve in the terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"hexweave/internal/app"
	"hexweave/internal/core"
	_ "hexweave/internal/sims/hexpipes"
	_ "hexweave/internal/sims/pipes"
	"hexweave/internal/term"
)

func main() {
	sim := flag.String("sim", "pipes", "generator to run")
	seed := flag.Int64("seed", 42, "seed of the first run")
	interval := flag.Duration("interval", 40*time.Millisecond, "delay between ticks")
	perTick := flag.Int("per-tick", 1, "collapses per tick")
	var set app.KVList
	flag.Var(&set, "set", "generator option in key=value form (repeatable)")
	flag.Parse()

	// Keep session logs off the alternate screen.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

	factory, ok := core.Sims()[*sim]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown generator %q (have %v)\n", *sim, core.Names())
		os.Exit(2)
	}
	opts, err := set.Map()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	gen, ok := factory(opts).(term.Generator)
	if !ok {
		fmt.Fprintf(os.Stderr, "generator %q has no text rendering\n", *sim)
		os.Exit(2)
	}
	if err := term.Run(term.New(gen, *seed, *interval, *perTick)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
