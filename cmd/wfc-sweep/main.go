// Command wfc-sweep measures how often each generator setting contradicts.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"hexweave/internal/sims/hexpipes"
	"hexweave/internal/sims/pipes"
	"hexweave/pkg/core"
	"hexweave/pkg/wfc"
)

type scenario struct {
	space string
	conn  int
	size  int
	voids float64
	noise float64
}

func (s scenario) String() string {
	return fmt.Sprintf("%s/%d size=%d voids=%.2f noise=%.2f", s.space, s.conn, s.size, s.voids, s.noise)
}

type scenarioResult struct {
	scenario       scenario
	runs           int
	contradictions int
	failures       int
	removals       int
	maxStack       int
	elapsed        time.Duration
}

func (r scenarioResult) rate() float64 {
	if r.runs == 0 {
		return 0
	}
	return float64(r.contradictions) / float64(r.runs)
}

func main() {
	runs := flag.Int("runs", 40, "seeds solved per scenario")
	size := flag.Int("size", 24, "grid side length (hex radius is half of it)")
	seed := flag.Int64("seed", 1337, "first seed of every scenario")
	workers := flag.Int("workers", defaultWorkers(), "number of worker goroutines")
	flag.Parse()

	var sets []scenario
	for _, space := range []struct {
		name string
		conn int
	}{{"grid", 4}, {"grid", 8}, {"hex", 6}} {
		for _, voids := range []float64{0, 0.3, 0.5} {
			for _, noise := range []float64{0.05, 0.1, 0.5} {
				sets = append(sets, scenario{space: space.name, conn: space.conn, size: *size, voids: voids, noise: noise})
			}
		}
	}

	fmt.Printf("Sweeping %d scenarios x %d seeds (%d workers%s)\n", len(sets), *runs, *workers, memoryNote())

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- runScenario(s, *seed, *runs)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range sets {
			jobs <- s
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
		if res.failures > 0 {
			fmt.Fprintf(os.Stderr, "%s: %d runs failed outside of contradictions\n", res.scenario, res.failures)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].rate() != all[j].rate() {
			return all[i].rate() < all[j].rate()
		}
		return all[i].scenario.String() < all[j].scenario.String()
	})

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, res := range all {
		avgRemovals := 0
		if res.runs > 0 {
			avgRemovals = res.removals / res.runs
		}
		fmt.Printf("%2d) contradiction=%5.1f%% removals/run=%d maxStack=%d time=%s %s\n",
			i+1, 100*res.rate(), avgRemovals, res.maxStack, res.elapsed.Round(time.Millisecond), res.scenario)
	}
}

func defaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func memoryNote() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return ""
	}
	return fmt.Sprintf(", host memory %.1f GiB free of %.1f GiB", gib(vm.Available), gib(vm.Total))
}

func gib(b uint64) float64 { return float64(b) / (1 << 30) }

// runScenario solves runs seeds once each, without retries.
func runScenario(s scenario, seed int64, runs int) scenarioResult {
	res := scenarioResult{scenario: s}
	start := time.Now()
	for i := 0; i < runs; i++ {
		stats, err := solveOnce(s, seed+int64(i))
		res.runs++
		res.removals += stats.Removals
		res.maxStack = max(res.maxStack, stats.MaxStack)
		switch {
		case errors.Is(err, wfc.ErrContradiction):
			res.contradictions++
		case err != nil:
			res.failures++
		}
	}
	res.elapsed = time.Since(start)
	return res
}

func solveOnce(s scenario, seed int64) (wfc.Stats, error) {
	noise := core.NewRNG(seed).Noise()
	switch s.space {
	case "hex":
		cfg := hexpipes.DefaultConfig()
		cfg.Radius = max(1, s.size/2)
		cfg.Voids, cfg.Noise, cfg.Seed = s.voids, s.noise, seed
		build, _, err := hexpipes.Builder(cfg)
		if err != nil {
			return wfc.Stats{}, err
		}
		c, err := build(noise)
		if err != nil {
			return wfc.Stats{}, err
		}
		_, err = c.Run()
		return c.Stats(), err
	default:
		cfg := pipes.DefaultConfig()
		cfg.Width, cfg.Height = s.size, s.size
		cfg.Connectivity = s.conn
		cfg.Voids, cfg.Noise, cfg.Seed = s.voids, s.noise, seed
		build, _, err := pipes.Builder(cfg)
		if err != nil {
			return wfc.Stats{}, err
		}
		c, err := build(noise)
		if err != nil {
			return wfc.Stats{}, err
		}
		_, err = c.Run()
		return c.Stats(), err
	}
}
