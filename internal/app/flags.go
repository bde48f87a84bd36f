package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	HUD   int
	Set   KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "pipes", Scale: 12, TPS: 60, Seed: 42, HUD: 220}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "generator to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "collapses per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for generator reset")
	fs.IntVar(&c.HUD, "hud", c.HUD, "parameter panel width in pixels (0 hides it)")
	fs.Var(&c.Set, "set", "generator option in key=value form (repeatable)")
}

// Options folds the -set overrides into a generator config map. The seed
// flag is passed through unless overridden explicitly.
func (c *Config) Options() (map[string]string, error) {
	out, err := c.Set.Map()
	if err != nil {
		return nil, err
	}
	if _, ok := out["seed"]; !ok {
		out["seed"] = fmt.Sprint(c.Seed)
	}
	return out, nil
}

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

// Set appends one occurrence.
func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map parses the collected pairs. Later occurrences of a key win.
func (l KVList) Map() (map[string]string, error) {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("app: malformed -set %q, want key=value", kv)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
