package pipes

import (
	"strconv"

	"hexweave/pkg/geom"
)

// Config controls the square pipe generator.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Connectivity is 4 (square pieces) or 8 (octo pieces).
	Connectivity int
	Wrap         bool

	// Border seals the edges so no pipe leaves the grid. Ignored with Wrap.
	Border bool

	// Voids is the simplex threshold below which cells must stay empty.
	Voids     float64
	VoidScale float64

	Noise       float64
	MaxAttempts int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:        48,
		Height:       32,
		Seed:         1337,
		Connectivity: 4,
		Border:       true,
		Voids:        0,
		VoidScale:    0.12,
		Noise:        0.1,
		MaxAttempts:  10,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["conn"]; ok {
		if parsed, err := geom.ParseConnectivity(v); err == nil {
			c.Connectivity = int(parsed)
		}
	}
	if v, ok := cfg["wrap"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Wrap = parsed
		}
	}
	if v, ok := cfg["border"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Border = parsed
		}
	}
	if v, ok := cfg["voids"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Voids = parsed
		}
	}
	if v, ok := cfg["void_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.VoidScale = parsed
		}
	}
	if v, ok := cfg["noise"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Noise = parsed
		}
	}
	if v, ok := cfg["attempts"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxAttempts = parsed
		}
	}
	return c
}
