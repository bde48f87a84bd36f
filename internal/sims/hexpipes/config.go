package hexpipes

import "strconv"

// Config controls the hex pipe generator.
type Config struct {
	Radius int
	// PixelsPerUnit sets the raster resolution; one unit is the hex size.
	PixelsPerUnit int

	Seed int64

	Border    bool
	Voids     float64
	VoidScale float64

	Noise       float64
	MaxAttempts int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Radius:        8,
		PixelsPerUnit: 10,
		Seed:          1337,
		Border:        true,
		VoidScale:     0.2,
		Noise:         0.1,
		MaxAttempts:   25,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Radius = parsed
		}
	}
	if v, ok := cfg["ppu"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.PixelsPerUnit = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
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
