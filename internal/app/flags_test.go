package app

import (
	"flag"
	"testing"
)

func TestConfigBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-sim", "hexpipes", "-scale", "4", "-seed", "7", "-set", "radius=5", "-set", "voids = 0.3"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Sim != "hexpipes" || cfg.Scale != 4 || cfg.Seed != 7 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.TPS != 60 {
		t.Fatalf("expected default tps 60, got %d", cfg.TPS)
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	want := map[string]string{"seed": "7", "radius": "5", "voids": "0.3"}
	if len(opts) != len(want) {
		t.Fatalf("expected %d options, got %v", len(want), opts)
	}
	for k, v := range want {
		if opts[k] != v {
			t.Fatalf("option %q = %q, want %q", k, opts[k], v)
		}
	}
}

func TestConfigSetOverridesSeed(t *testing.T) {
	cfg := NewConfig()
	cfg.Set = KVList{"seed=99"}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts["seed"] != "99" {
		t.Fatalf("expected -set seed to win, got %q", opts["seed"])
	}
}

func TestConfigRejectsMalformedSet(t *testing.T) {
	for _, kv := range []string{"radius", "=5"} {
		cfg := NewConfig()
		cfg.Set = KVList{kv}
		if _, err := cfg.Options(); err == nil {
			t.Fatalf("expected error for %q", kv)
		}
	}
}

func TestKVListString(t *testing.T) {
	var l KVList
	_ = l.Set("a=1")
	_ = l.Set("b=2")
	if got := l.String(); got != "a=1,b=2" {
		t.Fatalf("unexpected String %q", got)
	}
}
