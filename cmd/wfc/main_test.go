package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunGridWritesJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "map.json")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-space", "grid", "-seed", "3", "-set", "w=6", "-set", "h=4", "-out", out, "-history",
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr.String())
	}
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	if len(lines) != 5 || !strings.HasPrefix(lines[4], "history: ") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
	for _, row := range lines[:4] {
		if n := len([]rune(row)); n != 6 {
			t.Fatalf("row %q has %d glyphs", row, n)
		}
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if doc.Space != "grid" || doc.Width != 6 || doc.Height != 4 || doc.Connectivity != 4 {
		t.Fatalf("unexpected header %+v", doc)
	}
	if len(doc.Cells) != 24 || len(doc.History) != 24 {
		t.Fatalf("expected 24 cells and history entries, got %d and %d", len(doc.Cells), len(doc.History))
	}
	if doc.Seed < 3 || doc.Attempt < 1 || doc.RunID == "" {
		t.Fatalf("missing attempt metadata %+v", doc)
	}
}

func TestRunHex(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-space", "hex", "-set", "radius=1", "-attempts", "200", "-workers", "4",
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr.String())
	}
	if rows := strings.Count(stdout.String(), "\n"); rows != 3 {
		t.Fatalf("expected 3 hex rows, got %d:\n%s", rows, stdout.String())
	}
}

func TestRunDebugTracesSolver(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-set", "w=3", "-set", "h=2", "-log-level", "debug",
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr.String())
	}
	logs := stderr.String()
	if !strings.Contains(logs, "cell collapsed") || !strings.Contains(logs, "component=wfc") {
		t.Fatalf("debug log is missing solver events:\n%s", logs)
	}

	stderr.Reset()
	if code := run(context.Background(), []string{"-set", "w=3", "-set", "h=2"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr.String())
	}
	if strings.Contains(stderr.String(), "cell collapsed") {
		t.Fatalf("solver events logged above debug level:\n%s", stderr.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	cases := [][]string{
		{"-space", "cube"},
		{"-log-level", "chatty"},
		{"-set", "novalue"},
		{"-no-such-flag"},
	}
	for _, args := range cases {
		var stdout, stderr bytes.Buffer
		if code := run(context.Background(), args, &stdout, &stderr); code != 2 {
			t.Fatalf("%v: exit %d, want 2", args, code)
		}
	}
}
