package main

import "testing"

func TestCompleteSquareSetNeverContradicts(t *testing.T) {
	res := runScenario(scenario{space: "grid", conn: 4, size: 8, voids: 0.4, noise: 0.1}, 1, 6)
	if res.runs != 6 || res.contradictions != 0 || res.failures != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.removals == 0 {
		t.Fatal("expected propagation work to be counted")
	}
}

func TestHexScenarioCountsEveryRun(t *testing.T) {
	res := runScenario(scenario{space: "hex", conn: 6, size: 4, noise: 0.1}, 1, 5)
	if res.runs != 5 || res.failures != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.contradictions > res.runs {
		t.Fatalf("more contradictions than runs: %+v", res)
	}
	if r := res.rate(); r < 0 || r > 1 {
		t.Fatalf("rate out of range: %v", r)
	}
}

func TestDefaultWorkersPositive(t *testing.T) {
	if defaultWorkers() < 1 {
		t.Fatal("workers must be at least one")
	}
}
