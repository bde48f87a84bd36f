package wfc

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestTileWeightLogWeight(t *testing.T) {
	tile := NewTile(1, 10)
	if !approx(tile.WeightLogWeight(), 33.2193, 1e-3) {
		t.Fatalf("weightLogWeight = %v, want ~33.219", tile.WeightLogWeight())
	}
	if got := NewTile(2, 1).WeightLogWeight(); got != 0 {
		t.Fatalf("unit weight should contribute 0, got %v", got)
	}
}

func TestCatalogAggregates(t *testing.T) {
	cat, err := NewCatalog(NewTile(0, 5), NewTile(1, 10), NewTile(2, 20))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if cat.WeightSum() != 35 {
		t.Fatalf("weightSum = %v, want 35", cat.WeightSum())
	}
	if !approx(cat.WeightLogWeightSum(), 131.27, 0.01) {
		t.Fatalf("weightLogWeightSum = %v, want ~131.27", cat.WeightLogWeightSum())
	}
	var manual float64
	for _, tile := range cat.Tiles() {
		manual += tile.Weight * math.Log2(tile.Weight)
	}
	if !approx(manual, cat.WeightLogWeightSum(), 1e-9) {
		t.Fatalf("aggregate %v differs from per-tile sum %v", cat.WeightLogWeightSum(), manual)
	}
}

func TestCatalogRecomputesCachedTerm(t *testing.T) {
	cat, err := NewCatalog(Tile{ID: 4, Weight: 8})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	got, err := cat.Get(4)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.WeightLogWeight() != 24 {
		t.Fatalf("cached term = %v, want 24", got.WeightLogWeight())
	}
}

func TestCatalogRejectsBadInput(t *testing.T) {
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewCatalog(NewTile(0, 1), Tile{ID: 1, Weight: w}); !errors.Is(err, ErrInvalidWeight) {
			t.Fatalf("weight %v: expected ErrInvalidWeight, got %v", w, err)
		}
	}
	if _, err := NewCatalog(NewTile(3, 1), NewTile(3, 2)); !errors.Is(err, ErrDuplicateTile) {
		t.Fatalf("expected ErrDuplicateTile, got %v", err)
	}
}

func TestCatalogLookup(t *testing.T) {
	cat, err := NewCatalog(NewTile(7, 1), NewTile(3, 2))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if _, err := cat.Get(99); !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("expected ErrUnknownTile, got %v", err)
	}
	if i, ok := cat.Index(3); !ok || i != 1 {
		t.Fatalf("Index(3) = %d, %v; want 1, true", i, ok)
	}
	if cat.At(0).ID != 7 {
		t.Fatalf("insertion order not kept: %v", cat.Tiles())
	}
}
