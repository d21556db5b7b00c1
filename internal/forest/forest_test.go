package forest

import (
	"testing"

	"github.com/oakmoss/kiln/internal/dataset"
)

func irisTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.LoadIris()
	if err != nil {
		t.Fatalf("LoadIris failed: %v", err)
	}
	return tbl
}

func TestFit_Iris(t *testing.T) {
	tbl := irisTable(t)

	f, err := Fit(tbl, Config{Trees: 25, Seed: 1})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if len(f.Trees) != 25 {
		t.Fatalf("expected 25 trees, got %d", len(f.Trees))
	}
	if f.Classes != 3 || f.Features != 4 {
		t.Fatalf("expected 3 classes / 4 features, got %d / %d", f.Classes, f.Features)
	}

	acc, err := f.Accuracy(tbl)
	if err != nil {
		t.Fatalf("Accuracy failed: %v", err)
	}
	if acc < 0.9 {
		t.Fatalf("training accuracy %.3f below 0.9", acc)
	}
}

func TestFit_PredictionsWithinLabelSet(t *testing.T) {
	tbl := irisTable(t)

	f, err := Fit(tbl, Config{Trees: 10, Seed: 7})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	pred, err := f.PredictTable(tbl)
	if err != nil {
		t.Fatalf("PredictTable failed: %v", err)
	}
	for i, p := range pred {
		if p < 0 || p >= 3 {
			t.Fatalf("row %d: prediction %d outside label set [0,3)", i, p)
		}
	}
}

func TestFit_DeterministicForSeed(t *testing.T) {
	tbl := irisTable(t)

	// Different worker counts must not change the result for a fixed seed.
	a, err := Fit(tbl, Config{Trees: 15, Seed: 99, Workers: 1})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	b, err := Fit(tbl, Config{Trees: 15, Seed: 99, Workers: 8})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	predA, err := a.PredictTable(tbl)
	if err != nil {
		t.Fatalf("PredictTable failed: %v", err)
	}
	predB, err := b.PredictTable(tbl)
	if err != nil {
		t.Fatalf("PredictTable failed: %v", err)
	}
	for i := range predA {
		if predA[i] != predB[i] {
			t.Fatalf("row %d: same seed produced different predictions (%d vs %d)", i, predA[i], predB[i])
		}
	}
}

func TestFit_DifferentSeedsBothValid(t *testing.T) {
	tbl := irisTable(t)

	for _, seed := range []int64{1, 2} {
		f, err := Fit(tbl, Config{Trees: 10, Seed: seed})
		if err != nil {
			t.Fatalf("Fit with seed %d failed: %v", seed, err)
		}
		if _, err := f.Predict(tbl.Row(0)); err != nil {
			t.Fatalf("Predict with seed %d failed: %v", seed, err)
		}
	}
}

func TestPredict_DimensionMismatch(t *testing.T) {
	tbl := irisTable(t)

	f, err := Fit(tbl, Config{Trees: 5, Seed: 3})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if _, err := f.Predict([]float64{1, 2}); err == nil {
		t.Fatal("expected error for 2-feature input against 4-feature forest")
	}
}

func TestFit_RejectsDegenerateTables(t *testing.T) {
	tbl := irisTable(t)

	single := *tbl
	single.Classes = tbl.Classes[:1]
	if _, err := Fit(&single, Config{Trees: 5}); err == nil {
		t.Fatal("expected error for single-class table")
	}
}
