package artifact

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/oakmoss/kiln/internal/dataset"
	"github.com/oakmoss/kiln/internal/forest"
	"github.com/oakmoss/kiln/internal/model"
)

func fittedForest(t *testing.T) (*forest.Forest, *dataset.Table) {
	t.Helper()
	tbl, err := dataset.LoadIris()
	if err != nil {
		t.Fatalf("LoadIris failed: %v", err)
	}
	f, err := forest.Fit(tbl, forest.Config{Trees: 5, Seed: 11})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	return f, tbl
}

func summary(tbl *dataset.Table) model.DatasetSummary {
	return model.DatasetSummary{
		Rows:       tbl.Rows(),
		Features:   tbl.Cols(),
		Classes:    len(tbl.Classes),
		ClassNames: tbl.Classes,
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	f, tbl := fittedForest(t)
	path := filepath.Join(t.TempDir(), "model.yaml")

	env := New(f, 11, summary(tbl))
	if env.Meta.ID == "" {
		t.Fatal("expected generated artifact ID")
	}
	if err := Save(path, env); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Meta.ID != env.Meta.ID {
		t.Fatalf("expected ID %q, got %q", env.Meta.ID, loaded.Meta.ID)
	}
	if loaded.Meta.Seed != 11 {
		t.Fatalf("expected recorded seed 11, got %d", loaded.Meta.Seed)
	}
	if loaded.Meta.Dataset.Classes != 3 {
		t.Fatalf("expected 3 classes in dataset summary, got %d", loaded.Meta.Dataset.Classes)
	}

	// The reloaded model must predict within the recorded label set.
	pred, err := loaded.Model.PredictTable(tbl)
	if err != nil {
		t.Fatalf("PredictTable on reloaded model failed: %v", err)
	}
	for i, p := range pred {
		if p < 0 || p >= loaded.Meta.Dataset.Classes {
			t.Fatalf("row %d: prediction %d outside label set", i, p)
		}
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	f, tbl := fittedForest(t)
	dir := t.TempDir()

	if err := Save(filepath.Join(dir, "model.yaml"), New(f, 1, summary(tbl))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".artifact-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoad_TamperedPayload(t *testing.T) {
	f, tbl := fittedForest(t)
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := Save(path, New(f, 1, summary(tbl))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Rewrite the payload under the original checksum.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var env Envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	env.Model.Seed++
	tampered, err := yaml.Marshal(&env)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(path, tampered, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err = Load(path)
	if !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected ErrChecksum, got %v", err)
	}
}

func TestLoad_SchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte("schema: 99\nmodel:\n  classes: 3\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := Load(path)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Got != 99 {
		t.Fatalf("expected schema 99 in error, got %d", se.Got)
	}
}
