// Package artifact persists fitted models as versioned, checksummed YAML
// files. The envelope carries enough metadata to reproduce the fit (seed,
// dataset shape, trainer version) and enough to reject files that were
// tampered with or written by an incompatible schema.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/oakmoss/kiln/internal/forest"
	"github.com/oakmoss/kiln/internal/model"
)

// SchemaVersion is bumped whenever the envelope layout changes incompatibly.
const SchemaVersion = 1

// ErrChecksum is returned by Load when the model payload does not match the
// recorded checksum.
var ErrChecksum = errors.New("artifact: checksum mismatch")

// SchemaError is returned by Load for envelopes written under a different
// schema version.
type SchemaError struct {
	Got int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("artifact: schema version %d, expected %d", e.Got, SchemaVersion)
}

// Metadata describes the provenance of a fitted model.
type Metadata struct {
	ID        string               `yaml:"id"`
	CreatedAt time.Time            `yaml:"created_at"`
	Seed      int64                `yaml:"seed"`
	Trainer   string               `yaml:"trainer"` // module version that produced the artifact
	Dataset   model.DatasetSummary `yaml:"dataset"`
}

// Envelope is the on-disk artifact layout.
type Envelope struct {
	Schema   int            `yaml:"schema"`
	Meta     Metadata       `yaml:"meta"`
	Checksum string         `yaml:"checksum"` // sha256 over the YAML-encoded model
	Model    *forest.Forest `yaml:"model"`
}

// New wraps a fitted forest in a fresh envelope with a generated ID.
func New(f *forest.Forest, seed int64, ds model.DatasetSummary) *Envelope {
	return &Envelope{
		Schema: SchemaVersion,
		Meta: Metadata{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			Seed:      seed,
			Trainer:   trainerVersion(),
			Dataset:   ds,
		},
		Model: f,
	}
}

// Save writes the envelope to path. The checksum is computed here, and the
// write goes through a temp file in the same directory plus a rename, so a
// failure never leaves a partial artifact behind.
func Save(path string, env *Envelope) error {
	sum, err := modelChecksum(env.Model)
	if err != nil {
		return err
	}
	env.Checksum = sum

	data, err := yaml.Marshal(env)
	if err != nil {
		return fmt.Errorf("artifact: marshal envelope: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".artifact-*")
	if err != nil {
		return fmt.Errorf("artifact: create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("artifact: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("artifact: close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("artifact: chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("artifact: rename into place: %w", err)
	}
	return nil
}

// Load reads an envelope from path and verifies schema version and checksum.
// A missing file surfaces as an fs.ErrNotExist-wrapping error, not a silent
// no-op.
func Load(path string) (*Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: read %s: %w", path, err)
	}

	var env Envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("artifact: parse %s: %w", path, err)
	}
	if env.Schema != SchemaVersion {
		return nil, &SchemaError{Got: env.Schema}
	}
	if env.Model == nil {
		return nil, fmt.Errorf("artifact: %s has no model payload", path)
	}

	sum, err := modelChecksum(env.Model)
	if err != nil {
		return nil, err
	}
	if sum != env.Checksum {
		return nil, fmt.Errorf("%w: %s", ErrChecksum, path)
	}
	return &env, nil
}

// modelChecksum hashes the YAML encoding of the model payload. yaml.Marshal
// is deterministic for struct values, so the hash is stable across runs.
func modelChecksum(f *forest.Forest) (string, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("artifact: marshal model: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// trainerVersion reports this module's version from build info, or "unknown"
// outside a module-aware build.
func trainerVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "unknown"
	}
	return bi.Main.Version
}
