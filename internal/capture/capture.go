// Package capture produces the pinned dependency manifest for a trained
// model. It loads and verifies the artifact first — a manifest only means
// something when the model it pins the environment for actually exists.
package capture

import (
	"fmt"
	"log/slog"

	"github.com/oakmoss/kiln/internal/artifact"
	"github.com/oakmoss/kiln/internal/config"
	"github.com/oakmoss/kiln/internal/emit"
	"github.com/oakmoss/kiln/internal/manifest"
)

// Run verifies the artifact at cfg.Artifact.Path, collects a version for
// every package the manifest references, and emits the manifest to the
// configured sink. All versions are validated before anything is written.
func Run(cfg config.Config) ([]manifest.Pin, error) {
	return run(cfg, nil)
}

// run is Run with an injectable build-info source for tests.
func run(cfg config.Config, readBuildInfo manifest.BuildInfoFunc) ([]manifest.Pin, error) {
	env, err := artifact.Load(cfg.Artifact.Path)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	slog.Debug("artifact verified",
		"path", cfg.Artifact.Path,
		"id", env.Meta.ID,
		"seed", env.Meta.Seed)

	reg := manifest.Collect(readBuildInfo, cfg.Manifest.NumericPin)
	pins, err := manifest.Pins(reg)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	sink, err := sinkFor(cfg.Manifest)
	if err != nil {
		return nil, err
	}
	if err := sink.Write(pins); err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	slog.Info("manifest written",
		"output", cfg.Manifest.Output,
		"path", cfg.Manifest.Path,
		"pins", len(pins),
		"artifact_id", env.Meta.ID)
	return pins, nil
}

func sinkFor(cfg config.ManifestConfig) (emit.Sink, error) {
	switch cfg.Output {
	case "file":
		return emit.NewFile(cfg.Path), nil
	case "stdout":
		return emit.NewStdout(), nil
	default:
		return nil, fmt.Errorf("capture: unknown manifest output %q", cfg.Output)
	}
}
