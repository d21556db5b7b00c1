// Package trainer orchestrates a training run: load the bundled dataset, fit
// the forest, score it, and persist the artifact.
package trainer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/oakmoss/kiln/internal/artifact"
	"github.com/oakmoss/kiln/internal/config"
	"github.com/oakmoss/kiln/internal/dataset"
	"github.com/oakmoss/kiln/internal/forest"
	"github.com/oakmoss/kiln/internal/model"
)

// Run executes one training run and writes the artifact to
// cfg.Artifact.Path.
func Run(cfg config.Config) (model.TrainingReport, error) {
	start := time.Now()

	tbl, err := dataset.LoadIris()
	if err != nil {
		return model.TrainingReport{}, fmt.Errorf("trainer: %w", err)
	}
	slog.Debug("dataset loaded",
		"rows", tbl.Rows(),
		"features", tbl.Cols(),
		"classes", len(tbl.Classes))

	f, err := forest.Fit(tbl, forest.Config{
		Trees:    cfg.Train.Trees,
		MaxDepth: cfg.Train.MaxDepth,
		MinLeaf:  cfg.Train.MinLeaf,
		Workers:  cfg.Train.Workers,
		Seed:     cfg.Train.Seed,
	})
	if err != nil {
		return model.TrainingReport{}, fmt.Errorf("trainer: %w", err)
	}

	acc, err := f.Accuracy(tbl)
	if err != nil {
		return model.TrainingReport{}, fmt.Errorf("trainer: %w", err)
	}

	env := artifact.New(f, cfg.Train.Seed, model.DatasetSummary{
		Rows:       tbl.Rows(),
		Features:   tbl.Cols(),
		Classes:    len(tbl.Classes),
		ClassNames: tbl.Classes,
	})
	if err := artifact.Save(cfg.Artifact.Path, env); err != nil {
		return model.TrainingReport{}, fmt.Errorf("trainer: %w", err)
	}

	report := model.TrainingReport{
		ArtifactID:   env.Meta.ID,
		ArtifactPath: cfg.Artifact.Path,
		Seed:         cfg.Train.Seed,
		Trees:        len(f.Trees),
		Accuracy:     acc,
		Duration:     time.Since(start),
	}
	slog.Info("training complete",
		"artifact", report.ArtifactPath,
		"id", report.ArtifactID,
		"seed", report.Seed,
		"trees", report.Trees,
		"accuracy", fmt.Sprintf("%.3f", report.Accuracy),
		"duration", report.Duration)
	return report, nil
}
