package kiln

import (
	"time"

	"github.com/oakmoss/kiln/internal/capture"
	"github.com/oakmoss/kiln/internal/manifest"
	"github.com/oakmoss/kiln/internal/trainer"
)

// Report summarizes a training run.
// This is the stable public type — internal representations may evolve
// independently without breaking consumers.
type Report struct {
	ArtifactID   string        `json:"artifact_id"`
	ArtifactPath string        `json:"artifact_path"`
	Seed         int64         `json:"seed"`
	Trees        int           `json:"trees"`
	Accuracy     float64       `json:"accuracy"` // training-set accuracy
	Duration     time.Duration `json:"duration"`
}

// Pin is one pinned package version in the captured manifest.
type Pin struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Train fits the classifier on the bundled dataset and writes the model
// artifact. The seed defaults to 42; pass WithSeed to change it — the value
// used is always recorded in the artifact.
func Train(opts ...Option) (Report, error) {
	cfg := buildConfig(opts)
	r, err := trainer.Run(cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		ArtifactID:   r.ArtifactID,
		ArtifactPath: r.ArtifactPath,
		Seed:         r.Seed,
		Trees:        r.Trees,
		Accuracy:     r.Accuracy,
		Duration:     r.Duration,
	}, nil
}

// Capture verifies the model artifact and writes the pinned dependency
// manifest. It fails without writing anything if the artifact is missing or
// corrupt, or if any referenced package has no collected version.
func Capture(opts ...Option) ([]Pin, error) {
	cfg := buildConfig(opts)
	pins, err := capture.Run(cfg)
	if err != nil {
		return nil, err
	}
	return publicPins(pins), nil
}

func publicPins(pins []manifest.Pin) []Pin {
	out := make([]Pin, len(pins))
	for i, p := range pins {
		out[i] = Pin{Name: p.Name, Version: p.Version}
	}
	return out
}
