package kiln

import "github.com/oakmoss/kiln/internal/config"

type options struct {
	artifactPath string
	manifestPath string
	seed         *int64
	trees        int
	workers      int
	numericPin   string
}

// Option configures a Train or Capture call.
type Option func(*options)

// WithArtifactPath sets the model artifact location. Default: "model.yaml".
// Pass the same path to Train and Capture — it is the contract between them.
func WithArtifactPath(path string) Option {
	return func(o *options) { o.artifactPath = path }
}

// WithManifestPath sets the manifest output file. Default: "requirements.txt".
func WithManifestPath(path string) Option {
	return func(o *options) { o.manifestPath = path }
}

// WithSeed sets the training RNG seed. The same seed reproduces the same
// model. Default: 42.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithTrees sets the ensemble size. Default: 100.
func WithTrees(n int) Option {
	return func(o *options) { o.trees = n }
}

// WithWorkers bounds concurrent tree fitting. Default: GOMAXPROCS. The fitted
// model does not depend on the worker count.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithNumericPin overrides the numeric-library version written to the
// manifest. By default the version is taken from build info.
func WithNumericPin(version string) Option {
	return func(o *options) { o.numericPin = version }
}

// buildConfig maps options onto the defaults shared with the commands.
func buildConfig(opts []Option) config.Config {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := config.Load()
	if o.artifactPath != "" {
		cfg.Artifact.Path = o.artifactPath
	}
	if o.manifestPath != "" {
		cfg.Manifest.Path = o.manifestPath
	}
	cfg.Manifest.Output = "file"
	if o.seed != nil {
		cfg.Train.Seed = *o.seed
	}
	if o.trees > 0 {
		cfg.Train.Trees = o.trees
	}
	if o.workers > 0 {
		cfg.Train.Workers = o.workers
	}
	if o.numericPin != "" {
		cfg.Manifest.NumericPin = o.numericPin
	}
	return cfg
}
