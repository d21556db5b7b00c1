package config

import (
	"os"
	"strconv"
)

// Config holds all kiln configuration.
type Config struct {
	Artifact ArtifactConfig
	Train    TrainConfig
	Manifest ManifestConfig
	LogLevel string
}

// ArtifactConfig names the model artifact location. Trainer and capture both
// read it from here, so the producer/consumer path contract lives in one
// place.
type ArtifactConfig struct {
	Path string
}

// TrainConfig holds trainer settings. Seed is explicit so every artifact
// records a reproducible configuration value.
type TrainConfig struct {
	Seed     int64
	Trees    int
	MaxDepth int
	MinLeaf  int
	Workers  int
}

// ManifestConfig holds capture settings. NumericPin overrides the collected
// version of the numeric library in the emitted manifest.
type ManifestConfig struct {
	Path       string
	Output     string // "file" or "stdout"
	NumericPin string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Artifact: ArtifactConfig{
			Path: getenv("KILN_ARTIFACT_PATH", "model.yaml"),
		},
		Train: TrainConfig{
			Seed:     getenvInt64("KILN_SEED", 42),
			Trees:    getenvInt("KILN_TREES", 100),
			MaxDepth: getenvInt("KILN_MAX_DEPTH", 12),
			MinLeaf:  getenvInt("KILN_MIN_LEAF", 1),
			Workers:  getenvInt("KILN_WORKERS", 0),
		},
		Manifest: ManifestConfig{
			Path:       getenv("KILN_MANIFEST_PATH", "requirements.txt"),
			Output:     getenv("KILN_MANIFEST_OUTPUT", "file"),
			NumericPin: os.Getenv("KILN_TENSOR_PIN"),
		},
		LogLevel: getenv("KILN_LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
