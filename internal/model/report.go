package model

import "time"

// TrainingReport is the trainer's output summary — what was fitted, where the
// artifact landed, and how to reproduce it.
type TrainingReport struct {
	ArtifactID   string
	ArtifactPath string
	Seed         int64
	Trees        int
	Accuracy     float64 // training-set accuracy
	Duration     time.Duration
}
