// Package model holds the types shared across kiln's packages.
package model

// DatasetSummary describes the data a model was fitted on. It is recorded in
// the artifact so a consumer can sanity-check shape without the dataset.
type DatasetSummary struct {
	Rows       int      `yaml:"rows"`
	Features   int      `yaml:"features"`
	Classes    int      `yaml:"classes"`
	ClassNames []string `yaml:"class_names"`
}
