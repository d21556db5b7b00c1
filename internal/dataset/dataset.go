// Package dataset provides the bundled training data as an in-memory table.
package dataset

import (
	"bytes"
	"encoding/csv"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gorgonia.org/tensor"
)

//go:embed iris.csv
var irisCSV []byte

// Table is a fixed tabular sample set: a dense float64 feature matrix with
// one class label per row. Tables are immutable after loading.
type Table struct {
	Features     *tensor.Dense // shape [rows, features]
	Labels       []int         // class index per row
	Classes      []string      // class index -> label text
	FeatureNames []string
}

// Rows returns the number of samples.
func (t *Table) Rows() int {
	return t.Features.Shape()[0]
}

// Cols returns the feature dimensionality.
func (t *Table) Cols() int {
	return t.Features.Shape()[1]
}

// Row returns a copy of the feature vector for sample i.
func (t *Table) Row(i int) []float64 {
	cols := t.Cols()
	data := t.Features.Data().([]float64)
	out := make([]float64, cols)
	copy(out, data[i*cols:(i+1)*cols])
	return out
}

// At returns the value of feature j for sample i.
func (t *Table) At(i, j int) float64 {
	data := t.Features.Data().([]float64)
	return data[i*t.Cols()+j]
}

// LoadIris parses the bundled iris dataset: 150 samples, 4 features, 3 classes.
func LoadIris() (*Table, error) {
	return Parse(bytes.NewReader(irisCSV))
}

// Parse reads a CSV with a header row, numeric feature columns, and a
// trailing label column. Label text is NFC-normalized before class
// assignment, so byte-level variants of the same label collapse into one
// class. Class indices are assigned in first-appearance order.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("dataset: need at least one feature column and a label column, got %d columns", len(header))
	}
	cols := len(header) - 1

	var (
		flat    []float64
		labels  []int
		classes []string
		index   = make(map[string]int)
		row     = 1
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", row, err)
		}
		if len(rec) != cols+1 {
			return nil, fmt.Errorf("dataset: row %d: expected %d columns, got %d", row, cols+1, len(rec))
		}
		for j := 0; j < cols; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("dataset: row %d, column %q: %w", row, header[j], err)
			}
			flat = append(flat, v)
		}

		label := norm.NFC.String(strings.TrimSpace(rec[cols]))
		if label == "" {
			return nil, fmt.Errorf("dataset: row %d: empty label", row)
		}
		cls, ok := index[label]
		if !ok {
			cls = len(classes)
			index[label] = cls
			classes = append(classes, label)
		}
		labels = append(labels, cls)
		row++
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("dataset: no samples")
	}

	features := tensor.New(
		tensor.WithShape(len(labels), cols),
		tensor.WithBacking(flat),
	)
	return &Table{
		Features:     features,
		Labels:       labels,
		Classes:      classes,
		FeatureNames: header[:cols],
	}, nil
}
