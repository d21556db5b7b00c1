// Package forest implements a random-forest classifier over dense tabular
// data: bagged CART trees with Gini splits and per-split feature subsampling.
package forest

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/oakmoss/kiln/internal/dataset"
)

// Config holds the forest hyperparameters. The zero value of any field is
// replaced by its default; Seed is taken as-is so a zero seed is still a
// recorded, reproducible choice.
type Config struct {
	Trees    int   // ensemble size (default 100)
	MaxDepth int   // maximum tree depth (default 12)
	MinLeaf  int   // minimum samples per leaf (default 1)
	Workers  int   // concurrent tree fits (default GOMAXPROCS)
	Seed     int64 // base RNG seed; tree i derives its own stream from it
}

func (c Config) withDefaults() Config {
	if c.Trees <= 0 {
		c.Trees = 100
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 12
	}
	if c.MinLeaf <= 0 {
		c.MinLeaf = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// Forest is a fitted ensemble. All fields are exported for serialization;
// treat a Forest as read-only once fitted.
type Forest struct {
	Trees    []*Node `yaml:"trees"`
	Classes  int     `yaml:"classes"`
	Features int     `yaml:"features"`
	Seed     int64   `yaml:"seed"`
}

// Fit trains a forest on the table. Trees are fitted concurrently, but each
// tree owns an RNG derived from Seed and its tree index, so the result is
// identical for a given seed regardless of worker count.
func Fit(tbl *dataset.Table, cfg Config) (*Forest, error) {
	cfg = cfg.withDefaults()

	rows, cols := tbl.Rows(), tbl.Cols()
	if rows == 0 {
		return nil, fmt.Errorf("forest: empty table")
	}
	if len(tbl.Classes) < 2 {
		return nil, fmt.Errorf("forest: need at least 2 classes, got %d", len(tbl.Classes))
	}

	f := &Forest{
		Trees:    make([]*Node, cfg.Trees),
		Classes:  len(tbl.Classes),
		Features: cols,
		Seed:     cfg.Seed,
	}
	mtry := int(math.Ceil(math.Sqrt(float64(cols))))

	workers := cfg.Workers
	if workers > cfg.Trees {
		workers = cfg.Trees
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				f.Trees[i] = fitTree(tbl, cfg, mtry, i)
			}
		}()
	}
	for i := 0; i < cfg.Trees; i++ {
		idx <- i
	}
	close(idx)
	wg.Wait()

	return f, nil
}

// fitTree grows tree i over a fresh bootstrap sample.
func fitTree(tbl *dataset.Table, cfg Config, mtry, i int) *Node {
	rng := rand.New(rand.NewSource(treeSeed(cfg.Seed, i)))

	rows := make([]int, tbl.Rows())
	for j := range rows {
		rows[j] = rng.Intn(len(rows))
	}

	b := &treeBuilder{
		at:       tbl.At,
		labels:   tbl.Labels,
		classes:  len(tbl.Classes),
		features: tbl.Cols(),
		maxDepth: cfg.MaxDepth,
		minLeaf:  cfg.MinLeaf,
		mtry:     mtry,
		rng:      rng,
	}
	return b.build(rows, 0)
}

// treeSeed mixes the base seed with the tree index so neighboring trees get
// well-separated streams (splitmix64 finalizer).
func treeSeed(base int64, i int) int64 {
	z := uint64(base) + uint64(i)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// Predict returns the majority-vote class index for one feature vector.
func (f *Forest) Predict(x []float64) (int, error) {
	if len(x) != f.Features {
		return 0, fmt.Errorf("forest: expected %d features, got %d", f.Features, len(x))
	}
	votes := make([]int, f.Classes)
	for _, t := range f.Trees {
		votes[t.predict(x)]++
	}
	return majority(votes), nil
}

// PredictTable classifies every row of the table.
func (f *Forest) PredictTable(tbl *dataset.Table) ([]int, error) {
	out := make([]int, tbl.Rows())
	for i := range out {
		cls, err := f.Predict(tbl.Row(i))
		if err != nil {
			return nil, err
		}
		out[i] = cls
	}
	return out, nil
}

// Accuracy scores the forest against the table's own labels.
func (f *Forest) Accuracy(tbl *dataset.Table) (float64, error) {
	pred, err := f.PredictTable(tbl)
	if err != nil {
		return 0, err
	}
	hits := 0
	for i, p := range pred {
		if p == tbl.Labels[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(pred)), nil
}
