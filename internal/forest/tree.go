package forest

import (
	"math"
	"math/rand"
	"sort"
)

// Node is a single decision-tree node. Exactly one of the two shapes is
// populated: leaves carry Class, internal nodes carry Feature/Threshold and
// both children. The YAML tags keep persisted artifacts compact.
type Node struct {
	Leaf      bool    `yaml:"leaf,omitempty"`
	Class     int     `yaml:"class,omitempty"`
	Feature   int     `yaml:"feature,omitempty"`
	Threshold float64 `yaml:"threshold,omitempty"`
	Left      *Node   `yaml:"left,omitempty"`
	Right     *Node   `yaml:"right,omitempty"`
}

// predict walks the tree for one feature vector.
func (n *Node) predict(x []float64) int {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Class
}

// treeBuilder grows one CART tree over a bootstrap sample.
type treeBuilder struct {
	at       func(row, col int) float64
	labels   []int
	classes  int
	features int
	maxDepth int
	minLeaf  int
	mtry     int // features considered per split
	rng      *rand.Rand
}

func (b *treeBuilder) build(rows []int, depth int) *Node {
	counts := b.classCounts(rows)
	if depth >= b.maxDepth || len(rows) < 2*b.minLeaf || isPure(counts) {
		return &Node{Leaf: true, Class: majority(counts)}
	}

	feat, thr, ok := b.bestSplit(rows, counts)
	if !ok {
		return &Node{Leaf: true, Class: majority(counts)}
	}

	var left, right []int
	for _, r := range rows {
		if b.at(r, feat) <= thr {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) < b.minLeaf || len(right) < b.minLeaf {
		return &Node{Leaf: true, Class: majority(counts)}
	}

	return &Node{
		Feature:   feat,
		Threshold: thr,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

// bestSplit scans a random feature subset for the threshold with the lowest
// weighted Gini impurity. Returns ok=false when no feature in the subset has
// two distinct values.
func (b *treeBuilder) bestSplit(rows []int, counts []int) (feature int, threshold float64, ok bool) {
	bestGini := math.Inf(1)

	for _, feat := range b.sampleFeatures() {
		sorted := make([]int, len(rows))
		copy(sorted, rows)
		sort.Slice(sorted, func(i, j int) bool {
			return b.at(sorted[i], feat) < b.at(sorted[j], feat)
		})

		// Sweep split points left to right, moving one sample at a time
		// from the right partition into the left.
		leftCounts := make([]int, b.classes)
		rightCounts := make([]int, b.classes)
		copy(rightCounts, counts)

		for i := 0; i < len(sorted)-1; i++ {
			cls := b.labels[sorted[i]]
			leftCounts[cls]++
			rightCounts[cls]--

			v, next := b.at(sorted[i], feat), b.at(sorted[i+1], feat)
			if v == next {
				continue
			}

			nL, nR := i+1, len(sorted)-i-1
			g := (float64(nL)*gini(leftCounts, nL) + float64(nR)*gini(rightCounts, nR)) / float64(len(sorted))
			if g < bestGini {
				bestGini = g
				feature = feat
				threshold = (v + next) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// sampleFeatures draws mtry distinct feature indices.
func (b *treeBuilder) sampleFeatures() []int {
	perm := b.rng.Perm(b.features)
	return perm[:b.mtry]
}

func (b *treeBuilder) classCounts(rows []int) []int {
	counts := make([]int, b.classes)
	for _, r := range rows {
		counts[b.labels[r]]++
	}
	return counts
}

func gini(counts []int, total int) float64 {
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		g -= p * p
	}
	return g
}

func isPure(counts []int) bool {
	seen := 0
	for _, c := range counts {
		if c > 0 {
			seen++
		}
	}
	return seen <= 1
}

// majority returns the class with the highest count; ties resolve to the
// lowest class index so results are stable.
func majority(counts []int) int {
	best, bestCount := 0, -1
	for cls, c := range counts {
		if c > bestCount {
			best, bestCount = cls, c
		}
	}
	return best
}
