package builder

import (
	"math"
	"testing"

	"github.com/gotree/gotree/criterion"
	"github.com/gotree/gotree/internal/randsrc"
	"github.com/gotree/gotree/splitter"
	"github.com/gotree/gotree/tree"
)

func unitWeight(numOutputs, maxNumClasses int) []float64 {
	w := make([]float64, numOutputs*maxNumClasses)
	for i := range w {
		w[i] = 1
	}
	return w
}

func TestBuildSeparableDataPerfectlyClassifies(t *testing.T) {
	X := []float64{1, 2, 3, 10, 11, 12}
	y := []int{0, 0, 0, 1, 1, 1}
	P := []int{0, 1, 2, 3, 4, 5}

	crit := criterion.NewGini(1, len(y), 2, []int{2}, unitWeight(1, 2))
	split := splitter.New(1, 1, splitter.Best, crit, randsrc.New(1), 1, len(y))
	b := New(Params{MaxDepth: -1, MinSamplesSplit: 2, MinSamplesLeaf: 1}, crit, split)

	tr := tree.New(1, 4)
	b.Build(tr, X, y, P)

	for i := 0; i < len(y); i++ {
		row := []float64{X[i]}
		probs := tr.PredictProba(row)[0]
		got := 0
		if probs[1] > probs[0] {
			got = 1
		}
		if got != y[i] {
			t.Fatalf("sample %d misclassified: probs=%v, want class %d", i, probs, y[i])
		}
	}
}

func TestBuildRespectsMaxDepth(t *testing.T) {
	X := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}
	P := []int{0, 1, 2, 3, 4, 5, 6, 7}

	crit := criterion.NewGini(1, len(y), 2, []int{2}, unitWeight(1, 2))
	split := splitter.New(1, 1, splitter.Best, crit, randsrc.New(1), 1, len(y))
	b := New(Params{MaxDepth: 0, MinSamplesSplit: 2, MinSamplesLeaf: 1}, crit, split)

	tr := tree.New(1, 1)
	b.Build(tr, X, y, P)

	if len(tr.Nodes) != 1 {
		t.Fatalf("max_depth=0 should force a single-node (root leaf) tree, got %d nodes", len(tr.Nodes))
	}
	if !tr.Nodes[0].IsLeaf() {
		t.Fatalf("root should be a leaf under max_depth=0")
	}
}

func TestBuildRespectsMinSamplesSplit(t *testing.T) {
	X := []float64{1, 2, 3, 4}
	y := []int{0, 0, 1, 1}
	P := []int{0, 1, 2, 3}

	crit := criterion.NewGini(1, len(y), 2, []int{2}, unitWeight(1, 2))
	split := splitter.New(1, 1, splitter.Best, crit, randsrc.New(1), 1, len(y))
	b := New(Params{MaxDepth: -1, MinSamplesSplit: 10, MinSamplesLeaf: 1}, crit, split)

	tr := tree.New(1, 0)
	b.Build(tr, X, y, P)

	if len(tr.Nodes) != 1 {
		t.Fatalf("min_samples_split=10 on a 4-sample node should force a leaf, got %d nodes", len(tr.Nodes))
	}
}

func TestBuildPureNodeBecomesLeaf(t *testing.T) {
	X := []float64{1, 2, 3}
	y := []int{0, 0, 0}
	P := []int{0, 1, 2}

	crit := criterion.NewGini(1, len(y), 1, []int{1}, unitWeight(1, 1))
	split := splitter.New(1, 1, splitter.Best, crit, randsrc.New(1), 1, len(y))
	b := New(Params{MaxDepth: -1, MinSamplesSplit: 2, MinSamplesLeaf: 1}, crit, split)

	tr := tree.New(1, 2)
	b.Build(tr, X, y, P)

	if len(tr.Nodes) != 1 || !tr.Nodes[0].IsLeaf() {
		t.Fatalf("a single-class node must build as one leaf, got %d nodes", len(tr.Nodes))
	}
}

func TestBuildPreOrderLayout(t *testing.T) {
	// 4 samples split into 2 pure leaves: root at index 0, then the left
	// subtree's nodes precede the right subtree's.
	X := []float64{1, 2, 10, 11}
	y := []int{0, 0, 1, 1}
	P := []int{0, 1, 2, 3}

	crit := criterion.NewGini(1, len(y), 2, []int{2}, unitWeight(1, 2))
	split := splitter.New(1, 1, splitter.Best, crit, randsrc.New(1), 1, len(y))
	b := New(Params{MaxDepth: -1, MinSamplesSplit: 2, MinSamplesLeaf: 1}, crit, split)

	tr := tree.New(1, 4)
	b.Build(tr, X, y, P)

	if tr.Nodes[0].IsLeaf() {
		t.Fatalf("root should split on this separable data")
	}
	left := tr.Nodes[0].LeftChild
	right := tr.Nodes[0].RightChild
	if left != 1 {
		t.Fatalf("left child should be built immediately after the root (index 1), got %d", left)
	}
	if right <= left {
		t.Fatalf("right child index (%d) should follow the fully-built left subtree (index %d)", right, left)
	}
	if math.IsNaN(tr.Nodes[0].Threshold) {
		t.Fatalf("root split threshold should not be NaN for a non-missing feature")
	}
}
