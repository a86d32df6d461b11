// Package builder grows a tree.Tree depth-first over a mutable
// sample-index permutation, using a criterion.Criterion to score candidate
// splits and a splitter.Splitter to find and apply the winning one per node.
//
// Grounded in wlattner-rf/tree/tree.go's fit method: an explicit stack of
// unexpanded node frames replaces recursion so deep trees don't blow the Go
// call stack, the same reason the teacher gives in its own comments. Unlike
// the teacher, frames carry [start,end) bounds into a single shared
// permutation slice rather than a freshly-allocated index slice per node, to
// match the in-place partitioning the spec's Splitter performs.
package builder

import (
	"github.com/gotree/gotree/criterion"
	"github.com/gotree/gotree/splitter"
	"github.com/gotree/gotree/tree"
)

// Params controls when a node is split versus finalized as a leaf.
type Params struct {
	MaxDepth        int // -1 means unlimited
	MinSamplesSplit int
	MinSamplesLeaf  int
	MinWeightLeaf   float64
	MaxNumFeatures  int
	SplitPolicy     splitter.Policy
}

// Builder drives depth-first tree construction.
type Builder struct {
	params Params
	crit   *criterion.Criterion
	split  *splitter.Splitter
}

// New builds a Builder over an already-constructed Criterion and Splitter.
func New(params Params, crit *criterion.Criterion, split *splitter.Splitter) *Builder {
	return &Builder{params: params, crit: crit, split: split}
}

// frame is one unexpanded node awaiting construction.
type frame struct {
	start, end int
	depth      int
	parent     int
	isLeft     bool
}

// Build grows t in place from X (row-major, numFeatures columns), y
// (row-major, numOutputs columns) and the sample permutation P, which is
// mutated in place by the splitter as nodes are partitioned. Construction
// starts at P[0:len(P)] as the root.
func (b *Builder) Build(t *tree.Tree, X []float64, y []int, P []int) {
	stack := []frame{{start: 0, end: len(P), depth: 0, parent: -1, isLeft: false}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nodeIndex, right, left, hasChildren := b.buildNode(t, X, y, P, f)

		if f.parent >= 0 {
			if f.isLeft {
				t.Nodes[f.parent].LeftChild = nodeIndex
			} else {
				t.Nodes[f.parent].RightChild = nodeIndex
			}
		}

		if hasChildren {
			// right pushed before left: left is popped and built first,
			// producing a pre-order, left-to-right node layout.
			stack = append(stack, right, left)
		}
	}
}

// buildNode computes the node's histogram/impurity, decides whether to split
// it, and appends either a leaf or an internal node to t. When it splits, it
// returns the two child frames for Build's stack along with hasChildren =
// true.
func (b *Builder) buildNode(t *tree.Tree, X []float64, y []int, P []int, f frame) (nodeIndex int, right, left frame, hasChildren bool) {
	b.split.InitNode(y, P, f.start, f.end)
	nSamples := f.end - f.start
	weightedN := b.crit.NodeWeightedTotal()
	histogram := b.crit.NodeWeightedHistogram()
	impurity := b.crit.NodeImpurity()

	if b.mustBeLeaf(nSamples, weightedN, impurity, f.depth) {
		nodeIndex = t.AddLeaf(f.depth, impurity, weightedN, histogram)
		return nodeIndex, frame{}, frame{}, false
	}

	result := b.split.SplitNode(X, y, P, f.start, f.end)
	if result.Improvement <= splitter.Epsilon {
		nodeIndex = t.AddLeaf(f.depth, impurity, weightedN, histogram)
		return nodeIndex, frame{}, frame{}, false
	}

	nodeIndex = t.AddSplit(f.depth, result.Feature, result.MissingPolicy, result.Threshold, impurity, result.Improvement, weightedN, histogram)

	right = frame{start: result.PartitionIndex, end: f.end, depth: f.depth + 1, parent: nodeIndex, isLeft: false}
	left = frame{start: f.start, end: result.PartitionIndex, depth: f.depth + 1, parent: nodeIndex, isLeft: true}
	return nodeIndex, right, left, true
}

// mustBeLeaf applies the stopping rules that gate whether a node is even
// considered for splitting: max depth, a pure/near-pure node, and the
// sklearn-style necessary preconditions min_samples_split, 2*min_samples_leaf
// and 2*min_weight_leaf (a node smaller than twice the leaf minimum cannot
// possibly produce two admissible children, so it is never worth asking the
// splitter).
func (b *Builder) mustBeLeaf(nSamples int, weightedN, impurity float64, depth int) bool {
	if impurity <= splitter.Epsilon {
		return true
	}
	if b.params.MaxDepth >= 0 && depth >= b.params.MaxDepth {
		return true
	}
	if b.params.MinSamplesSplit > 0 && nSamples < b.params.MinSamplesSplit {
		return true
	}
	if b.params.MinSamplesLeaf > 0 && nSamples < 2*b.params.MinSamplesLeaf {
		return true
	}
	if b.params.MinWeightLeaf > 0 && weightedN < 2*b.params.MinWeightLeaf {
		return true
	}
	return false
}
