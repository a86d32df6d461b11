// Package tree is the append-only parallel-array node store built by
// package builder and walked by package forest at predict time.
//
// Grounded in wlattner-rf/tree/tree.go's Node/Classifier pair, but traded for
// a flat, pre-allocated slice of Node values addressed by index instead of a
// pointer tree — the spec's depth-first stack construction pushes node
// indices rather than *Node, and a flat store lets feature importance walk
// the tree without recursion.
package tree

import (
	"math"

	"github.com/gotree/gotree/splitter"
)

// leafMarker is stored in FeatureIndex for leaf nodes.
const leafMarker = -1

// Node is one entry in a Tree's flat node store. A node with FeatureIndex ==
// -1 is a leaf; its Histogram is the predicted class distribution.
type Node struct {
	LeftChild     int // index into Tree.Nodes, -1 for a leaf
	RightChild    int
	FeatureIndex  int
	MissingPolicy splitter.MissingPolicy
	Threshold     float64
	Impurity      float64
	Improvement   float64
	Depth         int
	NumSamples    float64 // weighted sample count reaching this node
	Histogram     [][]float64
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool { return n.FeatureIndex == leafMarker }

// Tree is an append-only store of Nodes, built depth-first by package
// builder starting at index 0 (the root).
type Tree struct {
	Nodes      []Node
	MaxDepth   int
	NumOutputs int
}

// New returns an empty Tree, its node slice pre-reserved for a balanced tree
// of the given expected depth (the builder may exceed this; the slice grows
// as any append-only slice does).
func New(numOutputs, expectedDepth int) *Tree {
	capacity := 0
	if expectedDepth > 0 && expectedDepth < 30 {
		capacity = (1 << uint(expectedDepth+1)) - 1
	}
	return &Tree{
		Nodes:      make([]Node, 0, capacity),
		NumOutputs: numOutputs,
	}
}

// AddLeaf appends a leaf node and returns its index.
func (t *Tree) AddLeaf(depth int, impurity, numSamples float64, histogram [][]float64) int {
	t.Nodes = append(t.Nodes, Node{
		LeftChild:     leafMarker,
		RightChild:    leafMarker,
		FeatureIndex:  leafMarker,
		MissingPolicy: splitter.MissingNone,
		Impurity:      impurity,
		Depth:         depth,
		NumSamples:    numSamples,
		Histogram:     histogram,
	})
	if depth > t.MaxDepth {
		t.MaxDepth = depth
	}
	return len(t.Nodes) - 1
}

// AddSplit appends an internal node and returns its index. The children are
// not yet known at append time: the builder writes each child's index into
// LeftChild or RightChild as that child is appended, and SetChildren records
// both at once for a tree assembled by hand.
func (t *Tree) AddSplit(depth, feature int, missingPolicy splitter.MissingPolicy, threshold, impurity, improvement, numSamples float64, histogram [][]float64) int {
	t.Nodes = append(t.Nodes, Node{
		LeftChild:     leafMarker,
		RightChild:    leafMarker,
		FeatureIndex:  feature,
		MissingPolicy: missingPolicy,
		Threshold:     threshold,
		Impurity:      impurity,
		Improvement:   improvement,
		Depth:         depth,
		NumSamples:    numSamples,
		Histogram:     histogram,
	})
	if depth > t.MaxDepth {
		t.MaxDepth = depth
	}
	return len(t.Nodes) - 1
}

// SetChildren records the node indices of an internal node's children.
func (t *Tree) SetChildren(node, left, right int) {
	t.Nodes[node].LeftChild = left
	t.Nodes[node].RightChild = right
}

// routeLeft decides, for one internal node, whether a sample with the given
// feature value goes left. NaN is routed per the node's MissingPolicy;
// MissingPolicy == MissingNone for a NaN value at predict time falls back to
// the majority convention (left), since the tree was trained with no
// missing values for that feature and has no better information.
func routeLeft(n *Node, value float64) bool {
	if math.IsNaN(value) {
		switch n.MissingPolicy {
		case splitter.MissingRight:
			return false
		default:
			return true
		}
	}
	return value <= n.Threshold
}

// PredictProba walks the tree for one sample's feature row (length
// numFeatures, indexed directly) and returns the leaf's per-output
// probability vectors, shape [O][Kmax].
func (t *Tree) PredictProba(x []float64) [][]float64 {
	i := 0
	for !t.Nodes[i].IsLeaf() {
		n := &t.Nodes[i]
		if routeLeft(n, x[n.FeatureIndex]) {
			i = n.LeftChild
		} else {
			i = n.RightChild
		}
	}
	return normalizeHistogram(t.Nodes[i].Histogram)
}

// normalizeHistogram L1-normalizes each output's row, falling back to a
// uniform distribution if the row sums to 0 (possible only for a degenerate,
// zero-weight leaf).
func normalizeHistogram(hist [][]float64) [][]float64 {
	out := make([][]float64, len(hist))
	for o, row := range hist {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		norm := make([]float64, len(row))
		if sum > 0 {
			for c, v := range row {
				norm[c] = v / sum
			}
		} else {
			u := 1.0 / float64(len(row))
			for c := range norm {
				norm[c] = u
			}
		}
		out[o] = norm
	}
	return out
}

// ComputeFeatureImportance sums each internal node's recorded impurity
// improvement by feature and L1-normalizes the result. Returns a zero vector
// if the tree is a single leaf (total improvement 0).
func (t *Tree) ComputeFeatureImportance(numFeatures int) []float64 {
	imp := make([]float64, numFeatures)
	total := 0.0
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			continue
		}
		imp[n.FeatureIndex] += n.Improvement
		total += n.Improvement
	}
	if total <= 0 {
		return imp
	}
	for i := range imp {
		imp[i] /= total
	}
	return imp
}
