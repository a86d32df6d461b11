// Package splitter selects the best axis-aligned split for one node's
// sample-index slice, driving a criterion.Criterion through an incremental
// threshold sweep and partitioning the slice in place.
//
// Grounded in wlattner-rf/tree/build.go's splitter type (feature sampling via
// partial Fisher-Yates, in-place partition of the index slice) generalized to
// weighted multi-output histograms and missing-value routing as described by
// the original decisiontree::Splitter.
package splitter

import (
	"math"

	"github.com/gotree/gotree/criterion"
	"github.com/gotree/gotree/internal/randsrc"
)

// Policy selects how a node's winning split is chosen.
type Policy int

const (
	// Best evaluates every admissible threshold for each sampled feature.
	Best Policy = iota
	// Random draws a single random threshold per sampled feature.
	Random
)

// MissingPolicy records where NaN-valued samples were routed by the winning
// split.
type MissingPolicy int8

const (
	// MissingNone indicates no missing values were present for the winning
	// feature.
	MissingNone MissingPolicy = -1
	// MissingLeft routes NaN-valued samples to the left child.
	MissingLeft MissingPolicy = 0
	// MissingRight routes NaN-valued samples to the right child.
	MissingRight MissingPolicy = 1
)

// Epsilon is the split-search tolerance, shared with the criterion package.
const Epsilon = criterion.Epsilon

// Result is the outcome of searching for a split at one node.
type Result struct {
	Feature        int
	PartitionIndex int // global index into P: left = P[start:PartitionIndex], right = P[PartitionIndex:end]
	Threshold      float64
	Improvement    float64
	MissingPolicy  MissingPolicy
}

// Splitter searches for the best split of one node's slice of the sample
// permutation.
type Splitter struct {
	numFeatures    int
	maxNumFeatures int
	policy         Policy
	crit           *criterion.Criterion
	rng            *randsrc.Source
	minLeaf        int

	fIndices []int
	xBuf     []float64
	qWork    []int
	qBest    []int
}

// New builds a Splitter. numFeatures is F; maxNumFeatures is M (the number of
// features that must be tried before the search may stop, per the partial
// Fisher-Yates rule); minLeaf gates candidate splits that would leave either
// child with fewer than minLeaf samples.
func New(numFeatures, maxNumFeatures int, policy Policy, crit *criterion.Criterion, rng *randsrc.Source, minLeaf, numSamples int) *Splitter {
	fIndices := make([]int, numFeatures)
	for i := range fIndices {
		fIndices[i] = i
	}
	return &Splitter{
		numFeatures:    numFeatures,
		maxNumFeatures: maxNumFeatures,
		policy:         policy,
		crit:           crit,
		rng:            rng,
		minLeaf:        minLeaf,
		fIndices:       fIndices,
		xBuf:           make([]float64, numSamples),
		qWork:          make([]int, numSamples),
		qBest:          make([]int, numSamples),
	}
}

// InitNode computes the node's weighted histogram and impurity from
// P[start:end]. Must be called before SplitNode.
func (s *Splitter) InitNode(y []int, P []int, start, end int) {
	s.crit.ComputeNodeHistogram(y, P, start, end)
	s.crit.ComputeNodeImpurity()
}

// SplitNode searches sampled features for the best split of P[start:end],
// partitioning P in place to match the winning feature's ordering. The
// returned Improvement is 0 if no feature produced a usable split.
//
// Feature sampling runs past maxNumFeatures as long as the running best
// improvement has not exceeded Epsilon, per the original
// decisiontree::Splitter's stop condition: keep drawing features (not just
// until one is non-constant) until either i reaches 0 or a usable split has
// been found.
func (s *Splitter) SplitNode(X []float64, y []int, P []int, start, end int) Result {
	n := end - start
	best := Result{MissingPolicy: MissingNone}

	i := s.numFeatures
	for i > (s.numFeatures-s.maxNumFeatures) || (best.Improvement < Epsilon && i > 0) {
		j := 0
		if i > 0 {
			j = s.rng.UniformInt(0, i)
		}
		i--
		s.fIndices[i], s.fIndices[j] = s.fIndices[j], s.fIndices[i]
		feature := s.fIndices[i]

		copy(s.qWork[:n], P[start:end])

		var cand Result
		switch s.policy {
		case Random:
			cand, _ = s.randomSplitFeature(X, y, feature, start, n)
		default:
			cand, _ = s.bestSplitFeature(X, y, feature, start, n)
		}

		if cand.Improvement > best.Improvement {
			best = cand
			best.Feature = feature
			copy(s.qBest[:n], s.qWork[:n])
		}
	}

	if best.Improvement > Epsilon {
		copy(P[start:end], s.qBest[:n])
	}
	return best
}

// bestSplitFeature implements the "best" split policy for one feature,
// following spec §4.2's per-feature best split algorithm. ok reports whether
// the feature was non-constant; SplitNode's stop condition no longer depends
// on it (it now tracks the running best improvement directly) but the flag
// is kept for callers that only care whether a feature was even considered.
func (s *Splitter) bestSplitFeature(X []float64, y []int, feature, start, n int) (Result, bool) {
	fX := s.xBuf[:n]
	Q := s.qWork[:n]
	numFeatures := s.numFeatures

	for i := 0; i < n; i++ {
		fX[i] = X[Q[i]*numFeatures+feature]
	}

	// partition missing values to the front
	m := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(fX[i]) {
			fX[i], fX[m] = fX[m], fX[i]
			Q[i], Q[m] = Q[m], Q[i]
			m++
		}
	}

	if m == n {
		return Result{}, false
	}

	var tentative Result
	haveTentative := false
	if m > 0 {
		s.crit.ComputeNodeHistogramMissing(y, Q, m)
		s.crit.ComputeNodeImpurityMissing()
		tentative = Result{
			PartitionIndex: start + m,
			Threshold:      math.NaN(),
			Improvement:    s.crit.ComputeImpurityImprovementMissing(),
			MissingPolicy:  MissingLeft,
		}
		haveTentative = true
		if s.crit.NodeImpurityNonMissing() < Epsilon {
			return tentative, true
		}
	}

	fxMin, fxMax := fX[m], fX[m]
	for i := m + 1; i < n; i++ {
		if fX[i] > fxMax {
			fxMax = fX[i]
		} else if fX[i] < fxMin {
			fxMin = fX[i]
		}
	}

	if fxMax-fxMin <= Epsilon {
		if haveTentative {
			return tentative, true
		}
		return Result{}, false
	}

	if m == 0 {
		s.crit.InitChildrenHistogram()
	} else {
		s.crit.InitChildrenHistogramNonMissing()
	}

	pairedSort(fX, Q, m, n)

	index, nextIndex := m, m
	var best Result
	for nextIndex < n {
		if fX[nextIndex]+Epsilon >= fX[n-1] {
			break
		}
		for nextIndex+1 < n && fX[nextIndex]+Epsilon >= fX[nextIndex+1] {
			nextIndex++
		}
		nextIndex++

		nLeft, nRight := nextIndex-m, n-nextIndex
		if s.minLeaf > 0 && (nLeft < s.minLeaf || nRight < s.minLeaf) {
			index = nextIndex
			continue
		}

		s.crit.UpdateChildrenHistogram(y, Q, nextIndex)
		s.crit.ComputeChildrenImpurity()

		var improvement float64
		if m == 0 {
			improvement = s.crit.ComputeImpurityImprovement()
		} else {
			improvement = s.crit.ComputeImpurityImprovementNonMissing()
		}

		if improvement > best.Improvement {
			best = Result{
				PartitionIndex: start + nextIndex,
				Threshold:      (fX[index] + fX[nextIndex]) / 2.0,
				Improvement:    improvement,
			}
		}

		if s.crit.RightImpurity() < Epsilon {
			break
		}
		index = nextIndex
	}

	if m == 0 {
		best.MissingPolicy = MissingNone
		return best, true
	}

	// m > 0: decide whether missings join left or right of the winning
	// threshold.
	if best.Improvement <= 0 {
		return tentative, true
	}
	s.crit.InitChildrenHistogramNonMissing()
	s.crit.UpdateChildrenHistogram(y, Q, best.PartitionIndex-start)
	s.crit.ComputeChildrenImpurityMissing()
	leftImprovement := s.crit.ComputeLeftImpurityImprovementMissing()
	rightImprovement := s.crit.ComputeRightImpurityImprovementMissing()

	result := tentative
	if leftImprovement > rightImprovement {
		if leftImprovement > tentative.Improvement {
			result = Result{
				PartitionIndex: best.PartitionIndex,
				Threshold:      best.Threshold,
				Improvement:    leftImprovement,
				MissingPolicy:  MissingLeft,
			}
		}
	} else {
		if rightImprovement > tentative.Improvement {
			rotateMissingsToEnd(Q, m, n)
			result = Result{
				PartitionIndex: best.PartitionIndex - m,
				Threshold:      best.Threshold,
				Improvement:    rightImprovement,
				MissingPolicy:  MissingRight,
			}
		}
	}
	return result, true
}

// rotateMissingsToEnd moves Q[0:m] (the missing-value prefix) to the end of
// Q[0:n], shifting the non-missing block left to fill the gap. Needed when
// the winning split routes missings to the right child, since the builder's
// child frames assume a single contiguous partition point.
func rotateMissingsToEnd(Q []int, m, n int) {
	missing := append([]int(nil), Q[:m]...)
	copy(Q[0:n-m], Q[m:n])
	copy(Q[n-m:n], missing)
}

// randomSplitFeature implements the "random" split policy for one feature:
// draw a single threshold uniformly and partition once, without a sweep.
// Mixed missing/non-missing samples are not supported (see spec §9 open
// question 3, decision (a)); callers must validate at fit time that no
// feature has missing values when split_policy=random. A feature with
// missing values here simply reports no improvement, collapsing to a leaf
// for that feature rather than propagating an internal error.
func (s *Splitter) randomSplitFeature(X []float64, y []int, feature, start, n int) (Result, bool) {
	fX := s.xBuf[:n]
	Q := s.qWork[:n]
	numFeatures := s.numFeatures

	for i := 0; i < n; i++ {
		fX[i] = X[Q[i]*numFeatures+feature]
	}

	m := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(fX[i]) {
			fX[i], fX[m] = fX[m], fX[i]
			Q[i], Q[m] = Q[m], Q[i]
			m++
		}
	}

	if m == n {
		return Result{}, false
	}
	if m > 0 {
		return Result{}, false
	}

	fxMin, fxMax := fX[0], fX[0]
	for i := 1; i < n; i++ {
		if fX[i] > fxMax {
			fxMax = fX[i]
		} else if fX[i] < fxMin {
			fxMin = fX[i]
		}
	}
	if fxMax-fxMin <= Epsilon {
		return Result{}, false
	}

	threshold := s.rng.UniformReal(fxMin+Epsilon, fxMax)

	index, nextIndex := 0, n
	for index < nextIndex {
		if fX[index] <= threshold {
			index++
		} else {
			nextIndex--
			fX[index], fX[nextIndex] = fX[nextIndex], fX[index]
			Q[index], Q[nextIndex] = Q[nextIndex], Q[index]
		}
	}

	nLeft, nRight := nextIndex, n-nextIndex
	if s.minLeaf > 0 && (nLeft < s.minLeaf || nRight < s.minLeaf) {
		return Result{}, true
	}

	s.crit.InitChildrenHistogram()
	s.crit.UpdateChildrenHistogram(y, Q, nextIndex)
	s.crit.ComputeChildrenImpurity()
	improvement := s.crit.ComputeImpurityImprovement()

	return Result{
		PartitionIndex: start + nextIndex,
		Threshold:      threshold,
		Improvement:    improvement,
		MissingPolicy:  MissingNone,
	}, true
}
