// Package forest is the public façade: Classifier fits and
// predicts with a single tree.Tree, RandomForestClassifier fans a bootstrap
// ensemble of them out across a worker pool. Both are configured with the
// same functional-option pattern wlattner-rf/tree and wlattner-rf/forest use
// (MinSplit, MaxFeatures, NumTrees, ...), generalized to the criterion/
// splitter/builder/tree packages underneath.
package forest

import (
	"github.com/gotree/gotree/internal/errs"
	"github.com/gotree/gotree/splitter"
)

// Option configures a Classifier or RandomForestClassifier.
type Option func(*config)

type config struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	minWeightLeaf   float64
	maxFeatures     int
	criterionName   string
	splitPolicy     splitter.Policy
	classBalanced   bool
	classWeight     map[string]float64
	randomState     int64
	numTrees        int
	numWorkers      int
	computeOOB      bool
}

func defaultConfig() config {
	return config{
		maxDepth:        -1,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
		minWeightLeaf:   0,
		maxFeatures:     -1,
		criterionName:   "gini",
		splitPolicy:     splitter.Best,
		classBalanced:   true,
		randomState:     -1,
		numTrees:        10,
		numWorkers:      1,
	}
}

// MaxDepth limits the depth of the fitted tree(s). -1 grows a full tree,
// subject to MinSamplesSplit/MinSamplesLeaf.
func MaxDepth(n int) Option { return func(c *config) { c.maxDepth = n } }

// MinSamplesSplit sets the minimum node size for a split to be attempted.
func MinSamplesSplit(n int) Option { return func(c *config) { c.minSamplesSplit = n } }

// MinSamplesLeaf sets the minimum number of samples a leaf must hold; a node
// smaller than 2*n is never split.
func MinSamplesLeaf(n int) Option { return func(c *config) { c.minSamplesLeaf = n } }

// MinWeightLeaf sets the minimum weighted sample count a leaf must hold,
// using the same 2x necessary-precondition rule as MinSamplesLeaf.
func MinWeightLeaf(w float64) Option { return func(c *config) { c.minWeightLeaf = w } }

// MaxFeatures limits the number of features sampled per node before the
// search may stop (the partial Fisher-Yates "M" parameter). -1 considers
// all features in a Classifier; a RandomForestClassifier turns -1 into the
// integer square root of the feature count (at least 1) for its trees.
func MaxFeatures(n int) Option { return func(c *config) { c.maxFeatures = n } }

// Criterion selects the impurity measure, "gini" or "entropy".
func Criterion(name string) Option { return func(c *config) { c.criterionName = name } }

// SplitPolicy selects how thresholds are searched: splitter.Best (exhaustive
// sweep) or splitter.Random (one random draw per sampled feature).
func SplitPolicy(p splitter.Policy) Option { return func(c *config) { c.splitPolicy = p } }

// ClassBalanced selects inverse-class-frequency weighting, n/(K*count), per
// output column. This is the default; the option exists to switch back to
// it after ClassWeight.
func ClassBalanced() Option {
	return func(c *config) { c.classBalanced = true; c.classWeight = nil }
}

// ClassWeight supplies an explicit label -> weight map, applied identically
// to every output column (a class label absent from the map gets weight 1).
// Selecting an explicit ClassWeight implies not class-balanced; per spec,
// fit requires one or the other.
func ClassWeight(w map[string]float64) Option {
	return func(c *config) { c.classBalanced = false; c.classWeight = w }
}

// RandomState seeds the splitter's PRNG. -1 selects non-deterministic
// seeding.
func RandomState(seed int64) Option { return func(c *config) { c.randomState = seed } }

// NumTrees sets the ensemble size. Only meaningful for RandomForestClassifier.
func NumTrees(n int) Option { return func(c *config) { c.numTrees = n } }

// NumWorkers sets the number of concurrent tree-fitting workers. Only
// meaningful for RandomForestClassifier.
func NumWorkers(n int) Option { return func(c *config) { c.numWorkers = n } }

// ComputeOOB enables out-of-bag confusion matrix / accuracy accumulation.
// Only meaningful for RandomForestClassifier.
func ComputeOOB() Option { return func(c *config) { c.computeOOB = true } }

// validate checks hyperparameter combinations that can only be judged once
// all options are applied.
func (c *config) validate() error {
	if c.maxFeatures != -1 && c.maxFeatures <= 0 {
		return errs.NewInvalidHyperparameter("MaxFeatures", c.maxFeatures, "must be -1 (all features) or a positive integer")
	}
	if c.maxDepth < -1 {
		return errs.NewInvalidHyperparameter("MaxDepth", c.maxDepth, "must be -1 (unlimited) or non-negative")
	}
	if c.minSamplesSplit < 0 {
		return errs.NewInvalidHyperparameter("MinSamplesSplit", c.minSamplesSplit, "must be non-negative")
	}
	if c.minSamplesLeaf < 0 {
		return errs.NewInvalidHyperparameter("MinSamplesLeaf", c.minSamplesLeaf, "must be non-negative")
	}
	if c.splitPolicy != splitter.Best && c.splitPolicy != splitter.Random {
		return errs.NewInvalidHyperparameter("SplitPolicy", c.splitPolicy, "must be splitter.Best or splitter.Random")
	}
	if c.criterionName != "gini" && c.criterionName != "entropy" {
		return errs.NewInvalidHyperparameter("Criterion", c.criterionName, `must be "gini" or "entropy"`)
	}
	if !c.classBalanced && c.classWeight == nil {
		return errs.NewInvalidHyperparameter("ClassWeight", nil,
			"an explicit class weight map is required when ClassBalanced is not in effect")
	}
	if c.numTrees <= 0 {
		return errs.NewInvalidHyperparameter("NumTrees", c.numTrees, "must be positive")
	}
	return nil
}
