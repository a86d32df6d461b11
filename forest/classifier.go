package forest

import (
	"math"

	"github.com/gotree/gotree/builder"
	"github.com/gotree/gotree/criterion"
	"github.com/gotree/gotree/internal/errs"
	"github.com/gotree/gotree/internal/logging"
	"github.com/gotree/gotree/internal/randsrc"
	"github.com/gotree/gotree/splitter"
	"github.com/gotree/gotree/tree"
)

// Classifier is a single decision tree classifier, supporting multiple
// outputs (columns of Y fit jointly, sharing one tree) and NaN-valued
// missing features.
type Classifier struct {
	cfg config

	NumFeatures int
	NumOutputs  int
	Classes     [][]string // per-output id -> label

	T *tree.Tree
}

// NewClassifier returns a configured, unfitted Classifier. With no options
// it is equivalent to:
//
//	NewClassifier(MaxDepth(-1), MinSamplesSplit(2), MinSamplesLeaf(1),
//		MaxFeatures(-1), Criterion("gini"), SplitPolicy(splitter.Best))
func NewClassifier(options ...Option) (*Classifier, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Classifier{cfg: cfg}, nil
}

// Fit constructs the tree from row-major features X (n rows of numFeatures
// values each, NaN for missing) and multi-output labels Y (n rows of
// numOutputs string labels each).
func (c *Classifier) Fit(X [][]float64, Y [][]string) error {
	if len(X) == 0 {
		return errs.NewShapeMismatch("Classifier.Fit", 0, 1)
	}
	if len(X) != len(Y) {
		return errs.NewShapeMismatch("Classifier.Fit: X and Y row counts", len(Y), len(X))
	}
	numFeatures := len(X[0])
	numOutputs := len(Y[0])

	if c.cfg.splitPolicy == splitter.Random {
		if hasMissing(X) {
			return errs.NewInvalidHyperparameter("SplitPolicy", "random",
				"random split policy does not support missing (NaN) feature values")
		}
	}

	yFlat, classes, numClasses := encodeLabels(Y, numOutputs)
	maxNumClasses := 0
	for _, k := range numClasses {
		if k > maxNumClasses {
			maxNumClasses = k
		}
	}

	classWeight := deriveClassWeight(c.cfg.classBalanced, c.cfg.classWeight, classes, yFlat, numOutputs, maxNumClasses, numClasses)

	impurityFn := criterion.Gini
	if c.cfg.criterionName == "entropy" {
		impurityFn = criterion.Entropy
	}

	maxNumFeatures := c.cfg.maxFeatures
	if maxNumFeatures < 0 {
		maxNumFeatures = numFeatures
	}

	crit := criterion.New(impurityFn, numOutputs, len(X), maxNumClasses, numClasses, classWeight)
	rng := randsrc.New(c.cfg.randomState)
	split := splitter.New(numFeatures, maxNumFeatures, c.cfg.splitPolicy, crit, rng, c.cfg.minSamplesLeaf, len(X))
	b := builder.New(builder.Params{
		MaxDepth:        c.cfg.maxDepth,
		MinSamplesSplit: c.cfg.minSamplesSplit,
		MinSamplesLeaf:  c.cfg.minSamplesLeaf,
		MinWeightLeaf:   c.cfg.minWeightLeaf,
		MaxNumFeatures:  maxNumFeatures,
		SplitPolicy:     c.cfg.splitPolicy,
	}, crit, split)

	xFlat := flattenX(X)
	P := identityPermutation(len(X))

	t := tree.New(numOutputs, expectedDepth(len(X)))
	b.Build(t, xFlat, yFlat, P)

	c.NumFeatures = numFeatures
	c.NumOutputs = numOutputs
	c.Classes = classes
	c.T = t

	lg := logging.Logger()
	lg.Debug().
		Int("num_nodes", len(t.Nodes)).
		Int("max_depth", t.MaxDepth).
		Msg("tree fit")

	return nil
}

// PredictProba returns, per output, the class probability vector for each
// row of X.
func (c *Classifier) PredictProba(X [][]float64) ([][][]float64, error) {
	if c.T == nil {
		return nil, errs.NewInvalidState("Classifier has not been fit")
	}
	out := make([][][]float64, len(X))
	for i, row := range X {
		if len(row) != c.NumFeatures {
			return nil, errs.NewShapeMismatch("Classifier.PredictProba row width", len(row), c.NumFeatures)
		}
		out[i] = c.T.PredictProba(row)
	}
	return out, nil
}

// Predict returns, per output, the most probable class label for each row
// of X.
func (c *Classifier) Predict(X [][]float64) ([][]string, error) {
	proba, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}
	labels := make([][]string, len(X))
	for i, row := range proba {
		labels[i] = make([]string, c.NumOutputs)
		for o, probs := range row {
			labels[i][o] = c.Classes[o][argmax(probs)]
		}
	}
	return labels, nil
}

// FeatureImportances returns the L1-normalized feature importance vector.
func (c *Classifier) FeatureImportances() []float64 {
	if c.T == nil {
		return nil
	}
	return c.T.ComputeFeatureImportance(c.NumFeatures)
}

func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}

func hasMissing(X [][]float64) bool {
	for _, row := range X {
		for _, v := range row {
			if math.IsNaN(v) {
				return true
			}
		}
	}
	return false
}

func flattenX(X [][]float64) []float64 {
	if len(X) == 0 {
		return nil
	}
	numFeatures := len(X[0])
	out := make([]float64, len(X)*numFeatures)
	for i, row := range X {
		copy(out[i*numFeatures:(i+1)*numFeatures], row)
	}
	return out
}

func identityPermutation(n int) []int {
	P := make([]int, n)
	for i := range P {
		P[i] = i
	}
	return P
}

func expectedDepth(numSamples int) int {
	d := 0
	for n := numSamples; n > 1; n >>= 1 {
		d++
	}
	return d
}

// encodeLabels assigns each output column's distinct labels integer ids in
// first-seen order and returns the flattened [N*O] id matrix, the id->label
// tables per output, and each output's class count.
func encodeLabels(Y [][]string, numOutputs int) ([]int, [][]string, []int) {
	uniq := make([]map[string]int, numOutputs)
	classes := make([][]string, numOutputs)
	for o := range uniq {
		uniq[o] = make(map[string]int)
	}

	yFlat := make([]int, len(Y)*numOutputs)
	for i, row := range Y {
		for o, label := range row {
			id, ok := uniq[o][label]
			if !ok {
				id = len(classes[o])
				uniq[o][label] = id
				classes[o] = append(classes[o], label)
			}
			yFlat[i*numOutputs+o] = id
		}
	}

	numClasses := make([]int, numOutputs)
	for o := range numClasses {
		numClasses[o] = len(classes[o])
	}
	return yFlat, classes, numClasses
}

// deriveClassWeight builds the [O*Kmax] weight table. When balanced, it is
// inverse class frequency (n / (K*count)) per output, mirroring
// scikit-learn's class_weight="balanced". Otherwise explicit must be
// non-nil (config.validate already rejected the alternative): each class's
// weight is looked up by its label, defaulting to 1 for a label the caller
// didn't mention.
func deriveClassWeight(balanced bool, explicit map[string]float64, classes [][]string, yFlat []int, numOutputs, maxNumClasses int, numClasses []int) []float64 {
	w := make([]float64, numOutputs*maxNumClasses)

	if !balanced {
		for o := 0; o < numOutputs; o++ {
			for cls := 0; cls < numClasses[o]; cls++ {
				weight, ok := explicit[classes[o][cls]]
				if !ok {
					weight = 1
				}
				w[o*maxNumClasses+cls] = weight
			}
		}
		return w
	}

	n := len(yFlat) / numOutputs
	counts := make([][]int, numOutputs)
	for o := range counts {
		counts[o] = make([]int, maxNumClasses)
	}
	for i := 0; i < n; i++ {
		for o := 0; o < numOutputs; o++ {
			counts[o][yFlat[i*numOutputs+o]]++
		}
	}
	for o := 0; o < numOutputs; o++ {
		k := numClasses[o]
		for cls := 0; cls < k; cls++ {
			if counts[o][cls] > 0 {
				w[o*maxNumClasses+cls] = float64(n) / (float64(k) * float64(counts[o][cls]))
			}
		}
	}
	return w
}
