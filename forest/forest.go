package forest

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gotree/gotree/internal/errs"
	"github.com/gotree/gotree/internal/logging"
	"github.com/gotree/gotree/internal/randsrc"
)

// RandomForestClassifier fits an ensemble of bootstrap-sampled Classifiers
// and aggregates their predicted probabilities.
//
// Grounded in wlattner-rf/forest/forest.go's worker-pool fan-out
// (in/out channels feeding a fixed number of goroutines); each tree here
// additionally gets its own randsrc.Source (rather than sharing
// math/rand's global source) and a uuid tag for log correlation across
// concurrent fits.
type RandomForestClassifier struct {
	cfg config

	NumFeatures     int
	NumOutputs      int
	Classes         [][]string
	Trees           []*Classifier
	ConfusionMatrix [][]int
	OOBAccuracy     float64
}

// NewRandomForestClassifier returns a configured, unfitted ensemble. With no
// options it is equivalent to:
//
//	NewRandomForestClassifier(NumTrees(10), NumWorkers(1), MaxFeatures(-1),
//		MinSamplesSplit(2), MinSamplesLeaf(1), MaxDepth(-1), Criterion("gini"))
func NewRandomForestClassifier(options ...Option) (*RandomForestClassifier, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &RandomForestClassifier{cfg: cfg}, nil
}

type treeJob struct {
	id     uuid.UUID
	seed   int64
	sample []int // bootstrap row indices, with repeats
	inBag  []bool
}

type treeResult struct {
	job *treeJob
	clf *Classifier
	err error
}

// Fit bootstrap-samples len(X) rows NumTrees times and fits one Classifier
// per sample, distributing the work across NumWorkers goroutines. If
// ComputeOOB was set, it also accumulates an out-of-bag confusion matrix and
// accuracy across trees for which a given row was never sampled.
func (f *RandomForestClassifier) Fit(X [][]float64, Y [][]string) error {
	if len(X) == 0 {
		return errs.NewShapeMismatch("RandomForestClassifier.Fit", 0, 1)
	}
	if len(X) != len(Y) {
		return errs.NewShapeMismatch("RandomForestClassifier.Fit: X and Y row counts", len(Y), len(X))
	}

	numFeatures := len(X[0])
	numOutputs := len(Y[0])

	maxFeatures := f.cfg.maxFeatures
	if maxFeatures < 0 {
		maxFeatures = sqrtInt(numFeatures)
	}

	seedSrc := randsrc.New(f.cfg.randomState)

	jobs := make([]*treeJob, f.cfg.numTrees)
	for i := range jobs {
		sample, inBag := bootstrapSample(len(X), seedSrc)
		jobs[i] = &treeJob{id: uuid.New(), seed: int64(seedSrc.UniformInt(1, 1<<62)), sample: sample, inBag: inBag}
	}

	in := make(chan *treeJob)
	out := make(chan treeResult)

	numWorkers := f.cfg.numWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range in {
				classWeightOpt := ClassBalanced()
				if !f.cfg.classBalanced {
					classWeightOpt = ClassWeight(f.cfg.classWeight)
				}
				clf, _ := NewClassifier(
					MaxDepth(f.cfg.maxDepth),
					MinSamplesSplit(f.cfg.minSamplesSplit),
					MinSamplesLeaf(f.cfg.minSamplesLeaf),
					MinWeightLeaf(f.cfg.minWeightLeaf),
					MaxFeatures(maxFeatures),
					Criterion(f.cfg.criterionName),
					SplitPolicy(f.cfg.splitPolicy),
					classWeightOpt,
					RandomState(job.seed),
				)
				xSample := make([][]float64, len(job.sample))
				ySample := make([][]string, len(job.sample))
				for i, rowIdx := range job.sample {
					xSample[i] = X[rowIdx]
					ySample[i] = Y[rowIdx]
				}
				err := clf.Fit(xSample, ySample)
				lg := logging.Logger()
				lg.Debug().Str("tree_id", job.id.String()).Err(err).Msg("forest worker fit tree")
				out <- treeResult{job: job, clf: clf, err: err}
			}
		}()
	}

	go func() {
		for _, job := range jobs {
			in <- job
		}
		close(in)
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	trees := make([]*Classifier, 0, len(jobs))
	var oob *oobAccumulator
	if f.cfg.computeOOB {
		oob = newOOBAccumulator(len(X))
	}

	for res := range out {
		if res.err != nil {
			return errs.Wrap(res.err, "fitting one tree of the forest")
		}
		trees = append(trees, res.clf)
		if oob != nil {
			oob.accumulate(X, Y, res.job.inBag, res.clf)
		}
	}

	f.NumFeatures = numFeatures
	f.NumOutputs = numOutputs
	_, f.Classes, _ = encodeLabels(Y, numOutputs)
	f.Trees = trees

	if oob != nil {
		f.ConfusionMatrix, f.OOBAccuracy = oob.compute(Y, f.Classes)
	}

	return nil
}

// PredictProba averages each tree's predicted probability vector per
// output.
func (f *RandomForestClassifier) PredictProba(X [][]float64) ([][][]float64, error) {
	if len(f.Trees) == 0 {
		return nil, errs.NewInvalidState("RandomForestClassifier has not been fit")
	}

	out := make([][][]float64, len(X))
	for i := range out {
		out[i] = make([][]float64, f.NumOutputs)
		for o := 0; o < f.NumOutputs; o++ {
			out[i][o] = make([]float64, len(f.Classes[o]))
		}
	}

	// each tree numbers classes in first-seen order of its own bootstrap
	// sample, so map its class ids onto the forest's by label.
	classIndex := make([]map[string]int, f.NumOutputs)
	for o := range classIndex {
		classIndex[o] = make(map[string]int, len(f.Classes[o]))
		for c, label := range f.Classes[o] {
			classIndex[o][label] = c
		}
	}

	nTrees := float64(len(f.Trees))
	for _, t := range f.Trees {
		proba, err := t.PredictProba(X)
		if err != nil {
			return nil, err
		}
		for i, row := range proba {
			for o, probs := range row {
				for c, p := range probs {
					if c >= len(t.Classes[o]) {
						continue
					}
					out[i][o][classIndex[o][t.Classes[o][c]]] += p / nTrees
				}
			}
		}
	}
	return out, nil
}

// Predict returns the forest's majority-vote label per output for each row.
func (f *RandomForestClassifier) Predict(X [][]float64) ([][]string, error) {
	proba, err := f.PredictProba(X)
	if err != nil {
		return nil, err
	}
	labels := make([][]string, len(X))
	for i, row := range proba {
		labels[i] = make([]string, f.NumOutputs)
		for o, probs := range row {
			labels[i][o] = f.Classes[o][argmax(probs)]
		}
	}
	return labels, nil
}

// FeatureImportances averages each tree's normalized feature importance.
func (f *RandomForestClassifier) FeatureImportances() []float64 {
	imp := make([]float64, f.NumFeatures)
	if len(f.Trees) == 0 {
		return imp
	}
	nTrees := float64(len(f.Trees))
	for _, t := range f.Trees {
		for i, v := range t.FeatureImportances() {
			imp[i] += v / nTrees
		}
	}
	return imp
}

func sqrtInt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	if r < 1 {
		r = 1
	}
	return r
}

// bootstrapSample draws len(n) row indices uniformly with replacement and
// reports which rows were never drawn (out-of-bag).
func bootstrapSample(n int, rng *randsrc.Source) ([]int, []bool) {
	sample := make([]int, n)
	inBag := make([]bool, n)
	for i := range sample {
		idx := rng.UniformInt(0, n)
		sample[i] = idx
		inBag[idx] = true
	}
	return sample, inBag
}

type oobAccumulator struct {
	votes [][]map[string]int // [row][output] -> label -> vote count
}

func newOOBAccumulator(numRows int) *oobAccumulator {
	votes := make([][]map[string]int, numRows)
	return &oobAccumulator{votes: votes}
}

func (o *oobAccumulator) accumulate(X [][]float64, Y [][]string, inBag []bool, clf *Classifier) {
	var oobRows []int
	var oobX [][]float64
	for i, in := range inBag {
		if !in {
			oobRows = append(oobRows, i)
			oobX = append(oobX, X[i])
		}
	}
	if len(oobRows) == 0 {
		return
	}
	preds, err := clf.Predict(oobX)
	if err != nil {
		return
	}
	for i, rowIdx := range oobRows {
		if o.votes[rowIdx] == nil {
			o.votes[rowIdx] = make([]map[string]int, len(preds[i]))
			for oi := range o.votes[rowIdx] {
				o.votes[rowIdx][oi] = make(map[string]int)
			}
		}
		for oi, label := range preds[i] {
			o.votes[rowIdx][oi][label]++
		}
	}
}

// compute builds a confusion matrix and overall accuracy from the first
// output column's out-of-bag votes (the output a single-output forest
// trains on; multi-output callers should read OOBAccuracy as a per-first-
// output approximation).
func (o *oobAccumulator) compute(Y [][]string, classes [][]string) ([][]int, float64) {
	k := len(classes[0])
	classID := make(map[string]int, k)
	for i, label := range classes[0] {
		classID[label] = i
	}

	confMat := make([][]int, k)
	for i := range confMat {
		confMat[i] = make([]int, k)
	}

	total, correct := 0, 0
	for row, votes := range o.votes {
		if votes == nil {
			continue
		}
		bestLabel, bestCt := "", 0
		for label, ct := range votes[0] {
			if ct > bestCt {
				bestCt = ct
				bestLabel = label
			}
		}
		actual, ok := classID[Y[row][0]]
		predicted, okP := classID[bestLabel]
		if !ok || !okP {
			continue
		}
		confMat[actual][predicted]++
		total++
		if actual == predicted {
			correct++
		}
	}

	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}
	return confMat, accuracy
}
