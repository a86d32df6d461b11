package main

import (
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/gotree/gotree/forest"
	"github.com/gotree/gotree/metrics"
)

// model is the CLI's persisted artifact: a fitted forest.RandomForestClassifier
// plus the bookkeeping needed to report on and re-use it, adapted from
// wlattner-rf's root model.go (same Fit/Report/Save/Load shape, generalized
// from a classification-or-regression union to the classification-only
// RandomForestClassifier this module builds).
type model struct {
	Forest   *forest.RandomForestClassifier
	VarNames []string
	fitTime  time.Duration
	nSample  int
}

func fitModel(X [][]float64, Y [][]string, varNames []string, opts fitOptions) (*model, error) {
	options := []forest.Option{
		forest.NumTrees(opts.numTrees),
		forest.MinSamplesSplit(opts.minSamplesSplit),
		forest.MinSamplesLeaf(opts.minSamplesLeaf),
		forest.MaxFeatures(opts.maxFeatures),
		forest.NumWorkers(opts.numWorkers),
		forest.RandomState(opts.randomState),
	}
	if opts.computeOOB {
		options = append(options, forest.ComputeOOB())
	}

	f, err := forest.NewRandomForestClassifier(options...)
	if err != nil {
		return nil, fmt.Errorf("configuring forest: %w", err)
	}

	start := time.Now()
	if err := f.Fit(X, Y); err != nil {
		return nil, fmt.Errorf("fitting forest: %w", err)
	}

	return &model{
		Forest:   f,
		VarNames: varNames,
		fitTime:  time.Since(start),
		nSample:  len(X),
	}, nil
}

func (m *model) Predict(X [][]float64) ([]string, error) {
	labels, err := m.Forest.Predict(X)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(labels))
	for i, row := range labels {
		out[i] = row[0]
	}
	return out, nil
}

func (m *model) Report(w io.Writer) {
	fmt.Fprintf(w, "Fit %d trees using %d examples in %.2f seconds\n",
		len(m.Forest.Trees), m.nSample, m.fitTime.Seconds())
	fmt.Fprintf(w, "\n")

	m.reportVarImp(w, 20)

	if m.Forest.ConfusionMatrix != nil {
		m.reportOOB(w)
	}
}

func (m *model) reportOOB(w io.Writer) {
	classes := m.Forest.Classes[0]

	fmt.Fprintf(w, "Out-of-Bag Confusion Matrix\n")
	fmt.Fprintf(w, "---------------------------\n")
	fmt.Fprintf(w, "%-14s ", "")
	for _, class := range classes {
		fmt.Fprintf(w, "%-14s ", class)
	}
	fmt.Fprintf(w, "\n")

	for actualID, class := range classes {
		fmt.Fprintf(w, "%-14s ", class)
		for predictedID := range classes {
			fmt.Fprintf(w, "%-14d ", m.Forest.ConfusionMatrix[actualID][predictedID])
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Out-of-Bag Accuracy: %.2f%%\n", 100.0*m.Forest.OOBAccuracy)
}

// reportEvaluation scores predictions against known labels using package
// metrics, for a held-out evaluation file rather than the OOB estimate.
func (m *model) reportEvaluation(w io.Writer, yTrue, yPred []string) error {
	acc, err := metrics.Accuracy(yTrue, yPred)
	if err != nil {
		return err
	}
	cm, err := metrics.NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		return err
	}
	report := metrics.PrecisionRecallF1(cm)

	fmt.Fprintf(w, "Evaluation Accuracy: %.2f%%\n\n", 100*acc)
	fmt.Fprintf(w, "%-14s %-10s %-10s %-10s %-10s\n", "class", "precision", "recall", "f1", "support")
	for _, c := range report.Classes {
		fmt.Fprintf(w, "%-14s %-10.3f %-10.3f %-10.3f %-10d\n", c.Label, c.Precision, c.Recall, c.F1, c.Support)
	}
	fmt.Fprintf(w, "\nMacro F1: %.3f\n", report.MacroF1)
	fmt.Fprintf(w, "Weighted F1: %.3f\n", report.WeightedF1)
	return nil
}

func (m *model) saveVarImp(w io.Writer) error {
	writer := csv.NewWriter(w)

	imp := m.Forest.FeatureImportances()
	for i, score := range imp {
		if err := writer.Write([]string{m.VarNames[i], strconv.FormatFloat(score, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (m *model) reportVarImp(w io.Writer, maxVars int) {
	fmt.Fprintf(w, "Variable Importance\n")
	fmt.Fprintf(w, "-------------------\n")

	imp := m.Forest.FeatureImportances()
	names := make([]string, len(m.VarNames))
	copy(names, m.VarNames)
	sortByImportance(imp, names)

	if maxVars > len(imp) {
		maxVars = len(imp)
	}
	for i := 0; i < maxVars; i++ {
		fmt.Fprintf(w, "%-15s: %-10.4f\n", names[i], imp[i])
	}
	fmt.Fprintf(w, "\n")
}

func (m *model) Load(r io.Reader) error {
	return gob.NewDecoder(r).Decode(m)
}

func (m *model) Save(w io.Writer) error {
	return gob.NewEncoder(w).Encode(m)
}

type varImpSort struct {
	varName []string
	imp     []float64
}

func (v varImpSort) Len() int      { return len(v.imp) }
func (v varImpSort) Less(i, j int) bool {
	return v.imp[i] < v.imp[j]
}
func (v varImpSort) Swap(i, j int) {
	v.imp[i], v.imp[j] = v.imp[j], v.imp[i]
	v.varName[i], v.varName[j] = v.varName[j], v.varName[i]
}

func sortByImportance(imp []float64, names []string) {
	sort.Sort(sort.Reverse(varImpSort{imp: imp, varName: names}))
}
