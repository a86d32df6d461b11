// Package metrics scores classifier predictions against ground truth,
// grounded in the validate-then-compute shape of
// YuminosukeSato-scigo/metrics/regression.go (empty/dimension-mismatch
// checks before any arithmetic) adapted to multiclass string labels, backed
// by gonum/mat for the confusion matrix and gonum/stat for the
// support-weighted F1 average.
package metrics

import (
	"sort"

	"github.com/gotree/gotree/internal/errs"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ConfusionMatrix holds observed-vs-predicted counts over a fixed label set.
// Rows are true classes, columns are predicted classes, matching sklearn's
// convention.
type ConfusionMatrix struct {
	Labels []string
	Counts *mat.Dense
}

// NewConfusionMatrix tabulates yTrue against yPred. The label set is the
// sorted union of both, so an unseen predicted class still gets a row/column.
func NewConfusionMatrix(yTrue, yPred []string) (*ConfusionMatrix, error) {
	n := len(yTrue)
	if n == 0 {
		return nil, errs.NewInvalidState("empty label vector")
	}
	if len(yPred) != n {
		return nil, errs.NewShapeMismatch("confusion matrix", len(yPred), n)
	}

	labels := unionLabels(yTrue, yPred)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	counts := mat.NewDense(len(labels), len(labels), nil)
	for i := 0; i < n; i++ {
		r, c := index[yTrue[i]], index[yPred[i]]
		counts.Set(r, c, counts.At(r, c)+1)
	}

	return &ConfusionMatrix{Labels: labels, Counts: counts}, nil
}

func unionLabels(a, b []string) []string {
	seen := make(map[string]struct{})
	for _, l := range a {
		seen[l] = struct{}{}
	}
	for _, l := range b {
		seen[l] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Accuracy is the fraction of exact matches between yTrue and yPred.
func Accuracy(yTrue, yPred []string) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errs.NewInvalidState("empty label vector")
	}
	if len(yPred) != n {
		return 0, errs.NewShapeMismatch("accuracy", len(yPred), n)
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassScore holds the per-class precision/recall/F1 of a PrecisionRecallF1
// report, plus the number of true instances of that class (its support).
type ClassScore struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is a per-class precision/recall/F1 breakdown plus the unweighted
// ("macro") and support-weighted average across classes, in the spirit of
// sklearn's classification_report.
type Report struct {
	Classes    []ClassScore
	MacroF1    float64
	WeightedF1 float64
}

// PrecisionRecallF1 computes a per-class Report from a confusion matrix.
func PrecisionRecallF1(cm *ConfusionMatrix) Report {
	k, _ := cm.Counts.Dims()
	classes := make([]ClassScore, k)
	f1s := make([]float64, k)
	supports := make([]float64, k)

	var macroF1 float64
	for i := 0; i < k; i++ {
		var tp, predictedPositive, actualPositive float64
		for j := 0; j < k; j++ {
			predictedPositive += cm.Counts.At(j, i)
			actualPositive += cm.Counts.At(i, j)
		}
		tp = cm.Counts.At(i, i)

		precision := safeDiv(tp, predictedPositive)
		recall := safeDiv(tp, actualPositive)
		f1 := safeDiv(2*precision*recall, precision+recall)

		classes[i] = ClassScore{
			Label:     cm.Labels[i],
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   int(actualPositive),
		}
		macroF1 += f1
		f1s[i] = f1
		supports[i] = actualPositive
	}
	if k > 0 {
		macroF1 /= float64(k)
	}

	var totalSupport float64
	for _, s := range supports {
		totalSupport += s
	}
	var weightedF1 float64
	if totalSupport > 0 {
		weightedF1 = stat.Mean(f1s, supports)
	}

	return Report{Classes: classes, MacroF1: macroF1, WeightedF1: weightedF1}
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
