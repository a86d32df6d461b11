package metrics

import (
	"math"
	"testing"
)

func TestAccuracyPerfectMatch(t *testing.T) {
	yTrue := []string{"a", "b", "a", "c"}
	yPred := []string{"a", "b", "a", "c"}

	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		t.Fatalf("Accuracy: %v", err)
	}
	if acc != 1.0 {
		t.Fatalf("Accuracy = %v, want 1.0", acc)
	}
}

func TestAccuracyPartialMatch(t *testing.T) {
	yTrue := []string{"a", "b", "a", "c"}
	yPred := []string{"a", "a", "a", "b"}

	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		t.Fatalf("Accuracy: %v", err)
	}
	if math.Abs(acc-0.5) > 1e-9 {
		t.Fatalf("Accuracy = %v, want 0.5", acc)
	}
}

func TestAccuracyRejectsShapeMismatch(t *testing.T) {
	if _, err := Accuracy([]string{"a"}, []string{"a", "b"}); err == nil {
		t.Fatal("expected an error for mismatched lengths")
	}
}

func TestAccuracyRejectsEmpty(t *testing.T) {
	if _, err := Accuracy(nil, nil); err == nil {
		t.Fatal("expected an error for empty input")
	}
}

func TestConfusionMatrixCounts(t *testing.T) {
	yTrue := []string{"cat", "cat", "dog", "dog", "dog"}
	yPred := []string{"cat", "dog", "dog", "dog", "cat"}

	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("NewConfusionMatrix: %v", err)
	}
	if len(cm.Labels) != 2 || cm.Labels[0] != "cat" || cm.Labels[1] != "dog" {
		t.Fatalf("Labels = %v, want [cat dog]", cm.Labels)
	}

	// true=cat: 1 predicted cat, 1 predicted dog
	if cm.Counts.At(0, 0) != 1 || cm.Counts.At(0, 1) != 1 {
		t.Errorf("cat row = [%v %v], want [1 1]", cm.Counts.At(0, 0), cm.Counts.At(0, 1))
	}
	// true=dog: 1 predicted cat, 2 predicted dog
	if cm.Counts.At(1, 0) != 1 || cm.Counts.At(1, 1) != 2 {
		t.Errorf("dog row = [%v %v], want [1 2]", cm.Counts.At(1, 0), cm.Counts.At(1, 1))
	}
}

func TestConfusionMatrixIncludesUnseenPredictedLabel(t *testing.T) {
	yTrue := []string{"a", "a"}
	yPred := []string{"a", "b"}

	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("NewConfusionMatrix: %v", err)
	}
	if len(cm.Labels) != 2 {
		t.Fatalf("Labels = %v, want 2 labels (a and b)", cm.Labels)
	}
}

func TestPrecisionRecallF1PerfectClassifier(t *testing.T) {
	yTrue := []string{"a", "a", "b", "b"}
	yPred := []string{"a", "a", "b", "b"}

	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("NewConfusionMatrix: %v", err)
	}
	report := PrecisionRecallF1(cm)

	if math.Abs(report.MacroF1-1.0) > 1e-9 {
		t.Fatalf("MacroF1 = %v, want 1.0", report.MacroF1)
	}
	if math.Abs(report.WeightedF1-1.0) > 1e-9 {
		t.Fatalf("WeightedF1 = %v, want 1.0", report.WeightedF1)
	}
	for _, c := range report.Classes {
		if c.Precision != 1 || c.Recall != 1 || c.F1 != 1 {
			t.Errorf("class %s: precision=%v recall=%v f1=%v, want all 1", c.Label, c.Precision, c.Recall, c.F1)
		}
	}
}

func TestPrecisionRecallF1HandlesNeverPredictedClass(t *testing.T) {
	yTrue := []string{"a", "a", "b"}
	yPred := []string{"a", "a", "a"}

	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("NewConfusionMatrix: %v", err)
	}
	report := PrecisionRecallF1(cm)

	var b ClassScore
	for _, c := range report.Classes {
		if c.Label == "b" {
			b = c
		}
	}
	if b.Recall != 0 || b.F1 != 0 {
		t.Errorf("class b: recall=%v f1=%v, want both 0 (never predicted)", b.Recall, b.F1)
	}
	if b.Support != 1 {
		t.Errorf("class b support = %d, want 1", b.Support)
	}
}
