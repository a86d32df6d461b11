package forest

import "testing"

func TestRandomForestFitPredictIris(t *testing.T) {
	rf, err := NewRandomForestClassifier(NumTrees(15), NumWorkers(2), ComputeOOB(), RandomState(7))
	if err != nil {
		t.Fatalf("NewRandomForestClassifier: %v", err)
	}
	y := irisY()
	if err := rf.Fit(irisX, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	pred, err := rf.Predict(irisX)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if acc := accuracy(pred, y, 0); acc < 0.9 {
		t.Errorf("expected in-bag ensemble accuracy >= 0.9, got %v", acc)
	}

	if len(rf.ConfusionMatrix) != 3 {
		t.Fatalf("expected a 3x3 OOB confusion matrix, got %d rows", len(rf.ConfusionMatrix))
	}
	if rf.OOBAccuracy <= 0 {
		t.Errorf("expected a positive OOB accuracy, got %v", rf.OOBAccuracy)
	}
}

func TestRandomForestRejectsNonPositiveNumTrees(t *testing.T) {
	if _, err := NewRandomForestClassifier(NumTrees(0)); err == nil {
		t.Fatal("expected an error for NumTrees(0)")
	}
}

func TestRandomForestFeatureImportancesSumToOne(t *testing.T) {
	rf, err := NewRandomForestClassifier(NumTrees(10), RandomState(3))
	if err != nil {
		t.Fatalf("NewRandomForestClassifier: %v", err)
	}
	if err := rf.Fit(irisX, irisY()); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	imp := rf.FeatureImportances()
	if len(imp) != 4 {
		t.Fatalf("expected 4 feature importances, got %d", len(imp))
	}
	sum := 0.0
	for _, v := range imp {
		if v < 0 {
			t.Errorf("feature importance should not be negative, got %v", v)
		}
		sum += v
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("feature importances should sum to ~1, got %v", sum)
	}
}
