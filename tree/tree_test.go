package tree

import (
	"math"
	"testing"

	"github.com/gotree/gotree/splitter"
)

func buildStump(t *testing.T) *Tree {
	tr := New(1, 1)
	leftHist := [][]float64{{4, 0}}
	rightHist := [][]float64{{0, 4}}
	rootHist := [][]float64{{4, 4}}

	root := tr.AddSplit(0, 0, splitter.MissingNone, 2.5, 0.5, 0.5, 8, rootHist)
	left := tr.AddLeaf(1, 0, 4, leftHist)
	right := tr.AddLeaf(1, 0, 4, rightHist)
	tr.SetChildren(root, left, right)
	return tr
}

func TestPredictProbaRoutesByThreshold(t *testing.T) {
	tr := buildStump(t)

	p := tr.PredictProba([]float64{1.0})
	if p[0][0] != 1 || p[0][1] != 0 {
		t.Fatalf("x=1.0 should route left (pure class 0), got %v", p[0])
	}

	p = tr.PredictProba([]float64{9.0})
	if p[0][0] != 0 || p[0][1] != 1 {
		t.Fatalf("x=9.0 should route right (pure class 1), got %v", p[0])
	}
}

func TestPredictProbaMissingRightPolicy(t *testing.T) {
	tr := New(1, 1)
	leftHist := [][]float64{{4, 0}}
	rightHist := [][]float64{{0, 4}}
	rootHist := [][]float64{{4, 4}}

	root := tr.AddSplit(0, 0, splitter.MissingRight, 2.5, 0.5, 0.5, 8, rootHist)
	left := tr.AddLeaf(1, 0, 4, leftHist)
	right := tr.AddLeaf(1, 0, 4, rightHist)
	tr.SetChildren(root, left, right)

	p := tr.PredictProba([]float64{math.NaN()})
	if p[0][1] != 1 {
		t.Fatalf("NaN under MissingRight should route right, got %v", p[0])
	}
}

func TestPredictProbaDegenerateLeafFallsBackToUniform(t *testing.T) {
	tr := New(1, 0)
	tr.AddLeaf(0, 0, 0, [][]float64{{0, 0, 0}})

	p := tr.PredictProba([]float64{1.0})
	for _, v := range p[0] {
		if math.Abs(v-1.0/3.0) > 1e-12 {
			t.Fatalf("zero-weight leaf should fall back to uniform, got %v", p[0])
		}
	}
}

func TestComputeFeatureImportanceNormalizesAndZeroesUnused(t *testing.T) {
	tr := New(1, 2)
	rootHist := [][]float64{{6, 6}}
	midHist := [][]float64{{0, 6}}
	leafAHist := [][]float64{{6, 0}}
	leafBHist := [][]float64{{0, 3}}
	leafCHist := [][]float64{{0, 3}}

	root := tr.AddSplit(0, 0, splitter.MissingNone, 1.5, 0.5, 0.3, 12, rootHist)
	leafA := tr.AddLeaf(1, 0, 6, leafAHist)
	mid := tr.AddSplit(1, 1, splitter.MissingNone, 4.5, 0.2, 0.1, midHist[0][0]+midHist[0][1], midHist)
	tr.SetChildren(root, leafA, mid)
	leafB := tr.AddLeaf(2, 0, 3, leafBHist)
	leafC := tr.AddLeaf(2, 0, 3, leafCHist)
	tr.SetChildren(mid, leafB, leafC)

	imp := tr.ComputeFeatureImportance(3)
	sum := 0.0
	for _, v := range imp {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("importances should sum to 1, got %v (%v)", sum, imp)
	}
	if imp[2] != 0 {
		t.Fatalf("unused feature 2 should have 0 importance, got %v", imp[2])
	}
	if imp[0] <= imp[1] {
		t.Fatalf("feature 0 contributed more improvement (0.3 vs 0.1), want imp[0] > imp[1]: %v", imp)
	}
}

func TestLeafMarkerIsLeaf(t *testing.T) {
	tr := New(1, 0)
	idx := tr.AddLeaf(0, 0, 1, [][]float64{{1}})
	if !tr.Nodes[idx].IsLeaf() {
		t.Fatalf("node added via AddLeaf must report IsLeaf() == true")
	}
}
