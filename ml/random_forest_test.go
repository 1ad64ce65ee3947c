package ml

import (
	"math"
	"testing"
)

func mustTree(t *testing.T, nodes []TreeNode, nFeatures int) *DecisionTree {
	t.Helper()
	tree, err := NewDecisionTree(nodes, nFeatures)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tree
}

func TestRandomForestAveragesTrees(t *testing.T) {
	forest, err := NewRandomForest([]*DecisionTree{
		mustTree(t, stump(0, 0.5, []float64{9, 1}, []float64{2, 8}), 2),
		mustTree(t, stump(1, 10, []float64{6, 4}, []float64{0, 5}), 2),
		mustTree(t, stump(0, 0.5, []float64{1, 1}, []float64{3, 1}), 2),
	}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Leaves hit: [0.9 0.1], [0.6 0.4], [0.5 0.5].
	proba, err := forest.PredictProba([]float64{0.2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(proba[1]-(0.1+0.4+0.5)/3) > 1e-9 {
		t.Fatalf("unexpected P(churn): %f", proba[1])
	}
	if math.Abs(proba[0]+proba[1]-1) > 1e-9 {
		t.Fatalf("probabilities do not sum to 1: %v", proba)
	}
	label, err := forest.Predict([]float64{0.2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 0 {
		t.Fatalf("expected label 0, got %d", label)
	}

	// Leaves hit: [0.2 0.8], [0 1], [0.75 0.25].
	label, err = forest.Predict([]float64{0.7, 11})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 1 {
		t.Fatalf("expected label 1, got %d", label)
	}
	if forest.NumEstimators() != 3 {
		t.Fatalf("expected 3 estimators, got %d", forest.NumEstimators())
	}
}

func TestRandomForestRejectsMixedWidths(t *testing.T) {
	_, err := NewRandomForest([]*DecisionTree{
		mustTree(t, stump(0, 0.5, []float64{1, 0}, []float64{0, 1}), 2),
		mustTree(t, stump(0, 0.5, []float64{1, 0}, []float64{0, 1}), 3),
	}, 2)
	if err == nil {
		t.Fatal("expected error for estimator width mismatch")
	}
	if _, err := NewRandomForest(nil, 2); err == nil {
		t.Fatal("expected error for empty forest")
	}
}
