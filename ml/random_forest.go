package ml

import (
	"errors"
	"fmt"
)

// RandomForest averages the leaf class distributions of its trees, the same
// soft-voting rule scikit-learn applies in predict_proba.
type RandomForest struct {
	trees     []*DecisionTree
	nFeatures int
}

func NewRandomForest(trees []*DecisionTree, nFeatures int) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, errors.New("forest has no estimators")
	}
	for i, tree := range trees {
		if tree.NumFeatures() != nFeatures {
			return nil, fmt.Errorf("estimator %d expects %d features, forest expects %d", i, tree.NumFeatures(), nFeatures)
		}
	}
	return &RandomForest{trees: trees, nFeatures: nFeatures}, nil
}

func (rf *RandomForest) Name() string { return "random_forest" }

func (rf *RandomForest) NumFeatures() int { return rf.nFeatures }

func (rf *RandomForest) NumEstimators() int { return len(rf.trees) }

func (rf *RandomForest) Predict(features []float64) (int, error) {
	proba, err := rf.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return argmaxClass(proba), nil
}

func (rf *RandomForest) PredictProba(features []float64) ([]float64, error) {
	mean := make([]float64, len(binaryClasses))
	for i, tree := range rf.trees {
		proba, err := tree.PredictProba(features)
		if err != nil {
			return nil, fmt.Errorf("estimator %d: %w", i, err)
		}
		for c, p := range proba {
			mean[c] += p
		}
	}
	n := float64(len(rf.trees))
	for c := range mean {
		mean[c] /= n
	}
	return mean, nil
}
