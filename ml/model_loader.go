package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/rotisserie/eris"
)

type modelArtifact struct {
	ModelType  string     `json:"model_type"`
	NFeatures  int        `json:"n_features"`
	Classes    []int      `json:"classes"`
	Nodes      []TreeNode `json:"nodes"`
	Estimators []struct {
		Nodes []TreeNode `json:"nodes"`
	} `json:"estimators"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// LoadModel reads a JSON model export. An empty modelType accepts whatever
// type the artifact declares.
func LoadModel(modelType, path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ml: read model %s", path)
	}
	model, err := DecodeModel(modelType, payload)
	if err != nil {
		return nil, eris.Wrapf(err, "ml: decode model %s", path)
	}
	return model, nil
}

func DecodeModel(modelType string, payload []byte) (Classifier, error) {
	var artifact modelArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, err
	}
	if modelType != "" && modelType != artifact.ModelType {
		return nil, fmt.Errorf("artifact is %q, configured type is %q", artifact.ModelType, modelType)
	}
	if artifact.Classes != nil && !slices.Equal(artifact.Classes, binaryClasses) {
		return nil, fmt.Errorf("unsupported classes %v", artifact.Classes)
	}

	switch artifact.ModelType {
	case "random_forest":
		trees := make([]*DecisionTree, 0, len(artifact.Estimators))
		for i, est := range artifact.Estimators {
			tree, err := NewDecisionTree(est.Nodes, artifact.NFeatures)
			if err != nil {
				return nil, fmt.Errorf("estimator %d: %w", i, err)
			}
			trees = append(trees, tree)
		}
		return NewRandomForest(trees, artifact.NFeatures)
	case "decision_tree":
		return NewDecisionTree(artifact.Nodes, artifact.NFeatures)
	case "logistic_regression":
		if artifact.NFeatures != 0 && artifact.NFeatures != len(artifact.Coef) {
			return nil, fmt.Errorf("n_features is %d but coef has %d entries", artifact.NFeatures, len(artifact.Coef))
		}
		return NewLogisticRegression(artifact.Coef, artifact.Intercept)
	default:
		return nil, fmt.Errorf("unsupported model type %q", artifact.ModelType)
	}
}
