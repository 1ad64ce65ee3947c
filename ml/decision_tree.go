package ml

import (
	"errors"
	"fmt"
)

type DecisionTree struct {
	nodes     []TreeNode
	nFeatures int
}

type TreeNode struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	IsLeaf     bool      `json:"is_leaf"`
	Value      []float64 `json:"value"`
}

func NewDecisionTree(nodes []TreeNode, nFeatures int) (*DecisionTree, error) {
	if nFeatures <= 0 {
		return nil, errors.New("n_features must be positive")
	}
	if len(nodes) == 0 {
		return nil, errors.New("tree has no nodes")
	}
	for i, node := range nodes {
		if err := validateNode(node, len(nodes), nFeatures); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	if err := checkTreeShape(nodes); err != nil {
		return nil, err
	}
	return &DecisionTree{nodes: nodes, nFeatures: nFeatures}, nil
}

func (dt *DecisionTree) Name() string { return "decision_tree" }

func (dt *DecisionTree) NumFeatures() int { return dt.nFeatures }

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	proba, err := dt.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return argmaxClass(proba), nil
}

func (dt *DecisionTree) PredictProba(features []float64) ([]float64, error) {
	if len(features) != dt.nFeatures {
		return nil, fmt.Errorf("expected %d features, got %d", dt.nFeatures, len(features))
	}
	leaf, err := dt.leaf(features)
	if err != nil {
		return nil, err
	}
	return normalizeDistribution(leaf.Value)
}

func (dt *DecisionTree) leaf(features []float64) (TreeNode, error) {
	idx := 0
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
	return TreeNode{}, errors.New("invalid tree state")
}

func validateNode(node TreeNode, nodeCount, nFeatures int) error {
	if node.IsLeaf {
		if len(node.Value) != len(binaryClasses) {
			return fmt.Errorf("leaf value has %d classes, want %d", len(node.Value), len(binaryClasses))
		}
		_, err := normalizeDistribution(node.Value)
		return err
	}
	if node.FeatureIdx < 0 || node.FeatureIdx >= nFeatures {
		return fmt.Errorf("feature index %d out of range", node.FeatureIdx)
	}
	if node.LeftChild <= 0 || node.LeftChild >= nodeCount {
		return fmt.Errorf("left child %d out of range", node.LeftChild)
	}
	if node.RightChild <= 0 || node.RightChild >= nodeCount {
		return fmt.Errorf("right child %d out of range", node.RightChild)
	}
	return nil
}

// checkTreeShape walks from the root and requires every node to be reached at
// most once, so each path ends at a leaf.
func checkTreeShape(nodes []TreeNode) error {
	visited := make([]bool, len(nodes))
	stack := []int{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] {
			return fmt.Errorf("node %d is reached more than once", idx)
		}
		visited[idx] = true
		if !nodes[idx].IsLeaf {
			stack = append(stack, nodes[idx].LeftChild, nodes[idx].RightChild)
		}
	}
	return nil
}

func normalizeDistribution(values []float64) ([]float64, error) {
	total := 0.0
	for _, v := range values {
		if v < 0 {
			return nil, errors.New("negative class weight")
		}
		total += v
	}
	if total <= 0 {
		return nil, errors.New("empty class distribution")
	}
	proba := make([]float64, len(values))
	for i, v := range values {
		proba[i] = v / total
	}
	return proba, nil
}

// argmaxClass keeps the first class on ties.
func argmaxClass(proba []float64) int {
	best := 0
	for i := 1; i < len(proba); i++ {
		if proba[i] > proba[best] {
			best = i
		}
	}
	return binaryClasses[best]
}
