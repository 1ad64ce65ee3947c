package ml

import (
	"errors"
	"fmt"
	"math"
)

// LogisticRegression scores P(churn) = 1 / (1 + exp(-(intercept + coef·x))).
type LogisticRegression struct {
	coef      []float64
	intercept float64
}

func NewLogisticRegression(coef []float64, intercept float64) (*LogisticRegression, error) {
	if len(coef) == 0 {
		return nil, errors.New("coef is empty")
	}
	return &LogisticRegression{coef: coef, intercept: intercept}, nil
}

func (m *LogisticRegression) Name() string { return "logistic_regression" }

func (m *LogisticRegression) NumFeatures() int { return len(m.coef) }

func (m *LogisticRegression) Predict(features []float64) (int, error) {
	proba, err := m.PredictProba(features)
	if err != nil {
		return 0, err
	}
	if proba[PositiveClass] > 0.5 {
		return PositiveClass, nil
	}
	return NegativeClass, nil
}

func (m *LogisticRegression) PredictProba(features []float64) ([]float64, error) {
	if len(features) != len(m.coef) {
		return nil, fmt.Errorf("expected %d features, got %d", len(m.coef), len(features))
	}
	score := m.intercept
	for i, w := range m.coef {
		score += w * features[i]
	}
	p := 1 / (1 + math.Exp(-score))
	return []float64{1 - p, p}, nil
}
