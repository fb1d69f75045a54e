package pipeline

import (
	"fmt"

	"github.com/drakos74/auto-stack/internal/frame"
	"github.com/drakos74/auto-stack/internal/problem"
)

// Contract captures the problem specific rules of a classification pipeline:
// how many classes the labels may carry and how probabilities decode into labels.
// Injecting it keeps one pipeline implementation for both problem types.
type Contract interface {
	Type() problem.Type
	ValidateLabels(y frame.Series) error
	Decode(proba frame.Frame, classes []string, objective *Objective) (frame.Series, error)
}

// BinaryContract creates the contract for binary classification.
func BinaryContract() Contract {
	return binary{}
}

// MulticlassContract creates the contract for multiclass classification.
func MulticlassContract() Contract {
	return multiclass{}
}

type binary struct{}

func (binary) Type() problem.Type {
	return problem.Binary
}

func (binary) ValidateLabels(y frame.Series) error {
	if y.Nunique() != 2 {
		return fmt.Errorf("Binary pipelines require y to have 2 unique classes!")
	}
	return nil
}

// Decode thresholds the positive class probability.
// The positive class is the second of the sorted classes.
func (binary) Decode(proba frame.Frame, classes []string, objective *Objective) (frame.Series, error) {
	if len(classes) != 2 || proba.NumCols() != 2 {
		return frame.Series{}, fmt.Errorf("binary decoding needs 2 classes, got %d", proba.NumCols())
	}
	threshold := DefaultThreshold
	if objective != nil {
		threshold = objective.Threshold
	}
	labels := make([]string, proba.NumRows())
	for i := range labels {
		if proba.Row(i)[1] > threshold {
			labels[i] = classes[1]
		} else {
			labels[i] = classes[0]
		}
	}
	return frame.NewCategorical("y", labels).WithIndex(proba.Index()), nil
}

type multiclass struct{}

func (multiclass) Type() problem.Type {
	return problem.Multiclass
}

func (multiclass) ValidateLabels(y frame.Series) error {
	if n := y.Nunique(); n == 1 || n == 2 {
		return fmt.Errorf("Multiclass pipelines require y to have 3 or more unique classes!")
	}
	return nil
}

// Decode picks the highest probability class per row. Objectives are binary only.
func (multiclass) Decode(proba frame.Frame, classes []string, objective *Objective) (frame.Series, error) {
	if objective != nil {
		return frame.Series{}, fmt.Errorf("objectives are not supported for multiclass pipelines")
	}
	if proba.NumCols() != len(classes) {
		return frame.Series{}, fmt.Errorf("expected %d probability columns, got %d", len(classes), proba.NumCols())
	}
	labels := make([]string, proba.NumRows())
	for i := range labels {
		row := proba.Row(i)
		best := 0
		for j, p := range row {
			if p > row[best] {
				best = j
			}
		}
		labels[i] = classes[best]
	}
	return frame.NewCategorical("y", labels).WithIndex(proba.Index()), nil
}
