package pipeline

import (
	"github.com/drakos74/auto-stack/internal/frame"
)

// Pipeline is a trainable classification pipeline.
type Pipeline interface {
	// Name identifies the pipeline, also in composed feature column names.
	Name() string
	// Fit trains the pipeline on the given features and labels.
	Fit(x frame.Frame, y frame.Series) error
	// Predict returns one decoded class label per row.
	// A nil objective falls back to the default decision rule.
	Predict(x frame.Frame, objective *Objective) (frame.Series, error)
	// PredictProba returns one probability column per class.
	PredictProba(x frame.Frame) (frame.Frame, error)
	// Clone returns a new unfitted pipeline with the same configuration.
	Clone() Pipeline
	// IsFitted reports whether Fit has completed.
	IsFitted() bool
}

// ConstructPipeline defines a pipeline constructor func.
type ConstructPipeline func(name string) (Pipeline, error)

// Objective shifts the decision rule used to decode binary predictions.
// Threshold is applied to the positive class probability.
type Objective struct {
	Name      string  `json:"name"`
	Threshold float64 `json:"threshold"`
}

// DefaultThreshold is the decision threshold used without an objective.
const DefaultThreshold = 0.5
