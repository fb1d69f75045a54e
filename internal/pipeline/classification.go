package pipeline

import (
	"fmt"

	"github.com/drakos74/auto-stack/internal/components"
	"github.com/drakos74/auto-stack/internal/frame"
	"github.com/drakos74/auto-stack/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ClassificationPipeline trains a component graph under a problem contract.
type ClassificationPipeline struct {
	name     string
	contract Contract
	graph    *components.Graph
	classes  []string
	fitted   bool
}

// New creates a classification pipeline for the given contract and final estimator.
func New(name string, contract Contract, estimator components.Estimator) (*ClassificationPipeline, error) {
	graph, err := components.NewGraph(estimator)
	if err != nil {
		return nil, err
	}
	return &ClassificationPipeline{
		name:     name,
		contract: contract,
		graph:    graph,
	}, nil
}

// NewBinary creates a binary classification pipeline.
func NewBinary(name string, estimator components.Estimator) (*ClassificationPipeline, error) {
	return New(name, BinaryContract(), estimator)
}

// NewMulticlass creates a multiclass classification pipeline.
func NewMulticlass(name string, estimator components.Estimator) (*ClassificationPipeline, error) {
	return New(name, MulticlassContract(), estimator)
}

func (p *ClassificationPipeline) Name() string {
	return p.name
}

func (p *ClassificationPipeline) Type() Contract {
	return p.contract
}

func (p *ClassificationPipeline) Fit(x frame.Frame, y frame.Series) error {
	if err := p.contract.ValidateLabels(y); err != nil {
		return err
	}
	if err := p.graph.Fit(x, y); err != nil {
		return fmt.Errorf("could not fit pipeline '%s': %w", p.name, err)
	}
	p.classes = p.graph.Classes()
	p.fitted = true
	metrics.Observer.IncrementFit(p.name, "direct")
	log.Debug().
		Str("pipeline", p.name).
		Int("rows", x.NumRows()).
		Strs("classes", p.classes).
		Msg("fitted pipeline")
	return nil
}

func (p *ClassificationPipeline) PredictProba(x frame.Frame) (frame.Frame, error) {
	if !p.fitted {
		return frame.Frame{}, fmt.Errorf("pipeline '%s' is not fitted", p.name)
	}
	metrics.Observer.IncrementPredict(p.name, "predict_proba")
	return p.graph.PredictProba(x)
}

func (p *ClassificationPipeline) Predict(x frame.Frame, objective *Objective) (frame.Series, error) {
	proba, err := p.PredictProba(x)
	if err != nil {
		return frame.Series{}, err
	}
	metrics.Observer.IncrementPredict(p.name, "predict")
	return p.contract.Decode(proba, p.classes, objective)
}

func (p *ClassificationPipeline) Clone() Pipeline {
	return &ClassificationPipeline{
		name:     p.name,
		contract: p.contract,
		graph:    p.graph.Clone(),
	}
}

func (p *ClassificationPipeline) IsFitted() bool {
	return p.fitted
}

// Classes returns the sorted distinct labels seen during fit.
func (p *ClassificationPipeline) Classes() []string {
	return append([]string{}, p.classes...)
}
