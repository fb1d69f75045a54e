package ensemble

import (
	"fmt"

	"github.com/drakos74/auto-stack/internal/components"
	"github.com/drakos74/auto-stack/internal/concurrent"
	"github.com/drakos74/auto-stack/internal/frame"
	"github.com/drakos74/auto-stack/internal/metrics"
	"github.com/drakos74/auto-stack/internal/pipeline"
	"github.com/drakos74/auto-stack/internal/problem"
	"github.com/drakos74/auto-stack/internal/split"
	"github.com/drakos74/auto-stack/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FoldPreds carries one fold's held-out probability predictions of an input pipeline.
type FoldPreds struct {
	X     frame.Frame
	Preds frame.Frame
}

// CVData maps an input pipeline name to its held-out predictions per fold,
// reused from an earlier cross-validation run to skip refitting here.
type CVData map[string][]FoldPreds

// Pipeline stacks input classification pipelines under a metalearner.
// The metalearner trains on the input pipelines' held-out probability
// predictions, so it learns how to weigh them instead of the raw features.
type Pipeline struct {
	name     string
	id       string
	contract pipeline.Contract
	inputs   []pipeline.Pipeline
	graph    *components.Graph
	cvData   CVData
	classes  []string
	fitted   bool
	workers  int
	store    storage.Persistence
}

// Option adjusts the construction of an ensemble pipeline.
type Option func(*Pipeline) error

// WithCVData supplies held-out predictions from an earlier cross-validation run.
// Fit will train the metalearner on these instead of refitting the inputs per fold.
func WithCVData(cv CVData) Option {
	return func(p *Pipeline) error {
		p.cvData = cv
		return nil
	}
}

// WithMetalearner replaces the default random forest metalearner.
func WithMetalearner(estimator components.Estimator) Option {
	return func(p *Pipeline) error {
		graph, err := components.NewGraph(estimator)
		if err != nil {
			return err
		}
		p.graph = graph
		return nil
	}
}

// WithWorkers sets the number of folds fitted concurrently.
func WithWorkers(workers int) Option {
	return func(p *Pipeline) error {
		if workers < 1 {
			return fmt.Errorf("workers must be positive, got %d", workers)
		}
		p.workers = workers
		return nil
	}
}

// WithStorage persists a fit artifact to the given shard.
func WithStorage(shard storage.Shard) Option {
	return func(p *Pipeline) error {
		store, err := shard(storage.ArtifactsDir)
		if err != nil {
			return fmt.Errorf("could not init storage: %w", err)
		}
		p.store = store
		return nil
	}
}

// New creates an ensemble pipeline over the given input pipelines.
func New(name string, contract pipeline.Contract, inputs []pipeline.Pipeline, options ...Option) (*Pipeline, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("ensemble needs at least one input pipeline")
	}
	metalearner, err := components.NewForest(components.ForestOptions{})
	if err != nil {
		return nil, err
	}
	graph, err := components.NewGraph(metalearner)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		name:     name,
		id:       uuid.New().String(),
		contract: contract,
		inputs:   inputs,
		graph:    graph,
		workers:  1,
		store:    storage.NewVoidStorage(),
	}
	for _, opt := range options {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// NewBinary creates a binary stacked ensemble pipeline.
func NewBinary(name string, inputs []pipeline.Pipeline, options ...Option) (*Pipeline, error) {
	return New(name, pipeline.BinaryContract(), inputs, options...)
}

// NewMulticlass creates a multiclass stacked ensemble pipeline.
func NewMulticlass(name string, inputs []pipeline.Pipeline, options ...Option) (*Pipeline, error) {
	return New(name, pipeline.MulticlassContract(), inputs, options...)
}

func (p *Pipeline) Name() string {
	return p.name
}

// ID identifies this ensemble instance in storage and logs.
func (p *Pipeline) ID() string {
	return p.id
}

// Fit trains the input pipelines where needed and the metalearner on their
// held-out predictions, with the default splitter when no cv data is supplied.
func (p *Pipeline) Fit(x frame.Frame, y frame.Series) error {
	return p.FitWith(x, y, nil, false)
}

// FitWith trains the ensemble with an explicit splitter.
// With forceRetrain the input pipelines are refitted on the full training set
// and any supplied cv data is ignored.
func (p *Pipeline) FitWith(x frame.Frame, y frame.Series, splitter split.Splitter, forceRetrain bool) error {
	if err := p.contract.ValidateLabels(y); err != nil {
		return err
	}

	if !p.inputsFitted() || forceRetrain {
		if err := p.fitInputs(x, y); err != nil {
			return err
		}
	}

	var metaX frame.Frame
	var metaY frame.Series
	var err error
	mode := "split"
	if len(p.cvData) > 0 && !forceRetrain {
		mode = "cv"
		metaX, metaY, err = p.assembleFromCV(y)
	} else {
		if splitter == nil {
			splitter = split.MakeDataSplitter(x, y, problem.Binary)
		}
		metaX, metaY, err = p.assembleFromSplits(x, y, splitter)
	}
	if err != nil {
		return fmt.Errorf("could not assemble metalearner features: %w", err)
	}

	if err := p.graph.Fit(metaX, metaY); err != nil {
		return fmt.Errorf("could not fit metalearner of '%s': %w", p.name, err)
	}
	p.classes = p.graph.Classes()
	p.fitted = true

	metrics.Observer.IncrementFit(p.name, mode)
	p.persist(metaX)
	log.Info().
		Str("ensemble", p.name).
		Str("id", p.id).
		Int("pipelines", len(p.inputs)).
		Int("rows", metaX.NumRows()).
		Int("features", metaX.NumCols()).
		Strs("classes", p.classes).
		Msg("fitted ensemble")
	return nil
}

// Transform stacks the input pipelines' probability predictions into the
// metalearner feature matrix, one reshaped block per pipeline.
func (p *Pipeline) Transform(x frame.Frame) (frame.Frame, error) {
	if !p.inputsFitted() {
		return frame.Frame{}, fmt.Errorf("input pipelines must be fitted before transform")
	}
	blocks := make([]frame.Frame, len(p.inputs))
	for i, in := range p.inputs {
		preds, err := in.PredictProba(x)
		if err != nil {
			return frame.Frame{}, fmt.Errorf("could not predict with '%s': %w", in.Name(), err)
		}
		block, err := reshape(preds, in.Name())
		if err != nil {
			return frame.Frame{}, err
		}
		blocks[i] = block
	}
	return frame.ConcatColumns(blocks...)
}

// PredictProba returns the metalearner's probability per class.
func (p *Pipeline) PredictProba(x frame.Frame) (frame.Frame, error) {
	if !p.fitted {
		return frame.Frame{}, fmt.Errorf("pipeline '%s' is not fitted", p.name)
	}
	metaX, err := p.Transform(x)
	if err != nil {
		return frame.Frame{}, err
	}
	metrics.Observer.IncrementPredict(p.name, "predict_proba")
	return p.graph.PredictProba(metaX)
}

// Predict decodes the metalearner's probabilities into class labels.
func (p *Pipeline) Predict(x frame.Frame, objective *pipeline.Objective) (frame.Series, error) {
	proba, err := p.PredictProba(x)
	if err != nil {
		return frame.Series{}, err
	}
	metrics.Observer.IncrementPredict(p.name, "predict")
	return p.contract.Decode(proba, p.classes, objective)
}

// Clone returns a new unfitted ensemble with cloned input pipelines.
func (p *Pipeline) Clone() pipeline.Pipeline {
	inputs := make([]pipeline.Pipeline, len(p.inputs))
	for i, in := range p.inputs {
		inputs[i] = in.Clone()
	}
	c, _ := New(p.name, p.contract, inputs,
		WithCVData(p.cvData),
		WithWorkers(p.workers),
	)
	c.graph = p.graph.Clone()
	c.store = p.store
	return c
}

func (p *Pipeline) IsFitted() bool {
	return p.fitted
}

// Classes returns the sorted distinct labels seen during fit.
func (p *Pipeline) Classes() []string {
	return append([]string{}, p.classes...)
}

func (p *Pipeline) inputsFitted() bool {
	for _, in := range p.inputs {
		if !in.IsFitted() {
			return false
		}
	}
	return true
}

// fitInputs trains the input pipelines directly on the full training set, with
// no cross-validation. Predictions of these pipelines on any of the training
// rows are in-sample and overstate their reliability.
func (p *Pipeline) fitInputs(x frame.Frame, y frame.Series) error {
	log.Warn().
		Str("ensemble", p.name).
		Msg("fitting input pipelines on the full training set, their predictions on training rows are in-sample")
	for _, in := range p.inputs {
		if err := in.Fit(x, y); err != nil {
			return fmt.Errorf("could not fit input pipeline '%s': %w", in.Name(), err)
		}
	}
	return nil
}

// assembleFromCV builds the metalearner features from supplied held-out
// predictions, one row block per fold, one column block per input pipeline.
func (p *Pipeline) assembleFromCV(y frame.Series) (frame.Frame, frame.Series, error) {
	blocks := make([]frame.Frame, len(p.inputs))
	for i, in := range p.inputs {
		folds, ok := p.cvData[in.Name()]
		if !ok {
			return frame.Frame{}, frame.Series{}, fmt.Errorf("no cross-validation data for pipeline '%s'", in.Name())
		}
		ff := make([]frame.Frame, len(folds))
		for j, fold := range folds {
			block, err := reshape(fold.Preds, in.Name())
			if err != nil {
				return frame.Frame{}, frame.Series{}, err
			}
			ff[j] = block
		}
		block, err := frame.ConcatRows(ff...)
		if err != nil {
			return frame.Frame{}, frame.Series{}, err
		}
		blocks[i] = block
	}
	metaX, err := frame.ConcatColumns(blocks...)
	if err != nil {
		return frame.Frame{}, frame.Series{}, err
	}
	if metaX.NumRows() != y.Len() {
		// held-out predictions may cover only part of y, realign by row identity
		metaX, err = metaX.ByIndex(y.Index())
		if err != nil {
			return frame.Frame{}, frame.Series{}, err
		}
	}
	return metaX, y, nil
}

// assembleFromSplits fits fresh clones of the input pipelines per fold and
// collects their predictions on the held-out rows. Folds run on up to
// p.workers goroutines into index-addressed slots, so the merged matrix is
// deterministic in fold order.
func (p *Pipeline) assembleFromSplits(x frame.Frame, y frame.Series, splitter split.Splitter) (frame.Frame, frame.Series, error) {
	folds, err := splitter.Split(x, y)
	if err != nil {
		return frame.Frame{}, frame.Series{}, err
	}

	foldX := make([]frame.Frame, len(folds))
	foldY := make([]frame.Series, len(folds))
	err = concurrent.ForEach(p.workers, len(folds), func(i int) error {
		fold := folds[i]
		xTrain, yTrain := x.Select(fold.Train), y.Select(fold.Train)
		xValid := x.Select(fold.Valid)

		blocks := make([]frame.Frame, len(p.inputs))
		for j, in := range p.inputs {
			clone := in.Clone()
			if err := clone.Fit(xTrain, yTrain); err != nil {
				return fmt.Errorf("could not fit '%s' on fold %d: %w", in.Name(), i, err)
			}
			preds, err := clone.PredictProba(xValid)
			if err != nil {
				return fmt.Errorf("could not predict with '%s' on fold %d: %w", in.Name(), i, err)
			}
			block, err := reshape(preds, in.Name())
			if err != nil {
				return err
			}
			blocks[j] = block
		}
		fx, err := frame.ConcatColumns(blocks...)
		if err != nil {
			return err
		}
		foldX[i] = fx
		foldY[i] = y.Select(fold.Valid)
		return nil
	})
	if err != nil {
		return frame.Frame{}, frame.Series{}, err
	}

	metaX, err := frame.ConcatRows(foldX...)
	if err != nil {
		return frame.Frame{}, frame.Series{}, err
	}
	metaY, err := frame.ConcatSeries(foldY...)
	if err != nil {
		return frame.Frame{}, frame.Series{}, err
	}
	return metaX, metaY, nil
}

type artifact struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Classes  []string `json:"classes"`
	Features []string `json:"features"`
	Rows     int      `json:"rows"`
}

func (p *Pipeline) persist(metaX frame.Frame) {
	key := storage.Key{
		ID:    p.id,
		Name:  p.name,
		Label: "ensemble",
	}
	err := p.store.Store(key, artifact{
		ID:       p.id,
		Name:     p.name,
		Classes:  p.classes,
		Features: metaX.Columns(),
		Rows:     metaX.NumRows(),
	})
	if err != nil {
		log.Warn().Err(err).Str("ensemble", p.name).Msg("could not store fit artifact")
	}
}
