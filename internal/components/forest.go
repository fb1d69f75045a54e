package components

import (
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
)

// ForestOptions configures the random forest estimator.
// Trees is the number of trees grown during training.
type ForestOptions struct {
	Trees int `json:"trees"`
}

func (o ForestOptions) withDefaults() ForestOptions {
	if o.Trees == 0 {
		o.Trees = 1000
	}
	return o
}

func (o ForestOptions) validate() error {
	if o.Trees < 0 {
		return fmt.Errorf("trees must be positive, got %d", o.Trees)
	}
	return nil
}

// Forest is a random forest classifier, the default metalearner.
type Forest struct {
	opts    ForestOptions
	forest  *randomforest.Forest
	classes int
}

// NewForest creates a new unfitted random forest estimator.
func NewForest(opts ForestOptions) (*Forest, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Forest{opts: opts.withDefaults()}, nil
}

func (f *Forest) Name() string {
	return "Random Forest Classifier"
}

func (f *Forest) Fit(xx [][]float64, yy []int, classes int) error {
	if len(xx) == 0 {
		return fmt.Errorf("cannot fit on empty dataset")
	}
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: xx, Class: yy}
	forest.Train(f.opts.Trees)
	f.forest = forest
	f.classes = classes
	return nil
}

func (f *Forest) Proba(x []float64) ([]float64, error) {
	if f.forest == nil {
		return nil, fmt.Errorf("forest is not fitted")
	}
	votes := f.forest.Vote(x)
	// the forest only knows classes present in its training data
	pp := make([]float64, f.classes)
	copy(pp, votes)
	return pp, nil
}

func (f *Forest) Clone() Estimator {
	c, _ := NewForest(f.opts)
	return c
}
