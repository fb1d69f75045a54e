package components

import (
	"fmt"

	"github.com/cdipaolo/goml/base"
	"github.com/cdipaolo/goml/linear"
)

// LogisticOptions configures the logistic regression estimator.
// Rate is the gradient ascent learning rate.
// Regularization is the L2 penalty weight.
// Iterations is the maximum number of optimisation passes.
type LogisticOptions struct {
	Rate           float64 `json:"rate"`
	Regularization float64 `json:"regularization"`
	Iterations     int     `json:"iterations"`
}

func (o LogisticOptions) withDefaults() LogisticOptions {
	if o.Rate == 0 {
		o.Rate = 1e-4
	}
	if o.Iterations == 0 {
		o.Iterations = 1000
	}
	return o
}

func (o LogisticOptions) validate() error {
	if o.Rate < 0 {
		return fmt.Errorf("rate must be positive, got %f", o.Rate)
	}
	if o.Iterations < 0 {
		return fmt.Errorf("iterations must be positive, got %d", o.Iterations)
	}
	return nil
}

// Logistic is a binary logistic regression estimator.
type Logistic struct {
	opts  LogisticOptions
	model *linear.Logistic
}

// NewLogistic creates a new unfitted logistic regression estimator.
func NewLogistic(opts LogisticOptions) (*Logistic, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Logistic{opts: opts.withDefaults()}, nil
}

func (l *Logistic) Name() string {
	return "Logistic Regression Classifier"
}

func (l *Logistic) Fit(xx [][]float64, yy []int, classes int) error {
	if classes != 2 {
		return fmt.Errorf("logistic regression supports 2 classes, got %d", classes)
	}
	expected := make([]float64, len(yy))
	for i, y := range yy {
		expected[i] = float64(y)
	}
	model := linear.NewLogistic(base.BatchGA, l.opts.Rate, l.opts.Regularization, l.opts.Iterations, xx, expected)
	if err := model.Learn(); err != nil {
		return fmt.Errorf("could not learn logistic model: %w", err)
	}
	l.model = model
	return nil
}

func (l *Logistic) Proba(x []float64) ([]float64, error) {
	if l.model == nil {
		return nil, fmt.Errorf("logistic model is not fitted")
	}
	p, err := l.model.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("could not predict: %w", err)
	}
	return []float64{1 - p[0], p[0]}, nil
}

func (l *Logistic) Clone() Estimator {
	c, _ := NewLogistic(l.opts)
	return c
}
