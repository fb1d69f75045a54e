package components

import (
	"fmt"

	"github.com/drakos74/auto-stack/internal/frame"
)

// Graph is a component graph wiring a label encoder into a final estimator.
type Graph struct {
	encoder   *LabelEncoder
	estimator Estimator
	fitted    bool
}

// NewGraph creates a component graph around the given final estimator.
func NewGraph(estimator Estimator) (*Graph, error) {
	if estimator == nil {
		return nil, fmt.Errorf("graph needs a final estimator")
	}
	return &Graph{
		encoder:   NewLabelEncoder(),
		estimator: estimator,
	}, nil
}

// Fit encodes the labels and trains the final estimator.
func (g *Graph) Fit(x frame.Frame, y frame.Series) error {
	g.encoder = NewLabelEncoder()
	codes := g.encoder.FitTransform(y)
	if err := g.estimator.Fit(x.Rows(), codes, len(g.encoder.Classes())); err != nil {
		return fmt.Errorf("could not fit %s: %w", g.estimator.Name(), err)
	}
	g.fitted = true
	return nil
}

// PredictProba returns one probability column per class, named by class label.
// The row identity of x is carried over.
func (g *Graph) PredictProba(x frame.Frame) (frame.Frame, error) {
	if !g.fitted {
		return frame.Frame{}, fmt.Errorf("component graph is not fitted")
	}
	classes := g.encoder.Classes()
	cols := make([][]float64, len(classes))
	for j := range cols {
		cols[j] = make([]float64, x.NumRows())
	}
	for i := 0; i < x.NumRows(); i++ {
		pp, err := g.estimator.Proba(x.Row(i))
		if err != nil {
			return frame.Frame{}, err
		}
		for j := range classes {
			cols[j][i] = pp[j]
		}
	}
	ss := make([]frame.Series, len(classes))
	for j, c := range classes {
		ss[j] = frame.NewSeries(c, cols[j])
	}
	out, err := frame.New(ss...)
	if err != nil {
		return frame.Frame{}, err
	}
	return out.WithIndex(x.Index()), nil
}

// Predict decodes the highest probability class per row.
func (g *Graph) Predict(x frame.Frame) (frame.Series, error) {
	proba, err := g.PredictProba(x)
	if err != nil {
		return frame.Series{}, err
	}
	codes := make([]int, proba.NumRows())
	for i := range codes {
		row := proba.Row(i)
		best := 0
		for j, p := range row {
			if p > row[best] {
				best = j
			}
		}
		codes[i] = best
	}
	s, err := g.encoder.Decode("y", codes)
	if err != nil {
		return frame.Series{}, err
	}
	return s.WithIndex(proba.Index()), nil
}

// Classes returns the sorted distinct labels seen during fit.
func (g *Graph) Classes() []string {
	return g.encoder.Classes()
}

func (g *Graph) IsFitted() bool {
	return g.fitted
}

// Clone returns a new unfitted graph with a cloned estimator.
func (g *Graph) Clone() *Graph {
	c, _ := NewGraph(g.estimator.Clone())
	return c
}
