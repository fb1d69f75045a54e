package ensemble

import (
	"fmt"
	"testing"

	"github.com/drakos74/auto-stack/internal/components"
	"github.com/drakos74/auto-stack/internal/frame"
	"github.com/drakos74/auto-stack/internal/pipeline"
	"github.com/drakos74/auto-stack/internal/split"
	"github.com/drakos74/auto-stack/internal/storage"
	"github.com/drakos74/auto-stack/internal/storage/file/json"
	"github.com/stretchr/testify/assert"
)

// stub estimator scoring the positive class with the first feature value.
type stub struct {
	classes int
}

func (s *stub) Name() string {
	return "Stub Classifier"
}

func (s *stub) Fit(xx [][]float64, yy []int, classes int) error {
	s.classes = classes
	return nil
}

func (s *stub) Proba(x []float64) ([]float64, error) {
	pp := make([]float64, s.classes)
	p := x[0]
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	pp[s.classes-1] = p
	pp[0] = 1 - p
	return pp, nil
}

func (s *stub) Clone() components.Estimator {
	return &stub{}
}

func binaryInputs(t *testing.T, names ...string) []pipeline.Pipeline {
	inputs := make([]pipeline.Pipeline, len(names))
	for i, name := range names {
		p, err := pipeline.NewBinary(name, &stub{})
		assert.NoError(t, err)
		inputs[i] = p
	}
	return inputs
}

func probaFrame(t *testing.T, pos []float64) frame.Frame {
	neg := make([]float64, len(pos))
	for i, p := range pos {
		neg[i] = 1 - p
	}
	f, err := frame.New(
		frame.NewSeries("no", neg),
		frame.NewSeries("yes", pos),
	)
	assert.NoError(t, err)
	return f
}

func TestReshapeBinary(t *testing.T) {
	preds := probaFrame(t, []float64{0.9, 0.1, 0.4})

	out, err := reshape(preds, "pipeline-a")
	assert.NoError(t, err)
	// the first of the two collinear columns is dropped
	assert.Equal(t, []string{"Col 1 pipeline-a.x"}, out.Columns())
	assert.Equal(t, 3, out.NumRows())
	assert.Equal(t, []float64{0.9}, out.Row(0))
}

func TestReshapeMulticlass(t *testing.T) {
	preds, err := frame.New(
		frame.NewSeries("a", []float64{0.2, 0.1}),
		frame.NewSeries("b", []float64{0.5, 0.3}),
		frame.NewSeries("c", []float64{0.3, 0.6}),
	)
	assert.NoError(t, err)

	out, err := reshape(preds, "pipeline-a")
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"Col 0 pipeline-a.x",
		"Col 1 pipeline-a.x",
		"Col 2 pipeline-a.x",
	}, out.Columns())
}

func TestReshapeRejectsNonTabular(t *testing.T) {
	_, err := reshape("not-a-frame", "pipeline-a")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "preds must be in the form of a frame")
}

func TestTransformRequiresFittedInputs(t *testing.T) {
	x, _ := frame.New(frame.NewSeries("f", []float64{0.1, 0.9}))

	e, err := NewBinary("stacked", binaryInputs(t, "pipeline-a"))
	assert.NoError(t, err)

	_, err = e.Transform(x)
	assert.Error(t, err)
	assert.Equal(t, "input pipelines must be fitted before transform", err.Error())
}

func TestCardinalityValidation(t *testing.T) {
	x, _ := frame.New(frame.NewSeries("f", []float64{1, 2, 3}))
	y := frame.NewCategorical("y", []string{"a", "b", "c"})

	e, err := NewBinary("stacked", binaryInputs(t, "pipeline-a"))
	assert.NoError(t, err)

	err = e.Fit(x, y)
	assert.Error(t, err)
	assert.Equal(t, "Binary pipelines require y to have 2 unique classes!", err.Error())
	assert.False(t, e.IsFitted())
}

func TestFitSplitPath(t *testing.T) {
	n := 100
	ff := make([]float64, n)
	yy := make([]string, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			ff[i] = 0.1
			yy[i] = "no"
		} else {
			ff[i] = 0.9
			yy[i] = "yes"
		}
	}
	x, _ := frame.New(frame.NewSeries("f", ff))
	y := frame.NewCategorical("y", yy)

	store := json.NewLocalStorage()
	e, err := NewBinary("stacked", binaryInputs(t, "pipeline-a", "pipeline-b"),
		WithMetalearner(&stub{}),
		WithWorkers(4),
		WithStorage(func(shard string) (storage.Persistence, error) {
			return store, nil
		}),
	)
	assert.NoError(t, err)

	assert.NoError(t, e.FitWith(x, y, split.NewStratifiedKFold(4), false))
	assert.True(t, e.IsFitted())
	assert.Equal(t, []string{"no", "yes"}, e.Classes())

	// one reshaped column per input pipeline, one row per validation slot
	var art struct {
		Features []string `json:"features"`
		Rows     int      `json:"rows"`
	}
	key := storage.Key{ID: e.ID(), Name: "stacked", Label: "ensemble"}
	assert.NoError(t, store.Load(key, &art))
	assert.Equal(t, n, art.Rows)
	assert.Equal(t, []string{"Col 1 pipeline-a.x", "Col 1 pipeline-b.x"}, art.Features)

	xNew, _ := frame.New(frame.NewSeries("f", []float64{
		0.1, 0.9, 0.1, 0.9, 0.1, 0.9, 0.1, 0.9, 0.1, 0.9,
	}))
	proba, err := e.PredictProba(xNew)
	assert.NoError(t, err)
	assert.Equal(t, 10, proba.NumRows())
	assert.Equal(t, []string{"no", "yes"}, proba.Columns())

	pred, err := e.Predict(xNew, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"no", "yes", "no", "yes", "no", "yes", "no", "yes", "no", "yes"}, pred.Labels())

	// a stricter threshold flips the positives
	strict := &pipeline.Objective{Name: "precision", Threshold: 0.99}
	pred, err = e.Predict(xNew, strict)
	assert.NoError(t, err)
	for _, l := range pred.Labels() {
		assert.Equal(t, "no", l)
	}
}

func TestFitCVDataPath(t *testing.T) {
	x, _ := frame.New(frame.NewSeries("f", []float64{0.1, 0.9, 0.2, 0.8}))
	y := frame.NewCategorical("y", []string{"no", "yes", "no", "yes"})

	inputs := binaryInputs(t, "pipeline-a")
	assert.NoError(t, inputs[0].Fit(x, y))

	// held-out predictions cover 6 rows, only 4 of which are in y
	cv := CVData{
		"pipeline-a": {
			{Preds: probaFrame(t, []float64{0.1, 0.9, 0.2}).WithIndex([]int{0, 1, 2})},
			{Preds: probaFrame(t, []float64{0.8, 0.5, 0.4}).WithIndex([]int{3, 4, 5})},
		},
	}

	e, err := NewBinary("stacked", inputs,
		WithCVData(cv),
		WithMetalearner(&stub{}),
	)
	assert.NoError(t, err)

	assert.NoError(t, e.Fit(x, y))
	assert.True(t, e.IsFitted())

	proba, err := e.PredictProba(x)
	assert.NoError(t, err)
	assert.Equal(t, 4, proba.NumRows())
}

func TestFitCVDataMissingPipeline(t *testing.T) {
	x, _ := frame.New(frame.NewSeries("f", []float64{0.1, 0.9}))
	y := frame.NewCategorical("y", []string{"no", "yes"})

	cv := CVData{
		"pipeline-a": {
			{Preds: probaFrame(t, []float64{0.1, 0.9})},
		},
	}

	e, err := NewBinary("stacked", binaryInputs(t, "pipeline-a", "pipeline-b"),
		WithCVData(cv),
		WithMetalearner(&stub{}),
	)
	assert.NoError(t, err)

	err = e.Fit(x, y)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("no cross-validation data for pipeline '%s'", "pipeline-b"))
}

func TestClone(t *testing.T) {
	x, _ := frame.New(frame.NewSeries("f", []float64{0.1, 0.9, 0.2, 0.8}))
	y := frame.NewCategorical("y", []string{"no", "yes", "no", "yes"})

	e, err := NewBinary("stacked", binaryInputs(t, "pipeline-a"),
		WithMetalearner(&stub{}),
	)
	assert.NoError(t, err)
	assert.NoError(t, e.FitWith(x, y, split.NewStratifiedKFold(2), false))

	c := e.Clone()
	assert.Equal(t, e.Name(), c.Name())
	assert.False(t, c.IsFitted())
	assert.True(t, e.IsFitted())
}
