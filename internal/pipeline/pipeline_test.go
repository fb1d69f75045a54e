package pipeline

import (
	"testing"

	"github.com/drakos74/auto-stack/internal/components"
	"github.com/drakos74/auto-stack/internal/frame"
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
	if s.classes == 2 {
		pp[1] = x[0]
		pp[0] = 1 - x[0]
		return pp, nil
	}
	c := int(x[0])
	if c < 0 || c >= s.classes {
		c = 0
	}
	pp[c] = 1
	return pp, nil
}

func (s *stub) Clone() components.Estimator {
	return &stub{}
}

func TestBinaryValidateLabels(t *testing.T) {
	c := BinaryContract()

	assert.NoError(t, c.ValidateLabels(frame.NewCategorical("y", []string{"a", "b", "a"})))

	err := c.ValidateLabels(frame.NewCategorical("y", []string{"a", "a"}))
	assert.Error(t, err)
	assert.Equal(t, "Binary pipelines require y to have 2 unique classes!", err.Error())

	err = c.ValidateLabels(frame.NewCategorical("y", []string{"a", "b", "c"}))
	assert.Error(t, err)
}

func TestMulticlassValidateLabels(t *testing.T) {
	c := MulticlassContract()

	assert.NoError(t, c.ValidateLabels(frame.NewCategorical("y", []string{"a", "b", "c"})))

	for _, yy := range [][]string{{"a"}, {"a", "b"}} {
		err := c.ValidateLabels(frame.NewCategorical("y", yy))
		assert.Error(t, err)
		assert.Equal(t, "Multiclass pipelines require y to have 3 or more unique classes!", err.Error())
	}
}

func TestBinaryPipeline(t *testing.T) {
	x, _ := frame.New(frame.NewSeries("f", []float64{0.1, 0.9, 0.2, 0.8}))
	y := frame.NewCategorical("y", []string{"no", "yes", "no", "yes"})

	p, err := NewBinary("stub-pipeline", &stub{})
	assert.NoError(t, err)
	assert.False(t, p.IsFitted())

	_, err = p.PredictProba(x)
	assert.Error(t, err)

	assert.NoError(t, p.Fit(x, y))
	assert.True(t, p.IsFitted())
	assert.Equal(t, []string{"no", "yes"}, p.Classes())

	proba, err := p.PredictProba(x)
	assert.NoError(t, err)
	assert.Equal(t, []string{"no", "yes"}, proba.Columns())

	pred, err := p.Predict(x, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"no", "yes", "no", "yes"}, pred.Labels())

	// a stricter threshold flips the positives
	strict := &Objective{Name: "precision", Threshold: 0.95}
	pred, err = p.Predict(x, strict)
	assert.NoError(t, err)
	assert.Equal(t, []string{"no", "no", "no", "no"}, pred.Labels())
}

func TestBinaryPipelineRejectsLabels(t *testing.T) {
	x, _ := frame.New(frame.NewSeries("f", []float64{1, 2, 3}))
	y := frame.NewCategorical("y", []string{"a", "b", "c"})

	p, _ := NewBinary("stub-pipeline", &stub{})
	assert.Error(t, p.Fit(x, y))
	assert.False(t, p.IsFitted())
}

func TestMulticlassPipeline(t *testing.T) {
	x, _ := frame.New(frame.NewSeries("f", []float64{0, 1, 2, 1}))
	y := frame.NewCategorical("y", []string{"a", "b", "c", "b"})

	p, err := NewMulticlass("stub-pipeline", &stub{})
	assert.NoError(t, err)
	assert.NoError(t, p.Fit(x, y))

	pred, err := p.Predict(x, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "b"}, pred.Labels())

	_, err = p.Predict(x, &Objective{Name: "precision", Threshold: 0.9})
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	x, _ := frame.New(frame.NewSeries("f", []float64{0.1, 0.9}))
	y := frame.NewCategorical("y", []string{"no", "yes"})

	p, _ := NewBinary("stub-pipeline", &stub{})
	assert.NoError(t, p.Fit(x, y))

	c := p.Clone()
	assert.Equal(t, p.Name(), c.Name())
	assert.False(t, c.IsFitted())
	assert.True(t, p.IsFitted())
}
