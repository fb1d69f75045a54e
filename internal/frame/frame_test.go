package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFrame(t *testing.T) {
	f, err := New(
		NewSeries("a", []float64{1, 2, 3}),
		NewSeries("b", []float64{4, 5, 6}),
	)
	assert.NoError(t, err)
	assert.Equal(t, 3, f.NumRows())
	assert.Equal(t, 2, f.NumCols())
	assert.Equal(t, []string{"a", "b"}, f.Columns())
	assert.Equal(t, []int{0, 1, 2}, f.Index())

	_, err = New(
		NewSeries("a", []float64{1}),
		NewSeries("a", []float64{2}),
	)
	assert.Error(t, err)

	_, err = New(
		NewSeries("a", []float64{1, 2}),
		NewSeries("b", []float64{1}),
	)
	assert.Error(t, err)
}

func TestSelectKeepsRowIdentity(t *testing.T) {
	f, _ := New(NewSeries("a", []float64{10, 20, 30, 40}))

	sel := f.Select([]int{3, 1})
	assert.Equal(t, []int{3, 1}, sel.Index())
	assert.Equal(t, []float64{40}, sel.Row(0))

	c, err := sel.Column("a")
	assert.NoError(t, err)
	assert.Equal(t, []float64{40, 20}, c.Values())
}

func TestByIndex(t *testing.T) {
	f, _ := New(NewSeries("a", []float64{10, 20, 30, 40}))
	sel := f.Select([]int{2, 0, 3})

	re, err := sel.ByIndex([]int{0, 3})
	assert.NoError(t, err)
	c, _ := re.Column("a")
	assert.Equal(t, []float64{10, 40}, c.Values())

	_, err = sel.ByIndex([]int{1})
	assert.Error(t, err)
}

func TestConcatRows(t *testing.T) {
	a, _ := New(NewSeries("x", []float64{1, 2}))
	b, _ := New(NewSeries("x", []float64{3}))

	f, err := ConcatRows(a.Select([]int{1, 0}), b)
	assert.NoError(t, err)
	assert.Equal(t, 3, f.NumRows())
	c, _ := f.Column("x")
	assert.Equal(t, []float64{2, 1, 3}, c.Values())
	assert.Equal(t, []int{1, 0, 0}, f.Index())

	other, _ := New(NewSeries("y", []float64{9}))
	_, err = ConcatRows(a, other)
	assert.Error(t, err)
}

func TestConcatColumns(t *testing.T) {
	a, _ := New(NewSeries("x", []float64{1, 2}))
	b, _ := New(NewSeries("y", []float64{3, 4}))

	f, err := ConcatColumns(a, b)
	assert.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, f.Columns())

	dup, _ := New(NewSeries("x", []float64{5, 6}))
	_, err = ConcatColumns(a, dup)
	assert.Error(t, err)

	short, _ := New(NewSeries("z", []float64{5}))
	_, err = ConcatColumns(a, short)
	assert.Error(t, err)
}

func TestRenamedAndDrop(t *testing.T) {
	f, _ := New(
		NewSeries("a", []float64{1}),
		NewSeries("b", []float64{2}),
	)
	f = f.Renamed(map[string]string{"a": "0"})
	assert.Equal(t, []string{"0", "b"}, f.Columns())

	f = f.Drop("0")
	assert.Equal(t, []string{"b"}, f.Columns())
}

func TestSeriesClasses(t *testing.T) {
	s := NewCategorical("y", []string{"dog", "cat", "dog", "bird"})
	assert.Equal(t, 3, s.Nunique())
	assert.Equal(t, []string{"bird", "cat", "dog"}, s.Classes())

	n := NewSeries("y", []float64{2, 10, 2, 1})
	assert.Equal(t, 3, n.Nunique())
	assert.Equal(t, []string{"1", "2", "10"}, n.Classes())
}

func TestSeriesByIndex(t *testing.T) {
	s := NewSeries("y", []float64{10, 20, 30}).WithIndex([]int{5, 6, 7})
	re, err := s.ByIndex([]int{7, 5})
	assert.NoError(t, err)
	assert.Equal(t, []float64{30, 10}, re.Values())

	_, err = s.ByIndex([]int{1})
	assert.Error(t, err)
}

func TestInferSeries(t *testing.T) {
	s, err := InferSeries("a", []string{"1", "2.5", "3"})
	assert.NoError(t, err)
	assert.Equal(t, Numeric, s.Type())

	s, err = InferSeries("a", []string{"1", "x", "3"})
	assert.NoError(t, err)
	assert.Equal(t, Categorical, s.Type())

	s, err = InferSeries("a", []int{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, s.Values())

	_, err = InferSeries("a", 42)
	assert.Error(t, err)
}

func TestInferFrame(t *testing.T) {
	f, err := Infer([][]float64{{1, 2}, {3, 4}})
	assert.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, f.Columns())
	assert.Equal(t, []float64{1, 2}, f.Row(0))

	same, err := Infer(f)
	assert.NoError(t, err)
	assert.Equal(t, f.Columns(), same.Columns())

	_, err = Infer("nope")
	assert.Error(t, err)
}

func TestDenseRoundTrip(t *testing.T) {
	f, _ := New(
		NewSeries("a", []float64{1, 3}),
		NewSeries("b", []float64{2, 4}),
	)
	m := f.Dense()
	back := FromDense(m)
	assert.Equal(t, f.Rows(), back.Rows())
}
