package frame

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Infer coerces raw tabular input into a typed frame.
// Frames pass through unchanged, raw float rows get generated column names.
func Infer(v interface{}) (Frame, error) {
	switch x := v.(type) {
	case Frame:
		return x, nil
	case [][]float64:
		if len(x) == 0 {
			return New()
		}
		cols := make([]Series, len(x[0]))
		for j := range x[0] {
			vv := make([]float64, len(x))
			for i := range x {
				vv[i] = x[i][j]
			}
			cols[j] = NewSeries(strconv.Itoa(j), vv)
		}
		return New(cols...)
	case *mat.Dense:
		return FromDense(x), nil
	default:
		return Frame{}, fmt.Errorf("cannot infer frame from %T", v)
	}
}

// InferSeries coerces raw column input into a typed series.
// String values parse to a numeric series when every value is a number,
// and fall back to a categorical series otherwise.
func InferSeries(name string, v interface{}) (Series, error) {
	switch x := v.(type) {
	case Series:
		return x, nil
	case []float64:
		return NewSeries(name, x), nil
	case []int:
		vv := make([]float64, len(x))
		for i, n := range x {
			vv[i] = float64(n)
		}
		return NewSeries(name, vv), nil
	case []bool:
		return NewBoolean(name, x), nil
	case []string:
		vv := make([]float64, len(x))
		numeric := true
		for i, s := range x {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				numeric = false
				break
			}
			vv[i] = f
		}
		if numeric {
			return NewSeries(name, vv), nil
		}
		return NewCategorical(name, x), nil
	default:
		return Series{}, fmt.Errorf("cannot infer series from %T", v)
	}
}
