package components

import (
	"fmt"

	"github.com/drakos74/auto-stack/internal/frame"
)

// LabelEncoder maps class labels to integer codes.
// Classes are sorted, so codes run from 0 to n-1 in label order.
type LabelEncoder struct {
	classes []string
	codes   map[string]int
}

func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{
		codes: make(map[string]int),
	}
}

// Fit records the sorted distinct labels of y.
func (e *LabelEncoder) Fit(y frame.Series) {
	e.classes = y.Classes()
	e.codes = make(map[string]int, len(e.classes))
	for i, c := range e.classes {
		e.codes[c] = i
	}
}

// Transform encodes the labels of y. Unseen labels are an error.
func (e *LabelEncoder) Transform(y frame.Series) ([]int, error) {
	out := make([]int, y.Len())
	for i := 0; i < y.Len(); i++ {
		l := y.Label(i)
		c, ok := e.codes[l]
		if !ok {
			return nil, fmt.Errorf("label '%s' was not seen during fit", l)
		}
		out[i] = c
	}
	return out, nil
}

// FitTransform fits the encoder and encodes y in one pass.
func (e *LabelEncoder) FitTransform(y frame.Series) []int {
	e.Fit(y)
	out, _ := e.Transform(y)
	return out
}

// Classes returns the sorted distinct labels seen during fit.
func (e *LabelEncoder) Classes() []string {
	return append([]string{}, e.classes...)
}

// Decode turns integer codes back into a categorical series.
func (e *LabelEncoder) Decode(name string, codes []int) (frame.Series, error) {
	labels := make([]string, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(e.classes) {
			return frame.Series{}, fmt.Errorf("code %d out of range for %d classes", c, len(e.classes))
		}
		labels[i] = e.classes[c]
	}
	return frame.NewCategorical(name, labels), nil
}
