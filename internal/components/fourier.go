package components

import (
	"fmt"
	"math/cmplx"

	"github.com/drakos74/auto-stack/internal/frame"
	"github.com/mjibson/go-dsp/fft"
)

// FourierOptions configures the spectral feature expansion.
// Window is the number of trailing rows fed into each transform.
// Amplitudes is the number of leading frequency amplitudes kept per row.
type FourierOptions struct {
	Window     int `json:"window"`
	Amplitudes int `json:"amplitudes"`
}

func (o FourierOptions) withDefaults() FourierOptions {
	if o.Window == 0 {
		o.Window = 8
	}
	if o.Amplitudes == 0 {
		o.Amplitudes = 3
	}
	return o
}

func (o FourierOptions) validate() error {
	if o.Window < 0 || o.Amplitudes < 0 {
		return fmt.Errorf("window and amplitudes must be positive")
	}
	return nil
}

// Fourier expands a numeric column into rolling spectral amplitude features.
type Fourier struct {
	opts FourierOptions
}

// NewFourier creates a spectral feature transformer.
func NewFourier(opts FourierOptions) (*Fourier, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Fourier{opts: opts.withDefaults()}, nil
}

// Transform appends one amplitude column per kept frequency for the named column.
// Each row sees the spectrum of its trailing window, earlier rows use a shorter window.
func (f *Fourier) Transform(x frame.Frame, column string) (frame.Frame, error) {
	s, err := x.Column(column)
	if err != nil {
		return frame.Frame{}, err
	}
	if s.Type() != frame.Numeric {
		return frame.Frame{}, fmt.Errorf("column '%s' is not numeric", column)
	}

	vv := s.Values()
	cols := make([][]float64, f.opts.Amplitudes)
	for j := range cols {
		cols[j] = make([]float64, len(vv))
	}
	for i := range vv {
		from := i - f.opts.Window + 1
		if from < 0 {
			from = 0
		}
		cc := fft.FFTReal(vv[from : i+1])
		for j := 0; j < f.opts.Amplitudes && j < len(cc); j++ {
			cols[j][i] = cmplx.Abs(cc[j])
		}
	}

	ss := make([]frame.Series, f.opts.Amplitudes)
	for j := range ss {
		ss[j] = frame.NewSeries(fmt.Sprintf("%s fft %d", column, j), cols[j])
	}
	expanded, err := frame.New(ss...)
	if err != nil {
		return frame.Frame{}, err
	}
	return frame.ConcatColumns(x, expanded.WithIndex(x.Index()))
}
