package components

import (
	"fmt"
	"math"

	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/drakos74/go-ex-machina/xmachina/net"
	"github.com/drakos74/go-ex-machina/xmachina/net/ff"
	"github.com/drakos74/go-ex-machina/xmath"
)

// NeuralOptions configures the feed-forward network estimator.
// Hidden is the size of each hidden layer.
// Rate is the learning rate for weights and biases.
// Epochs is the number of passes over the training set.
type NeuralOptions struct {
	Hidden []int   `json:"hidden"`
	Rate   float64 `json:"rate"`
	Epochs int     `json:"epochs"`
}

func (o NeuralOptions) withDefaults() NeuralOptions {
	if len(o.Hidden) == 0 {
		o.Hidden = []int{16}
	}
	if o.Rate == 0 {
		o.Rate = 0.1
	}
	if o.Epochs == 0 {
		o.Epochs = 100
	}
	return o
}

func (o NeuralOptions) validate() error {
	for _, h := range o.Hidden {
		if h <= 0 {
			return fmt.Errorf("hidden layer size must be positive, got %d", h)
		}
	}
	if o.Rate < 0 || o.Epochs < 0 {
		return fmt.Errorf("rate and epochs must be positive")
	}
	return nil
}

// Neural is a feed-forward network classifier with a softmax output layer.
type Neural struct {
	opts    NeuralOptions
	network *ff.Network
	classes int
}

// NewNeural creates a new unfitted feed-forward network estimator.
func NewNeural(opts NeuralOptions) (*Neural, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Neural{opts: opts.withDefaults()}, nil
}

func (n *Neural) Name() string {
	return "Neural Network Classifier"
}

func (n *Neural) build(inputs, classes int) *ff.Network {
	rate := xml.Learn(n.opts.Rate, n.opts.Rate)
	initW := xmath.Rand(-1, 1, math.Sqrt)
	initB := xmath.Rand(-1, 1, math.Sqrt)

	network := ff.New(inputs, classes)
	for _, h := range n.opts.Hidden {
		network.Add(h, net.NewBuilder().
			WithModule(xml.Base().
				WithRate(rate).
				WithActivation(xml.TanH)).
			WithWeights(initW, initB).
			Factory(net.NewActivationCell))
	}
	network.Add(classes, net.NewBuilder().
		WithModule(xml.Base().
			WithRate(rate).
			WithActivation(xml.TanH)).
		WithWeights(initW, initB).
		Factory(net.NewActivationCell))
	network.Add(classes, net.NewBuilder().CellFactory(net.NewSoftCell))
	network.Loss(xml.Pow)
	return network
}

func (n *Neural) Fit(xx [][]float64, yy []int, classes int) error {
	if len(xx) == 0 {
		return fmt.Errorf("cannot fit on empty dataset")
	}
	network := n.build(len(xx[0]), classes)
	for e := 0; e < n.opts.Epochs; e++ {
		for i, x := range xx {
			expected := xmath.Vec(classes)
			expected[yy[i]] = 1
			inp := xmath.Vec(len(x)).With(x...)
			network.Train(inp, expected)
		}
	}
	n.network = network
	n.classes = classes
	return nil
}

func (n *Neural) Proba(x []float64) ([]float64, error) {
	if n.network == nil {
		return nil, fmt.Errorf("network is not fitted")
	}
	inp := xmath.Vec(len(x)).With(x...)
	out := n.network.Predict(inp)
	pp := make([]float64, n.classes)
	copy(pp, out)
	return pp, nil
}

func (n *Neural) Clone() Estimator {
	c, _ := NewNeural(n.opts)
	return c
}
