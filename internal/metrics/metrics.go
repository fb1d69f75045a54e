package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.Fits, Observer.prometheus.Predictions)
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

// IncrementFit counts one fit of the given pipeline, mode is 'direct', 'cv' or 'split'.
func (m *Metrics) IncrementFit(pipeline, mode string) {
	m.prometheus.Fits.WithLabelValues(pipeline, mode).Inc()
}

// IncrementPredict counts one prediction call of the given pipeline.
func (m *Metrics) IncrementPredict(pipeline, method string) {
	m.prometheus.Predictions.WithLabelValues(pipeline, method).Inc()
}
