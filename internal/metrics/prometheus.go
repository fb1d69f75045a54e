package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Fits        *prometheus.CounterVec
	Predictions *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Fits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "automl",
				Name:      "fits",
			}, []string{"pipeline", "mode"}),
		Predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "automl",
				Name:      "predictions",
			}, []string{"pipeline", "method"}),
	}
}
