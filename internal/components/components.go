package components

// Estimator is a trainable classifier consuming encoded labels.
type Estimator interface {
	Name() string
	// Fit trains the estimator on raw feature rows and encoded class labels.
	Fit(xx [][]float64, yy []int, classes int) error
	// Proba returns one probability estimate per class for a single row.
	Proba(x []float64) ([]float64, error)
	// Clone returns a new unfitted estimator with the same configuration.
	Clone() Estimator
}

// ConstructEstimator defines an estimator constructor func.
type ConstructEstimator func() Estimator
