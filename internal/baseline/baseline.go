package baseline

import (
	"fmt"
	"math/rand"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
	"github.com/sjwhitworth/golearn/evaluation"
	"github.com/sjwhitworth/golearn/filters"
)

// seed keeps baseline runs comparable across training sessions.
const seed = 44111342

func newRandomForest() *ensemble.RandomForest {
	return ensemble.NewRandomForest(100, 3)
}

func discretise(data *base.DenseInstances) (*base.LazilyFilteredInstances, error) {
	filt := filters.NewChiMergeFilter(data, 0.999)
	for _, a := range base.NonClassFloatAttributes(data) {
		filt.AddAttribute(a)
	}
	err := filt.Train()
	if err != nil {
		return nil, err
	}
	return base.NewLazilyFilteredInstances(data, filt), nil
}

// RandomForest trains a plain random forest on the given CSV dataset and
// returns its holdout accuracy on a 60-40 split. The stacked ensemble should
// beat this score, otherwise the stacking adds nothing on this dataset.
func RandomForest(fileName string, hasHeader bool) (float64, error) {
	rand.Seed(seed)

	data, err := base.ParseCSVToInstances(fileName, hasHeader)
	if err != nil {
		return 0.0, fmt.Errorf("could not parse dataset: %w", err)
	}

	filtered, err := discretise(data)
	if err != nil {
		return 0.0, err
	}

	trainData, testData := base.InstancesTrainTestSplit(filtered, 0.60)

	tree := newRandomForest()
	err = tree.Fit(trainData)
	if err != nil {
		return 0.0, err
	}
	predictions, err := tree.Predict(testData)
	if err != nil {
		return 0.0, err
	}

	cf, err := evaluation.GetConfusionMatrix(testData, predictions)
	if err != nil {
		return 0.0, err
	}
	return evaluation.GetAccuracy(cf), nil
}
