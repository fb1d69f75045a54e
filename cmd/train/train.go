package main

import (
	"fmt"
	"math"

	"github.com/drakos74/auto-stack/infra/config"
	"github.com/drakos74/auto-stack/internal/baseline"
	"github.com/drakos74/auto-stack/internal/components"
	"github.com/drakos74/auto-stack/internal/frame"
	"github.com/drakos74/auto-stack/internal/notify"
	"github.com/drakos74/auto-stack/internal/pipeline"
	"github.com/drakos74/auto-stack/internal/pipeline/ensemble"
	"github.com/drakos74/auto-stack/internal/server"
	"github.com/drakos74/auto-stack/internal/split"
	"github.com/drakos74/auto-stack/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

type trainConfig struct {
	Dataset   string  `json:"dataset"`
	Header    bool    `json:"header"`
	Target    string  `json:"target"`
	Folds     int     `json:"folds"`
	Workers   int     `json:"workers"`
	Holdout   float64 `json:"holdout"`
	Threshold float64 `json:"threshold"`
	Trees     int     `json:"trees"`
	Port      int     `json:"port"`
	Telegram  bool    `json:"telegram"`
}

func main() {

	var cfg trainConfig
	config.MustLoad("train", &cfg)

	if cfg.Port > 0 {
		go func() {
			err := server.NewServer("train", cfg.Port).
				Add(server.Live()).
				WithMetrics().
				Run()
			if err != nil {
				log.Error().Err(err).Msg("could not serve metrics")
			}
		}()
	}

	data, err := frame.LoadCSV(cfg.Dataset, cfg.Header)
	if err != nil {
		panic(fmt.Sprintf("could not load dataset: %+v", err))
	}
	y, err := data.Column(cfg.Target)
	if err != nil {
		panic(fmt.Sprintf("could not find target column: %+v", err))
	}
	x := data.Drop(cfg.Target)
	log.Info().
		Str("dataset", cfg.Dataset).
		Int("rows", x.NumRows()).
		Int("features", x.NumCols()).
		Strs("classes", y.Classes()).
		Msg("loaded dataset")

	xTrain, yTrain, xTest, yTest, err := holdout(x, y, cfg.Holdout)
	if err != nil {
		panic(fmt.Sprintf("could not split holdout set: %+v", err))
	}

	stacked, err := buildEnsemble(cfg)
	if err != nil {
		panic(fmt.Sprintf("could not build ensemble: %+v", err))
	}

	err = stacked.FitWith(xTrain, yTrain, split.NewStratifiedKFold(cfg.Folds), false)
	if err != nil {
		panic(fmt.Sprintf("could not fit ensemble: %+v", err))
	}

	var objective *pipeline.Objective
	if cfg.Threshold > 0 {
		objective = &pipeline.Objective{Name: "threshold", Threshold: cfg.Threshold}
	}
	pred, err := stacked.Predict(xTest, objective)
	if err != nil {
		panic(fmt.Sprintf("could not predict on holdout set: %+v", err))
	}
	acc := accuracy(pred, yTest)

	base, err := baseline.RandomForest(cfg.Dataset, cfg.Header)
	if err != nil {
		log.Warn().Err(err).Msg("could not train baseline")
	}

	log.Info().
		Str("ensemble", stacked.Name()).
		Str("id", stacked.ID()).
		Float64("accuracy", acc).
		Float64("baseline", base).
		Msg("training finished")

	var reporter notify.Reporter = notify.NewVoid()
	if cfg.Telegram {
		reporter, err = notify.NewTelegram()
		if err != nil {
			panic(fmt.Sprintf("could not create telegram reporter: %+v", err))
		}
	}
	err = reporter.Report("training finished",
		fmt.Sprintf("%s (%s)\naccuracy = %.3f\nbaseline = %.3f", stacked.Name(), stacked.ID(), acc, base))
	if err != nil {
		log.Warn().Err(err).Msg("could not send report")
	}
}

func buildEnsemble(cfg trainConfig) (*ensemble.Pipeline, error) {
	logisticEstimator, err := components.NewLogistic(components.LogisticOptions{})
	if err != nil {
		return nil, err
	}
	forestEstimator, err := components.NewForest(components.ForestOptions{Trees: cfg.Trees})
	if err != nil {
		return nil, err
	}
	neuralEstimator, err := components.NewNeural(components.NeuralOptions{})
	if err != nil {
		return nil, err
	}

	logistic, err := pipeline.NewBinary("logistic", logisticEstimator)
	if err != nil {
		return nil, err
	}
	forest, err := pipeline.NewBinary("forest", forestEstimator)
	if err != nil {
		return nil, err
	}
	neural, err := pipeline.NewBinary("neural", neuralEstimator)
	if err != nil {
		return nil, err
	}

	options := []ensemble.Option{
		ensemble.WithStorage(json.BlobShard("train")),
	}
	if cfg.Workers > 0 {
		options = append(options, ensemble.WithWorkers(cfg.Workers))
	}
	return ensemble.NewBinary("stacked",
		[]pipeline.Pipeline{logistic, forest, neural},
		options...,
	)
}

// holdout carves a stratified test set of roughly the given ratio out of the data.
func holdout(x frame.Frame, y frame.Series, ratio float64) (frame.Frame, frame.Series, frame.Frame, frame.Series, error) {
	if ratio <= 0 || ratio >= 0.5 {
		return frame.Frame{}, frame.Series{}, frame.Frame{}, frame.Series{}, fmt.Errorf("holdout ratio must be in (0, 0.5), got %f", ratio)
	}
	k := int(math.Round(1 / ratio))
	folds, err := split.NewStratifiedKFold(k).Split(x, y)
	if err != nil {
		return frame.Frame{}, frame.Series{}, frame.Frame{}, frame.Series{}, err
	}
	f := folds[0]
	return x.Select(f.Train), y.Select(f.Train), x.Select(f.Valid), y.Select(f.Valid), nil
}

func accuracy(pred, truth frame.Series) float64 {
	if pred.Len() == 0 {
		return 0.0
	}
	hits := 0
	for i := 0; i < pred.Len(); i++ {
		if pred.Label(i) == truth.Label(i) {
			hits++
		}
	}
	return float64(hits) / float64(pred.Len())
}
