package split

import (
	"fmt"
	"math/rand"

	"github.com/drakos74/auto-stack/internal/frame"
	"github.com/drakos74/auto-stack/internal/problem"
)

// Fold is one train/validation partition of row positions.
type Fold struct {
	Train []int
	Valid []int
}

// Splitter produces a finite, restartable set of train/validation folds.
// For a fixed seed the folds are deterministic.
type Splitter interface {
	Split(x frame.Frame, y frame.Series) ([]Fold, error)
}

// DefaultFolds is the fold count used when no splitter is supplied.
const DefaultFolds = 3

// KFold partitions rows into k contiguous folds, optionally shuffled.
type KFold struct {
	Folds   int
	Shuffle bool
	Seed    int64
}

func NewKFold(folds int) *KFold {
	return &KFold{
		Folds:   folds,
		Shuffle: true,
	}
}

func (k *KFold) Split(x frame.Frame, y frame.Series) ([]Fold, error) {
	n := x.NumRows()
	if err := check(k.Folds, n, y.Len()); err != nil {
		return nil, err
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if k.Shuffle {
		rand.New(rand.NewSource(k.Seed)).Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	folds := make([]Fold, k.Folds)
	for i := range order {
		f := i % k.Folds
		folds[f].Valid = append(folds[f].Valid, order[i])
	}
	for f := range folds {
		folds[f].Train = complement(folds[f].Valid, n)
	}
	return folds, nil
}

// StratifiedKFold assigns rows to folds per class, preserving class ratios.
type StratifiedKFold struct {
	Folds   int
	Shuffle bool
	Seed    int64
}

func NewStratifiedKFold(folds int) *StratifiedKFold {
	return &StratifiedKFold{
		Folds:   folds,
		Shuffle: true,
	}
}

func (k *StratifiedKFold) Split(x frame.Frame, y frame.Series) ([]Fold, error) {
	n := x.NumRows()
	if err := check(k.Folds, n, y.Len()); err != nil {
		return nil, err
	}

	byClass := make(map[string][]int)
	order := make([]string, 0)
	for i := 0; i < n; i++ {
		l := y.Label(i)
		if _, ok := byClass[l]; !ok {
			order = append(order, l)
		}
		byClass[l] = append(byClass[l], i)
	}

	rng := rand.New(rand.NewSource(k.Seed))
	folds := make([]Fold, k.Folds)
	for _, l := range order {
		rows := byClass[l]
		if k.Shuffle {
			rng.Shuffle(len(rows), func(i, j int) {
				rows[i], rows[j] = rows[j], rows[i]
			})
		}
		for i, r := range rows {
			f := i % k.Folds
			folds[f].Valid = append(folds[f].Valid, r)
		}
	}
	for f := range folds {
		folds[f].Train = complement(folds[f].Valid, n)
	}
	return folds, nil
}

// MakeDataSplitter picks a splitter fit for the problem type.
// Classification problems get a stratified split to keep class ratios per fold.
func MakeDataSplitter(x frame.Frame, y frame.Series, t problem.Type) Splitter {
	if problem.IsRegression(t) {
		return NewKFold(DefaultFolds)
	}
	return NewStratifiedKFold(DefaultFolds)
}

func check(folds, n, ny int) error {
	if folds < 2 {
		return fmt.Errorf("need at least 2 folds, got %d", folds)
	}
	if n != ny {
		return fmt.Errorf("x has %d rows but y has %d", n, ny)
	}
	if n < folds {
		return fmt.Errorf("cannot split %d rows into %d folds", n, folds)
	}
	return nil
}

func complement(valid []int, n int) []int {
	in := make(map[int]struct{}, len(valid))
	for _, v := range valid {
		in[v] = struct{}{}
	}
	train := make([]int, 0, n-len(valid))
	for i := 0; i < n; i++ {
		if _, ok := in[i]; !ok {
			train = append(train, i)
		}
	}
	return train
}
