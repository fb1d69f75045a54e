package ensemble

import (
	"fmt"
	"strconv"

	"github.com/drakos74/auto-stack/internal/frame"
)

// reshape normalizes one input pipeline's probability predictions into
// metalearner features. Columns are renamed to their position, for a binary
// result the first column is dropped since both probabilities are collinear,
// and the rest get a composite name unique across input pipelines.
// Trained ensembles depend on these names, they must not change.
func reshape(preds interface{}, pipelineName string) (frame.Frame, error) {
	f, err := frame.Infer(preds)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("preds must be in the form of a frame: %w", err)
	}

	positional := make(map[string]string, f.NumCols())
	for i, col := range f.Columns() {
		positional[col] = strconv.Itoa(i)
	}
	f = f.Renamed(positional)

	if f.NumCols() == 2 {
		f = f.Drop(f.Columns()[0])
	}

	composite := make(map[string]string, f.NumCols())
	for _, col := range f.Columns() {
		composite[col] = fmt.Sprintf("Col %s %s.x", col, pipelineName)
	}
	return f.Renamed(composite), nil
}
