package frame

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Frame is an ordered collection of equally sized columns sharing one row identity.
type Frame struct {
	cols []Series
	idx  []int
}

// New creates a frame from the given columns with a default positional index.
// All columns must have the same length and unique names.
func New(cols ...Series) (Frame, error) {
	if len(cols) == 0 {
		return Frame{idx: []int{}}, nil
	}
	n := cols[0].Len()
	names := make(map[string]struct{}, len(cols))
	cc := make([]Series, len(cols))
	for i, c := range cols {
		if c.Len() != n {
			return Frame{}, fmt.Errorf("column '%s' has %d rows, want %d", c.Name(), c.Len(), n)
		}
		if _, ok := names[c.Name()]; ok {
			return Frame{}, fmt.Errorf("duplicate column name '%s'", c.Name())
		}
		names[c.Name()] = struct{}{}
		cc[i] = c
	}
	return Frame{cols: cc, idx: defaultIndex(n)}, nil
}

// NumRows returns the number of rows.
func (f Frame) NumRows() int {
	return len(f.idx)
}

// NumCols returns the number of columns.
func (f Frame) NumCols() int {
	return len(f.cols)
}

// Index returns the row identity of the frame.
func (f Frame) Index() []int {
	return append([]int{}, f.idx...)
}

// WithIndex replaces the row identity of the frame.
func (f Frame) WithIndex(idx []int) Frame {
	f.idx = append([]int{}, idx...)
	return f
}

// Columns returns the column names in order.
func (f Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name()
	}
	return names
}

// Column returns the column with the given name, carrying the frame's row identity.
func (f Frame) Column(name string) (Series, error) {
	for _, c := range f.cols {
		if c.Name() == name {
			return c.WithIndex(f.idx), nil
		}
	}
	return Series{}, fmt.Errorf("column '%s' not found", name)
}

// Renamed renames columns according to the given mapping.
// Names missing from the mapping are kept.
func (f Frame) Renamed(mapping map[string]string) Frame {
	cols := make([]Series, len(f.cols))
	for i, c := range f.cols {
		if name, ok := mapping[c.Name()]; ok {
			c = c.WithName(name)
		}
		cols[i] = c
	}
	f.cols = cols
	return f
}

// Drop removes the column with the given name.
func (f Frame) Drop(name string) Frame {
	cols := make([]Series, 0, len(f.cols))
	for _, c := range f.cols {
		if c.Name() != name {
			cols = append(cols, c)
		}
	}
	f.cols = cols
	return f
}

// Select returns the rows at the given positions, carrying their row identity.
func (f Frame) Select(rows []int) Frame {
	cols := make([]Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.Select(rows)
	}
	idx := make([]int, len(rows))
	for i, r := range rows {
		idx[i] = f.idx[r]
	}
	return Frame{cols: cols, idx: idx}
}

// ByIndex realigns the frame to the given row identities via index lookup only.
func (f Frame) ByIndex(index []int) (Frame, error) {
	pos := make(map[int]int, len(f.idx))
	for i, id := range f.idx {
		pos[id] = i
	}
	rows := make([]int, len(index))
	for i, id := range index {
		p, ok := pos[id]
		if !ok {
			return Frame{}, fmt.Errorf("row %d not found in frame", id)
		}
		rows[i] = p
	}
	return f.Select(rows), nil
}

// Row returns the raw float values of the given row in column order.
func (f Frame) Row(i int) []float64 {
	row := make([]float64, len(f.cols))
	for j, c := range f.cols {
		row[j] = c.Float(i)
	}
	return row
}

// Rows returns all rows as raw float slices.
func (f Frame) Rows() [][]float64 {
	rows := make([][]float64, f.NumRows())
	for i := range rows {
		rows[i] = f.Row(i)
	}
	return rows
}

// Dense converts the frame to a gonum dense matrix.
func (f Frame) Dense() *mat.Dense {
	r, c := f.NumRows(), f.NumCols()
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, f.cols[j].Float(i))
		}
	}
	return m
}

// FromDense creates a numeric frame out of a gonum matrix with generated column names.
func FromDense(m mat.Matrix) Frame {
	r, c := m.Dims()
	cols := make([]Series, c)
	for j := 0; j < c; j++ {
		vv := make([]float64, r)
		for i := 0; i < r; i++ {
			vv[i] = m.At(i, j)
		}
		cols[j] = NewSeries(strconv.Itoa(j), vv)
	}
	f, _ := New(cols...)
	return f
}

// ConcatRows concatenates frames row-wise in the given order.
// All frames must carry the same columns in the same order.
func ConcatRows(ff ...Frame) (Frame, error) {
	if len(ff) == 0 {
		return Frame{}, fmt.Errorf("no frames to concatenate")
	}
	first := ff[0]
	for _, f := range ff[1:] {
		if f.NumCols() != first.NumCols() {
			return Frame{}, fmt.Errorf("cannot concatenate frames with %d and %d columns", first.NumCols(), f.NumCols())
		}
		for i, c := range f.cols {
			if c.Name() != first.cols[i].Name() {
				return Frame{}, fmt.Errorf("column mismatch at %d: '%s' vs '%s'", i, first.cols[i].Name(), c.Name())
			}
		}
	}
	cols := make([]Series, first.NumCols())
	for i := range first.cols {
		ss := make([]Series, len(ff))
		for j, f := range ff {
			ss[j] = f.cols[i]
		}
		c, err := ConcatSeries(ss...)
		if err != nil {
			return Frame{}, err
		}
		cols[i] = c
	}
	idx := make([]int, 0)
	for _, f := range ff {
		idx = append(idx, f.idx...)
	}
	return Frame{cols: cols, idx: idx}, nil
}

// ConcatColumns concatenates frames column-wise.
// All frames must have the same number of rows and mutually unique column names.
// The row identity of the first frame is kept.
func ConcatColumns(ff ...Frame) (Frame, error) {
	if len(ff) == 0 {
		return Frame{}, fmt.Errorf("no frames to concatenate")
	}
	n := ff[0].NumRows()
	names := make(map[string]struct{})
	cols := make([]Series, 0)
	for _, f := range ff {
		if f.NumRows() != n {
			return Frame{}, fmt.Errorf("cannot concatenate columns of %d rows with %d rows", n, f.NumRows())
		}
		for _, c := range f.cols {
			if _, ok := names[c.Name()]; ok {
				return Frame{}, fmt.Errorf("duplicate column name '%s'", c.Name())
			}
			names[c.Name()] = struct{}{}
			cols = append(cols, c)
		}
	}
	return Frame{cols: cols, idx: append([]int{}, ff[0].idx...)}, nil
}
