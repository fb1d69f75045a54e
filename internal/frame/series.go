package frame

import (
	"fmt"
	"sort"
	"strconv"
)

// ColumnType is the logical type tracked for every column.
type ColumnType string

const (
	Numeric     ColumnType = "numeric"
	Categorical ColumnType = "categorical"
	Boolean     ColumnType = "boolean"
)

// Series is a single named column with one value per row.
// Numeric and boolean values are stored as floats,
// categorical values are dictionary coded.
type Series struct {
	name string
	typ  ColumnType
	vals []float64
	cats []string
	idx  []int
}

// NewSeries creates a numeric series with a default positional index.
func NewSeries(name string, vv []float64) Series {
	return Series{
		name: name,
		typ:  Numeric,
		vals: append([]float64{}, vv...),
		idx:  defaultIndex(len(vv)),
	}
}

// NewCategorical creates a dictionary coded series from raw labels.
func NewCategorical(name string, labels []string) Series {
	codes := make(map[string]int)
	cats := make([]string, 0)
	vals := make([]float64, len(labels))
	for i, l := range labels {
		if _, ok := codes[l]; !ok {
			codes[l] = len(cats)
			cats = append(cats, l)
		}
		vals[i] = float64(codes[l])
	}
	return Series{
		name: name,
		typ:  Categorical,
		vals: vals,
		cats: cats,
		idx:  defaultIndex(len(labels)),
	}
}

// NewBoolean creates a boolean series stored as 0/1 floats.
func NewBoolean(name string, vv []bool) Series {
	vals := make([]float64, len(vv))
	for i, v := range vv {
		if v {
			vals[i] = 1
		}
	}
	return Series{
		name: name,
		typ:  Boolean,
		vals: vals,
		idx:  defaultIndex(len(vv)),
	}
}

func defaultIndex(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func (s Series) Name() string {
	return s.name
}

func (s Series) Type() ColumnType {
	return s.typ
}

func (s Series) Len() int {
	return len(s.vals)
}

// Index returns the row identity of the series.
func (s Series) Index() []int {
	return append([]int{}, s.idx...)
}

// WithIndex replaces the row identity of the series.
func (s Series) WithIndex(idx []int) Series {
	s.idx = append([]int{}, idx...)
	return s
}

// WithName renames the series.
func (s Series) WithName(name string) Series {
	s.name = name
	return s
}

// Float returns the raw float value at the given position.
func (s Series) Float(i int) float64 {
	return s.vals[i]
}

// Values returns a copy of the raw float values.
func (s Series) Values() []float64 {
	return append([]float64{}, s.vals...)
}

// Label returns the string representation of the value at the given position.
func (s Series) Label(i int) string {
	switch s.typ {
	case Categorical:
		return s.cats[int(s.vals[i])]
	case Boolean:
		if s.vals[i] != 0 {
			return "true"
		}
		return "false"
	default:
		return strconv.FormatFloat(s.vals[i], 'g', -1, 64)
	}
}

// Labels returns the string representation of all values.
func (s Series) Labels() []string {
	ll := make([]string, len(s.vals))
	for i := range s.vals {
		ll[i] = s.Label(i)
	}
	return ll
}

// Nunique returns the number of distinct values in the series.
func (s Series) Nunique() int {
	seen := make(map[float64]struct{})
	for _, v := range s.vals {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Classes returns the sorted distinct labels of the series.
// Numeric values sort numerically, categorical labels lexicographically.
func (s Series) Classes() []string {
	if s.typ == Numeric {
		seen := make(map[float64]struct{})
		vv := make([]float64, 0)
		for _, v := range s.vals {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				vv = append(vv, v)
			}
		}
		sort.Float64s(vv)
		cc := make([]string, len(vv))
		for i, v := range vv {
			cc[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return cc
	}
	seen := make(map[string]struct{})
	cc := make([]string, 0)
	for i := range s.vals {
		l := s.Label(i)
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			cc = append(cc, l)
		}
	}
	sort.Strings(cc)
	return cc
}

// Select returns the rows at the given positions, carrying their row identity.
func (s Series) Select(rows []int) Series {
	vals := make([]float64, len(rows))
	idx := make([]int, len(rows))
	for i, r := range rows {
		vals[i] = s.vals[r]
		idx[i] = s.idx[r]
	}
	out := s
	out.vals = vals
	out.idx = idx
	return out
}

// ByIndex realigns the series to the given row identities.
// Only lookups are supported, a missing identity is an error.
func (s Series) ByIndex(index []int) (Series, error) {
	pos := make(map[int]int, len(s.idx))
	for i, id := range s.idx {
		pos[id] = i
	}
	rows := make([]int, len(index))
	for i, id := range index {
		p, ok := pos[id]
		if !ok {
			return Series{}, fmt.Errorf("row %d not found in series '%s'", id, s.name)
		}
		rows[i] = p
	}
	return s.Select(rows), nil
}

// ConcatSeries concatenates series row-wise in the given order.
func ConcatSeries(ss ...Series) (Series, error) {
	if len(ss) == 0 {
		return Series{}, fmt.Errorf("no series to concatenate")
	}
	out := Series{
		name: ss[0].name,
		typ:  ss[0].typ,
	}
	if ss[0].typ == Categorical {
		labels := make([]string, 0)
		idx := make([]int, 0)
		for _, s := range ss {
			labels = append(labels, s.Labels()...)
			idx = append(idx, s.idx...)
		}
		cat := NewCategorical(out.name, labels)
		return cat.WithIndex(idx), nil
	}
	for _, s := range ss {
		if s.typ != out.typ {
			return Series{}, fmt.Errorf("cannot concatenate series of type %s with %s", s.typ, out.typ)
		}
		out.vals = append(out.vals, s.vals...)
		out.idx = append(out.idx, s.idx...)
	}
	return out, nil
}
