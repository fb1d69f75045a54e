package problem

import (
	"errors"
	"fmt"
	"strings"
)

// Type is a canonical problem type.
type Type string

const (
	Binary               Type = "binary"
	Multiclass           Type = "multiclass"
	Regression           Type = "regression"
	TimeSeriesBinary     Type = "time series binary"
	TimeSeriesMulticlass Type = "time series multiclass"
	TimeSeriesRegression Type = "time series regression"
)

// ErrUnknownType is returned when a string does not name a canonical problem type.
var ErrUnknownType = errors.New("problem type does not exist")

var types = map[string]Type{
	"BINARY":                 Binary,
	"MULTICLASS":             Multiclass,
	"REGRESSION":             Regression,
	"TIME SERIES BINARY":     TimeSeriesBinary,
	"TIME SERIES MULTICLASS": TimeSeriesMulticlass,
	"TIME SERIES REGRESSION": TimeSeriesRegression,
}

func (t Type) String() string {
	return string(t)
}

// Resolve converts a Type or a case-insensitive string into the canonical Type.
func Resolve(v interface{}) (Type, error) {
	switch tp := v.(type) {
	case Type:
		return tp, nil
	case string:
		if t, ok := types[strings.ToUpper(tp)]; ok {
			return t, nil
		}
		return "", fmt.Errorf("problem type '%s' %w", tp, ErrUnknownType)
	default:
		return "", fmt.Errorf("problem type '%v' %w", v, ErrUnknownType)
	}
}

// ResolveAll converts a sequence of types or strings, preserving the input order.
func ResolveAll(vv ...interface{}) ([]Type, error) {
	tt := make([]Type, len(vv))
	for i, v := range vv {
		t, err := Resolve(v)
		if err != nil {
			return nil, err
		}
		tt[i] = t
	}
	return tt, nil
}

func IsBinary(t Type) bool {
	return t == Binary || t == TimeSeriesBinary
}

func IsMulticlass(t Type) bool {
	return t == Multiclass || t == TimeSeriesMulticlass
}

func IsRegression(t Type) bool {
	return t == Regression || t == TimeSeriesRegression
}

func IsTimeSeries(t Type) bool {
	return strings.HasPrefix(string(t), "time series")
}
