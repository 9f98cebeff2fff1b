package models

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// FilterKind selects how a filter tests a row.
type FilterKind string

const (
	// FilterNumericRange keeps rows whose value parses into [Min, Max].
	FilterNumericRange FilterKind = "numeric_range"
	// FilterCategoricalIn keeps rows whose stringified value is in Values.
	FilterCategoricalIn FilterKind = "categorical_in"
)

// Filter is a declarative predicate over one column.
type Filter struct {
	// Column is the column the filter tests.
	Column string
	// Kind selects range or membership semantics.
	Kind FilterKind
	// Min is the inclusive lower bound of a numeric range.
	Min float64
	// Max is the inclusive upper bound of a numeric range.
	Max float64
	// Values is the allowed set of a categorical filter, as strings.
	Values []string
}

// RangeFilter returns a numeric range filter.
func RangeFilter(column string, min, max float64) Filter {
	return Filter{Column: column, Kind: FilterNumericRange, Min: min, Max: max}
}

// InFilter returns a categorical membership filter.
func InFilter(column string, values ...string) Filter {
	return Filter{Column: column, Kind: FilterCategoricalIn, Values: values}
}

type filterJSON struct {
	Column string          `json:"column"`
	Type   FilterKind      `json:"type"`
	Value  json.RawMessage `json:"value"`
}

// MarshalJSON encodes the filter with a kind-dependent "value" field:
// a [min, max] pair or an array of strings.
func (f Filter) MarshalJSON() ([]byte, error) {
	var value interface{}
	switch f.Kind {
	case FilterNumericRange:
		value = [2]float64{f.Min, f.Max}
	case FilterCategoricalIn:
		vals := f.Values
		if vals == nil {
			vals = []string{}
		}
		value = vals
	default:
		return nil, errors.Newf("unknown filter type %q", f.Kind)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(filterJSON{Column: f.Column, Type: f.Kind, Value: raw})
}

// UnmarshalJSON decodes the form written by MarshalJSON. Categorical values
// stored as numbers or booleans are stringified.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var fj filterJSON
	if err := json.Unmarshal(data, &fj); err != nil {
		return err
	}
	*f = Filter{Column: fj.Column, Kind: fj.Type}
	switch fj.Type {
	case FilterNumericRange:
		var pair []float64
		if err := json.Unmarshal(fj.Value, &pair); err != nil {
			return errors.Wrapf(err, "filter on %q", fj.Column)
		}
		if len(pair) != 2 {
			return errors.Newf("filter on %q: range needs 2 bounds, got %d", fj.Column, len(pair))
		}
		f.Min, f.Max = pair[0], pair[1]
	case FilterCategoricalIn:
		var vals []Value
		if err := json.Unmarshal(fj.Value, &vals); err != nil {
			return errors.Wrapf(err, "filter on %q", fj.Column)
		}
		f.Values = make([]string, 0, len(vals))
		for _, v := range vals {
			f.Values = append(f.Values, v.String())
		}
	default:
		return errors.Newf("filter on %q: unknown type %q", fj.Column, fj.Type)
	}
	return nil
}
