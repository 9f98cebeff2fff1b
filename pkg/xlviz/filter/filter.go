// Package filter applies declarative row filters to a dataset.
package filter

import (
	"math"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// Apply returns the rows of d that satisfy every filter, in their original
// order. With no filters d itself is returned.
func Apply(d *models.Dataset, filters []models.Filter) *models.Dataset {
	if len(filters) == 0 || d == nil {
		return d
	}

	preds := make([]func(models.Row) bool, 0, len(filters))
	for _, f := range filters {
		preds = append(preds, predicate(f))
	}

	kept := make([]models.Row, 0, d.Len())
	for _, row := range d.Rows {
		if matchAll(row, preds) {
			kept = append(kept, row)
		}
	}
	return d.Subset(kept)
}

func matchAll(row models.Row, preds []func(models.Row) bool) bool {
	for _, p := range preds {
		if !p(row) {
			return false
		}
	}
	return true
}

func predicate(f models.Filter) func(models.Row) bool {
	switch f.Kind {
	case models.FilterNumericRange:
		min, max := f.Min, f.Max
		return func(row models.Row) bool {
			n, ok := row.Get(f.Column).Float()
			if !ok || math.IsNaN(n) {
				return false
			}
			return n >= min && n <= max
		}
	case models.FilterCategoricalIn:
		allowed := make(map[string]struct{}, len(f.Values))
		for _, v := range f.Values {
			allowed[v] = struct{}{}
		}
		return func(row models.Row) bool {
			v := row.Get(f.Column)
			if v.IsNull() {
				return false
			}
			_, ok := allowed[v.String()]
			return ok
		}
	}
	// Unknown kinds keep every row.
	return func(models.Row) bool { return true }
}

// Default builds the initially non-restrictive filter for a column: the
// observed [min, max] for numeric and date columns, or every distinct value
// for text columns. A numeric column with no parseable values gets [0, 0].
func Default(d *models.Dataset, column string, t models.ColumnType) models.Filter {
	if t == models.TypeNumeric || t == models.TypeDate {
		min, max, ok := Bounds(d, column)
		if !ok {
			return models.RangeFilter(column, 0, 0)
		}
		return models.RangeFilter(column, min, max)
	}
	return models.InFilter(column, DistinctValues(d, column)...)
}

// Bounds returns the smallest and largest parseable value of a column.
func Bounds(d *models.Dataset, column string) (min, max float64, ok bool) {
	for i := 0; i < d.Len(); i++ {
		n, parsed := d.Value(i, column).Float()
		if !parsed || math.IsNaN(n) {
			continue
		}
		if !ok {
			min, max, ok = n, n, true
			continue
		}
		min = math.Min(min, n)
		max = math.Max(max, n)
	}
	return min, max, ok
}

// DistinctValues returns the distinct stringified non-null values of a
// column in first-seen order.
func DistinctValues(d *models.Dataset, column string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := 0; i < d.Len(); i++ {
		v := d.Value(i, column)
		if v.IsNull() {
			continue
		}
		s := v.String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SortedValues is DistinctValues ordered for display with locale collation.
func SortedValues(d *models.Dataset, column string) []string {
	vals := DistinctValues(d, column)
	collate.New(language.English).SortStrings(vals)
	return vals
}
