// Package infer classifies dataset columns as numeric or text.
package infer

import (
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// SampleRows is the number of leading rows inspected per column.
const SampleRows = 10

// Types resolves the type of every column in the dataset header, which is
// the set of keys of the first row. A column absent from the first row is
// left unclassified.
//
// An override other than auto is used verbatim. Otherwise a column is
// numeric when each of its first SampleRows values is null or a native
// number, and text as soon as one sampled value is anything else. Date is
// never inferred; it is only reachable through an override.
func Types(d *models.Dataset, overrides models.TypeOverrides) models.ColumnTypes {
	types := make(models.ColumnTypes)
	if d.Len() == 0 {
		return types
	}

	sample := d.Preview(SampleRows)
	for _, col := range d.Header() {
		if o, ok := overrides[col]; ok && o != models.TypeAuto && o != "" {
			types[col] = o
			continue
		}
		types[col] = classify(sample, col)
	}
	return types
}

func classify(sample []models.Row, col string) models.ColumnType {
	for _, row := range sample {
		switch row.Get(col).Kind() {
		case models.KindNull, models.KindNumber:
		default:
			return models.TypeText
		}
	}
	return models.TypeNumeric
}
