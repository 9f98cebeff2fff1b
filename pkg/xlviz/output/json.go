// Package output serializes CLI results.
package output

import (
	"encoding/json"
	"io"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/format"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// ToJSON encodes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON writes v to w followed by a newline.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Table is a formatted data preview.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// Preview formats the first n rows of d for display.
func Preview(d *models.Dataset, types models.ColumnTypes, opts models.FormatOptions, n int) Table {
	t := Table{Columns: d.Header(), Total: d.Len()}
	for _, row := range d.Preview(n) {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = format.Value(row.Get(col), opts.For(col), types[col])
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
