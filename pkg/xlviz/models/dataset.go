package models

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Row maps a column name to its cell value. Absent keys read as null.
type Row map[string]Value

// Get returns the value for column, or null when absent.
func (r Row) Get(column string) Value {
	return r[column]
}

// Dataset is an ordered sequence of rows sharing one column set.
type Dataset struct {
	// Columns is the column order reported by the reader. Header narrows
	// it to the keys of the first row.
	Columns []string `json:"columns"`
	// Rows contains the data rows in source order.
	Rows []Row `json:"rows"`
}

// PreviewRows is the number of rows shown in a data table preview.
const PreviewRows = 10

// NewDataset builds a Dataset from a header and rows.
func NewDataset(columns []string, rows []Row) *Dataset {
	return &Dataset{Columns: columns, Rows: rows}
}

// Len returns the number of rows; a nil Dataset is empty.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Header returns the canonical header: the keys present in the first row,
// in Columns order. An empty dataset has no header.
func (d *Dataset) Header() []string {
	if d.Len() == 0 {
		return nil
	}
	first := d.Rows[0]
	out := make([]string, 0, len(first))
	for _, c := range d.Columns {
		if _, ok := first[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// HasColumn reports whether column is part of the header.
func (d *Dataset) HasColumn(column string) bool {
	for _, c := range d.Header() {
		if c == column {
			return true
		}
	}
	return false
}

// Value returns the cell at row i and column.
func (d *Dataset) Value(i int, column string) Value {
	return d.Rows[i].Get(column)
}

// Column returns all values of a column in row order.
func (d *Dataset) Column(column string) []Value {
	out := make([]Value, d.Len())
	for i := range out {
		out[i] = d.Rows[i].Get(column)
	}
	return out
}

// Preview returns at most n leading rows.
func (d *Dataset) Preview(n int) []Row {
	if d.Len() <= n {
		return d.Rows
	}
	return d.Rows[:n]
}

// Subset returns a Dataset with the same header and the given rows.
func (d *Dataset) Subset(rows []Row) *Dataset {
	return &Dataset{Columns: d.Columns, Rows: rows}
}

// Clone returns a copy of d that shares no rows or header with it.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{Columns: append([]string(nil), d.Columns...)}
	if d.Rows != nil {
		out.Rows = make([]Row, len(d.Rows))
	}
	for i, r := range d.Rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}

type datasetJSON struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// UnmarshalJSON accepts the object form written by encoding/json and the
// bare array of row objects used by older project files. For the array
// form the header is the key order of the first row.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		var dj datasetJSON
		if err := json.Unmarshal(data, &dj); err != nil {
			return err
		}
		*d = Dataset(dj)
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return err
	}
	rows := make([]Row, 0, len(raws))
	for _, raw := range raws {
		var r Row
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		rows = append(rows, r)
	}
	var columns []string
	if len(raws) > 0 {
		var err error
		if columns, err = objectKeys(raws[0]); err != nil {
			return err
		}
	}
	*d = Dataset{Columns: columns, Rows: rows}
	return nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("row must be a JSON object")
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
