package models

// ColumnType is the semantic type of a column.
type ColumnType string

const (
	// TypeNumeric marks a column holding numbers.
	TypeNumeric ColumnType = "numeric"
	// TypeText marks a column holding text.
	TypeText ColumnType = "text"
	// TypeDate marks a numeric column whose values are spreadsheet date serials.
	// It is only reachable through an override.
	TypeDate ColumnType = "date"
	// TypeAuto is the override value that defers to inference.
	TypeAuto ColumnType = "auto"
)

// Valid reports whether t is one of the concrete column types.
func (t ColumnType) Valid() bool {
	return t == TypeNumeric || t == TypeText || t == TypeDate
}

// TypeOverrides maps a column name to a forced type or TypeAuto.
type TypeOverrides map[string]ColumnType

// ColumnTypes maps a column name to its resolved type.
type ColumnTypes map[string]ColumnType
