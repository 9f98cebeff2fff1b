package models

// SourceKind distinguishes worksheet sources from defined tables.
type SourceKind string

const (
	// SourceSheet is a whole worksheet.
	SourceSheet SourceKind = "Sheet"
	// SourceTable is a defined table inside a worksheet.
	SourceTable SourceKind = "Table"
)

// DataSource names a sheet or table of an uploaded workbook.
type DataSource struct {
	// Name is the sheet or table name.
	Name string `json:"name"`
	// Type is the source kind.
	Type SourceKind `json:"type"`
}

// SavedVisualization is the persisted unit of work. The dataset is a full
// copy taken at save time so the catalogue is self-contained.
type SavedVisualization struct {
	// ID is a millisecond timestamp, strictly increasing within a catalogue.
	ID int64 `json:"id"`
	// Title is the user-supplied title.
	Title string `json:"title"`
	// ChartDefinition is a snapshot of the chart type.
	ChartDefinition ChartDefinition `json:"chartDefinition"`
	// DataSourceName is the sheet or table the data came from.
	DataSourceName string `json:"dataSourceName"`
	// ChartData is the dataset snapshot.
	ChartData *Dataset `json:"chartData"`
	// FileName is the originating workbook file name.
	FileName string `json:"fileName"`
	// ColumnMapping assigns columns to chart dimensions.
	ColumnMapping ColumnMapping `json:"columnMapping"`
	// Filters are applied before shaping.
	Filters []Filter `json:"filters,omitempty"`
	// FormatOptions are per-column display options.
	FormatOptions FormatOptions `json:"formatOptions,omitempty"`
	// ChartOptions are renderer display options.
	ChartOptions *ChartOptions `json:"chartOptions,omitempty"`
	// ColumnTypeOverrides force column types.
	ColumnTypeOverrides TypeOverrides `json:"columnTypeOverrides,omitempty"`
}
