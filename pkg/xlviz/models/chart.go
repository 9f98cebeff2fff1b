package models

import (
	"strings"
)

// DimensionType constrains which columns may be mapped to a dimension.
type DimensionType string

const (
	// DimensionNumeric accepts numeric columns.
	DimensionNumeric DimensionType = "numeric"
	// DimensionText accepts text columns.
	DimensionText DimensionType = "text"
	// DimensionAny accepts every column.
	DimensionAny DimensionType = "any"
)

// ChartDimension describes one input slot of a chart type.
type ChartDimension struct {
	// ID is the mapping key (e.g., "category", "values").
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Type is the column type constraint.
	Type DimensionType `json:"type"`
	// Required marks dimensions that must be mapped before shaping.
	Required bool `json:"required"`
	// Multiple allows more than one column.
	Multiple bool `json:"multiple,omitempty"`
}

// ChartDefinition is a static catalogue entry describing a chart type.
type ChartDefinition struct {
	// ID is the chart type identifier (e.g., "bar", "marimekko").
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// Library names the renderer family: "Chart.js", "Plotly.js" or "D3.js".
	Library string `json:"library"`
	// Category is "Standard", "Advanced" or "Animated".
	Category string `json:"category"`
	// Description is a one-line summary.
	Description string `json:"description"`
	// Dimensions lists the chart's input slots in display order.
	Dimensions []ChartDimension `json:"dimensions"`
}

// Dimension returns the dimension with the given id.
func (d ChartDefinition) Dimension(id string) (ChartDimension, bool) {
	for _, dim := range d.Dimensions {
		if dim.ID == id {
			return dim, true
		}
	}
	return ChartDimension{}, false
}

// ColumnMapping maps a dimension id to a column name, or to a
// comma-separated list of names when the dimension allows several.
type ColumnMapping map[string]string

// MappingSeparator joins several columns assigned to one dimension.
const MappingSeparator = ","

// Get returns the raw assignment of a dimension.
func (m ColumnMapping) Get(dimension string) string {
	return m[dimension]
}

// Has reports whether a dimension has a non-empty assignment.
func (m ColumnMapping) Has(dimension string) bool {
	return m[dimension] != ""
}

// Columns splits the assignment of a dimension into column names.
func (m ColumnMapping) Columns(dimension string) []string {
	var cols []string
	for _, c := range strings.Split(m[dimension], MappingSeparator) {
		if c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

// Set assigns one or more columns to a dimension.
func (m ColumnMapping) Set(dimension string, columns ...string) {
	m[dimension] = strings.Join(columns, MappingSeparator)
}

// IsComplete reports whether every required dimension of def is assigned.
func (m ColumnMapping) IsComplete(def ChartDefinition) bool {
	return len(m.Missing(def)) == 0
}

// Missing returns the ids of required dimensions left unassigned.
func (m ColumnMapping) Missing(def ChartDefinition) []string {
	var missing []string
	for _, dim := range def.Dimensions {
		if dim.Required && !m.Has(dim.ID) {
			missing = append(missing, dim.ID)
		}
	}
	return missing
}

// MappedColumns returns the distinct columns referenced by the mapping,
// following the dimension order of def.
func (m ColumnMapping) MappedColumns(def ChartDefinition) []string {
	seen := make(map[string]bool)
	var out []string
	for _, dim := range def.Dimensions {
		for _, c := range m.Columns(dim.ID) {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
