// Package charts holds the static chart catalogue: chart kinds, their
// dimension descriptors, colour palettes and default display options.
package charts

import (
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// Renderer families.
const (
	LibraryChartJS = "Chart.js"
	LibraryPlotly  = "Plotly.js"
	LibraryD3      = "D3.js"
)

// Kind is a closed enumeration of the supported chart families.
type Kind int

const (
	KindUnknown Kind = iota
	Bar
	Line
	Pie
	Scatter
	Radar
	Heatmap
	Surface3D
	Sunburst
	Treemap
	Funnel
	Marimekko
	ForceDirected
	Dendrogram
	AnimatedBubble
	BarChartRace
)

// Kinds lists every supported kind in catalogue order.
var Kinds = []Kind{
	Bar, Line, Pie, Scatter, Radar,
	Heatmap, Surface3D, Sunburst, Treemap, Funnel, Marimekko, ForceDirected, Dendrogram,
	AnimatedBubble, BarChartRace,
}

var kindIDs = map[Kind]string{
	Bar:            "bar",
	Line:           "line",
	Pie:            "pie",
	Scatter:        "scatter",
	Radar:          "radar",
	Heatmap:        "heatmap",
	Surface3D:      "surface3d",
	Sunburst:       "sunburst",
	Treemap:        "treemap",
	Funnel:         "funnel",
	Marimekko:      "marimekko",
	ForceDirected:  "force-directed",
	Dendrogram:     "dendrogram",
	AnimatedBubble: "animated-bubble",
	BarChartRace:   "bar-chart-race",
}

// String returns the chart type identifier.
func (k Kind) String() string {
	if id, ok := kindIDs[k]; ok {
		return id
	}
	return "unknown"
}

// MarshalText encodes the kind as its identifier.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes an identifier; unknown identifiers become KindUnknown.
func (k *Kind) UnmarshalText(b []byte) error {
	*k = ParseKind(string(b))
	return nil
}

// ParseKind resolves a chart type identifier.
func ParseKind(id string) Kind {
	for k, kid := range kindIDs {
		if kid == id {
			return k
		}
	}
	return KindUnknown
}

func dim(id, name string, t models.DimensionType, required bool) models.ChartDimension {
	return models.ChartDimension{ID: id, Name: name, Type: t, Required: required}
}

func multi(id, name string, t models.DimensionType) models.ChartDimension {
	return models.ChartDimension{ID: id, Name: name, Type: t, Required: true, Multiple: true}
}

const (
	num  = models.DimensionNumeric
	text = models.DimensionText
	anyT = models.DimensionAny
)

var definitions = []models.ChartDefinition{
	// Standard
	{ID: "bar", Name: "Bar Chart", Library: LibraryChartJS, Category: "Standard",
		Description: "Compares values across categories.",
		Dimensions: []models.ChartDimension{
			dim("category", "Category Axis", text, true),
			multi("values", "Value Axis (one or more)", num),
		}},
	{ID: "line", Name: "Line Chart", Library: LibraryChartJS, Category: "Standard",
		Description: "Shows trends over time or ordered categories.",
		Dimensions: []models.ChartDimension{
			dim("category", "X-Axis (Category/Time)", anyT, true),
			multi("values", "Y-Axis (one or more)", num),
		}},
	{ID: "pie", Name: "Pie Chart", Library: LibraryChartJS, Category: "Standard",
		Description: "Displays proportions of a whole.",
		Dimensions: []models.ChartDimension{
			dim("labels", "Slice Labels", text, true),
			dim("values", "Slice Values", num, true),
		}},
	{ID: "scatter", Name: "Scatter Plot", Library: LibraryChartJS, Category: "Standard",
		Description: "Shows relationships between two variables.",
		Dimensions: []models.ChartDimension{
			dim("x", "X-Axis", num, true),
			dim("y", "Y-Axis", num, true),
		}},
	{ID: "radar", Name: "Radar Chart", Library: LibraryChartJS, Category: "Standard",
		Description: "Compares multiple variables for different items.",
		Dimensions: []models.ChartDimension{
			dim("category", "Item Category (e.g., Product)", text, true),
			multi("values", "Axes (one or more)", num),
		}},

	// Advanced
	{ID: "heatmap", Name: "Heatmap", Library: LibraryPlotly, Category: "Advanced",
		Description: "Visualizes magnitude of a phenomenon as color.",
		Dimensions: []models.ChartDimension{
			dim("x", "X-Axis", text, true),
			dim("y", "Y-Axis", text, true),
			dim("z", "Color Value", num, true),
		}},
	{ID: "surface3d", Name: "3D Surface Plot", Library: LibraryPlotly, Category: "Advanced",
		Description: "Represents a three-dimensional dataset.",
		Dimensions: []models.ChartDimension{
			dim("x", "X Coordinate", num, true),
			dim("y", "Y Coordinate", num, true),
			dim("z", "Z Coordinate (Height)", num, true),
		}},
	{ID: "sunburst", Name: "Sunburst Chart", Library: LibraryPlotly, Category: "Advanced",
		Description: "Visualizes hierarchical data spanning outwards.",
		Dimensions: []models.ChartDimension{
			dim("labels", "Labels (Child)", text, true),
			dim("parents", "Parents", text, true),
			dim("values", "Values", num, true),
		}},
	{ID: "treemap", Name: "Treemap", Library: LibraryPlotly, Category: "Advanced",
		Description: "Displays hierarchical data using nested rectangles.",
		Dimensions: []models.ChartDimension{
			dim("labels", "Labels (Child)", text, true),
			dim("parents", "Parents", text, true),
			dim("values", "Values (Size)", num, true),
		}},
	{ID: "funnel", Name: "Funnel Chart", Library: LibraryPlotly, Category: "Advanced",
		Description: "Represents stages in a process, like a sales pipeline.",
		Dimensions: []models.ChartDimension{
			dim("stage", "Stage Name", text, true),
			dim("value", "Stage Value", num, true),
		}},
	{ID: "marimekko", Name: "Marimekko (Mekko) Chart", Library: LibraryPlotly, Category: "Advanced",
		Description: "A stacked bar chart where bar width is proportional to its total value.",
		Dimensions: []models.ChartDimension{
			dim("barCategory", "Bar Category", text, true),
			dim("segmentCategory", "Segment Category (Color)", text, true),
			dim("value", "Value", num, true),
		}},
	{ID: "force-directed", Name: "Force-Directed Graph", Library: LibraryD3, Category: "Advanced",
		Description: "Shows network relationships.",
		Dimensions: []models.ChartDimension{
			dim("source", "Source Node", text, true),
			dim("target", "Target Node", text, true),
			dim("value", "Link Strength (Optional)", num, false),
		}},
	{ID: "dendrogram", Name: "Dendrogram", Library: LibraryD3, Category: "Advanced",
		Description: "A tree diagram for hierarchical clustering.",
		Dimensions: []models.ChartDimension{
			dim("id", "Node ID (Child)", text, true),
			dim("parent", "Parent ID", text, true),
		}},

	// Animated
	{ID: "animated-bubble", Name: "Animated Bubble Chart", Library: LibraryPlotly, Category: "Animated",
		Description: "Shows data changes over time with animated bubbles.",
		Dimensions: []models.ChartDimension{
			dim("x", "X-Axis", num, true),
			dim("y", "Y-Axis", num, true),
			dim("size", "Bubble Size", num, true),
			dim("frame", "Animation Frame (e.g., Year)", anyT, true),
		}},
	{ID: "bar-chart-race", Name: "Bar Chart Race", Library: LibraryPlotly, Category: "Animated",
		Description: "Shows how ranked values change over time.",
		Dimensions: []models.ChartDimension{
			dim("label", "Bar Label", text, true),
			dim("value", "Bar Value", num, true),
			dim("frame", "Animation Frame (Time)", anyT, true),
		}},
}

// Definitions returns a copy of the catalogue in display order.
func Definitions() []models.ChartDefinition {
	out := make([]models.ChartDefinition, len(definitions))
	for i, d := range definitions {
		out[i] = clone(d)
	}
	return out
}

// Lookup returns the definition for a chart type identifier.
func Lookup(id string) (models.ChartDefinition, bool) {
	for _, d := range definitions {
		if d.ID == id {
			return clone(d), true
		}
	}
	return models.ChartDefinition{}, false
}

// MustLookup is Lookup for identifiers known at compile time.
func MustLookup(id string) models.ChartDefinition {
	d, ok := Lookup(id)
	if !ok {
		panic("charts: unknown chart type " + id)
	}
	return d
}

func clone(d models.ChartDefinition) models.ChartDefinition {
	d.Dimensions = append([]models.ChartDimension(nil), d.Dimensions...)
	return d
}

// ColumnsFor returns the columns of header eligible for a dimension, given
// resolved column types. Text dimensions only list text columns, numeric
// dimensions only numeric ones; date columns are offered to "any" only.
func ColumnsFor(d models.ChartDimension, header []string, types models.ColumnTypes) []string {
	var out []string
	for _, col := range header {
		switch d.Type {
		case models.DimensionNumeric:
			if types[col] == models.TypeNumeric {
				out = append(out, col)
			}
		case models.DimensionText:
			if types[col] == models.TypeText {
				out = append(out, col)
			}
		default:
			out = append(out, col)
		}
	}
	return out
}
