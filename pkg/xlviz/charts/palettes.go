package charts

import (
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// Palette is a named list of colours.
type Palette struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// DefaultPalette and RankPalette are referenced by name elsewhere.
const (
	DefaultPalette = "Default"
	RankPalette    = "Tab20"
)

var palettes = []Palette{
	{Name: "Default", Colors: []string{"#38bdf8", "#fb923c", "#a78bfa", "#4ade80", "#f472b6", "#2dd4bf", "#facc15", "#e879f9"}},
	{Name: "Cool Blues", Colors: []string{"#8ecae6", "#219ebc", "#126782", "#023047", "#ffb703", "#fd9e02"}},
	{Name: "Sunset", Colors: []string{"#f94144", "#f3722c", "#f8961e", "#f9c74f", "#90be6d", "#43aa8b", "#577590"}},
	{Name: "Forest", Colors: []string{"#2d6a4f", "#40916c", "#52b788", "#74c69d", "#95d5b2", "#b7e4c7", "#d8f3dc"}},
	{Name: "Pastel", Colors: []string{"#fec5bb", "#fcd5ce", "#fae1dd", "#f8edeb", "#e8e8e4", "#d8e2dc", "#ece4db", "#ffe5d9", "#ffd7ba", "#fec89a"}},
	{Name: "Monochromatic", Colors: []string{"#0d47a1", "#1565c0", "#1976d2", "#1e88e5", "#2196f3", "#42a5f5", "#64b5f6", "#90caf9"}},
	{Name: "Tab20", Colors: []string{"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c", "#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5", "#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f", "#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5"}},
}

// Palettes returns the named palettes.
func Palettes() []Palette {
	return append([]Palette(nil), palettes...)
}

// Colors returns the colours of a named palette, falling back to Default.
func Colors(name string) []string {
	for _, p := range palettes {
		if p.Name == name {
			return p.Colors
		}
	}
	return palettes[0].Colors
}

// ColorAt cycles through a palette.
func ColorAt(colors []string, i int) string {
	if len(colors) == 0 {
		return ""
	}
	return colors[i%len(colors)]
}

// DefaultOptions returns the display options used when a visualization
// leaves a field unset.
func DefaultOptions() models.ChartOptions {
	yes := true
	return models.ChartOptions{
		Title:        models.TitleOptions{Display: &yes},
		XAxis:        models.AxisOptions{Display: &yes},
		YAxis:        models.AxisOptions{Display: &yes},
		Legend:       models.LegendOptions{Display: &yes, Position: models.LegendTop},
		ColorPalette: DefaultPalette,
	}
}

// ResolveOptions merges user options over the defaults.
func ResolveOptions(o *models.ChartOptions) models.ChartOptions {
	if o == nil {
		return DefaultOptions()
	}
	return o.Merge(DefaultOptions())
}
