package xlviz

import (
	"github.com/ukaji3/xlviz-go/pkg/xlviz/filter"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/infer"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/shaper"
)

// Input is everything a pipeline run reads.
type Input struct {
	Definition models.ChartDefinition
	Data       *models.Dataset
	Mapping    models.ColumnMapping
	Filters    []models.Filter
	Overrides  models.TypeOverrides
	Format     models.FormatOptions
	// Palette overrides the configured palette when set.
	Palette string
}

// Shape infers column types on the full dataset, filters it and shapes the
// remaining rows for the chart. An incomplete mapping yields
// shaper.ErrNotReady; a failed aggregation yields shaper.ErrCannotRender.
func Shape(in Input, opts ...Option) (shaper.Output, error) {
	cfg := newConfig(opts)
	palette := in.Palette
	if palette == "" {
		palette = cfg.palette
	}
	return shaper.Shape(shaper.Request{
		Definition: in.Definition,
		Data:       filter.Apply(in.Data, in.Filters),
		Mapping:    in.Mapping,
		Types:      infer.Types(in.Data, in.Overrides),
		Format:     in.Format,
		Palette:    palette,
		Logger:     cfg.logger,
	})
}

// ShapeSaved runs the pipeline over a saved visualization.
func ShapeSaved(viz models.SavedVisualization, opts ...Option) (shaper.Output, error) {
	in := Input{
		Definition: viz.ChartDefinition,
		Data:       viz.ChartData,
		Mapping:    viz.ColumnMapping,
		Filters:    viz.Filters,
		Overrides:  viz.ColumnTypeOverrides,
		Format:     viz.FormatOptions,
	}
	if viz.ChartOptions != nil {
		in.Palette = viz.ChartOptions.ColorPalette
	}
	return Shape(in, opts...)
}
