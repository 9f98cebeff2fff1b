// Package shaper turns a filtered dataset and a column mapping into the
// chart-ready structure each chart family expects.
package shaper

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/infer"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

var (
	// ErrNotReady reports a mapping that leaves a required dimension empty.
	// It is a normal intermediate state, not a failure.
	ErrNotReady = errors.New("chart mapping incomplete")

	// ErrCannotRender reports data the chart family cannot be built from.
	ErrCannotRender = errors.New("chart could not be rendered")
)

// Output is the chart-specific result of Shape. The concrete type depends
// on the chart family: *Categorical, *Scatter, *Grid, *Hierarchy, *Funnel,
// *Marimekko, *BubbleChart, *Race, *Graph or *Dendrogram.
type Output interface {
	Chart() charts.Kind
	output()
}

// Request is the input of Shape.
type Request struct {
	// Definition is the chart type being built.
	Definition models.ChartDefinition
	// Data is the working row subset, already filtered.
	Data *models.Dataset
	// Mapping assigns columns to the definition's dimensions.
	Mapping models.ColumnMapping
	// Types are the resolved column types; nil infers them from Data.
	Types models.ColumnTypes
	// Format holds per-column display options used for labels.
	Format models.FormatOptions
	// Palette names the colour palette; empty selects the default.
	Palette string
	// Logger receives shaping failures; nil disables logging.
	Logger *zap.Logger
}

// job is the resolved state handed to a family's shaping function.
type job struct {
	kind    charts.Kind
	data    *models.Dataset
	mapping models.ColumnMapping
	types   models.ColumnTypes
	format  models.FormatOptions
	colors  []string
}

func (j *job) col(dim string) string {
	return j.mapping.Get(dim)
}

func (j *job) rows() []models.Row {
	if j.data == nil {
		return nil
	}
	return j.data.Rows
}

func (j *job) color(i int) string {
	return charts.ColorAt(j.colors, i)
}

type shapeFunc func(*job) (Output, error)

// shapers holds exactly one shaping function per chart kind.
var shapers = map[charts.Kind]shapeFunc{
	charts.Bar:            shapeSeries,
	charts.Line:           shapeSeries,
	charts.Pie:            shapePie,
	charts.Scatter:        shapeScatter,
	charts.Radar:          shapeRadar,
	charts.Heatmap:        shapeGrid,
	charts.Surface3D:      shapeGrid,
	charts.Sunburst:       shapeHierarchy,
	charts.Treemap:        shapeHierarchy,
	charts.Funnel:         shapeFunnel,
	charts.Marimekko:      shapeMarimekko,
	charts.ForceDirected:  shapeGraph,
	charts.Dendrogram:     shapeDendrogram,
	charts.AnimatedBubble: shapeBubble,
	charts.BarChartRace:   shapeRace,
}

// Shape builds the chart structure for req.
//
// It returns an error marked ErrNotReady when a required dimension is
// unmapped, and one marked ErrCannotRender when the data cannot form the
// chart. A panic raised while aggregating is recovered and reported as
// ErrCannotRender.
func Shape(req Request) (out Output, err error) {
	logger := req.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	kind := charts.ParseKind(req.Definition.ID)
	fn, ok := shapers[kind]
	if !ok {
		return nil, errors.Mark(
			errors.Newf("chart type %q is not implemented", req.Definition.ID), ErrCannotRender)
	}

	if missing := req.Mapping.Missing(req.Definition); len(missing) > 0 {
		return nil, errors.Wrapf(ErrNotReady, "%s: unmapped %s", kind, strings.Join(missing, ", "))
	}

	types := req.Types
	if types == nil {
		types = infer.Types(req.Data, nil)
	}

	j := &job{
		kind:    kind,
		data:    req.Data,
		mapping: req.Mapping,
		types:   types,
		format:  req.Format,
		colors:  charts.Colors(req.Palette),
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.Mark(errors.Newf("%s: %v", kind, r), ErrCannotRender)
		}
		if err != nil && errors.Is(err, ErrCannotRender) {
			logger.Warn("chart could not be rendered",
				zap.String("chart", kind.String()),
				zap.Error(err),
			)
		}
	}()

	return fn(j)
}

// cannotRender builds an ErrCannotRender error.
func cannotRender(kind charts.Kind, format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("%s: %s", kind, fmt.Sprintf(format, args...)), ErrCannotRender)
}

// requireColumns checks that mapped columns are columns of the dataset. A
// root row has no parent, so the first row's keys are not enough here.
func (j *job) requireColumns(dims ...string) error {
	for _, dim := range dims {
		col := j.col(dim)
		if j.data == nil || !slices.Contains(j.data.Columns, col) {
			return cannotRender(j.kind, "column %q mapped to %s is not in the data", col, dim)
		}
	}
	return nil
}

// distinct returns the distinct values of a column in first-seen order.
func distinct(rows []models.Row, col string) []models.Value {
	seen := make(map[models.Value]bool)
	var out []models.Value
	for _, r := range rows {
		v := r.Get(col)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func column(rows []models.Row, col string) []models.Value {
	out := make([]models.Value, len(rows))
	for i, r := range rows {
		out[i] = r.Get(col)
	}
	return out
}
