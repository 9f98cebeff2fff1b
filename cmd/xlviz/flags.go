package main

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	"github.com/ukaji3/xlviz-go/pkg/xlviz"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// sessionFlags describe a visualization on the command line.
type sessionFlags struct {
	chart     string
	mappings  []string
	filters   []string
	overrides []string
	formats   []string
	palette   string
	title     string
	legend    string
}

func (f *sessionFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.chart, "chart", "c", "bar", "Chart type id")
	fs.StringArrayVarP(&f.mappings, "map", "m", nil, "Dimension mapping dim=col[,col...] (repeatable)")
	fs.StringArrayVarP(&f.filters, "filter", "f", nil, "Filter col, col=min:max or col=a|b (repeatable)")
	fs.StringArrayVar(&f.overrides, "type", nil, "Column type override col=numeric|text|date|auto (repeatable)")
	fs.StringArrayVar(&f.formats, "format", nil, "Column format col=compact|standard|<date pattern> (repeatable)")
	fs.StringVar(&f.palette, "palette", "", "Colour palette name")
	fs.StringVar(&f.title, "chart-title", "", "Chart title shown by the renderer")
	fs.StringVar(&f.legend, "legend", "", "Legend position: top, bottom, left, right, none")
}

func splitPair(s string) (string, string, bool) {
	k, v, ok := strings.Cut(s, "=")
	return strings.TrimSpace(k), strings.TrimSpace(v), ok
}

// session opens the source and applies every flag in order: overrides,
// chart and mapping, filters, formats, display options.
func (f *sessionFlags) session(path, source string) (*xlviz.Session, error) {
	s, err := xlviz.OpenSession(path, source, xlviz.WithLogger(logger), xlviz.WithPalette(f.palette))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to extract data from the selected source")
	}

	for _, o := range f.overrides {
		col, t, ok := splitPair(o)
		if !ok {
			return nil, errors.Newf("invalid --type %q", o)
		}
		if err := s.SetOverride(col, models.ColumnType(t)); err != nil {
			return nil, err
		}
	}

	if err := s.SetChart(f.chart); err != nil {
		return nil, err
	}
	for _, m := range f.mappings {
		dim, cols, ok := splitPair(m)
		if !ok {
			return nil, errors.Newf("invalid --map %q", m)
		}
		if err := s.Map(dim, strings.Split(cols, models.MappingSeparator)...); err != nil {
			return nil, err
		}
	}

	for _, spec := range f.filters {
		if err := applyFilter(s, spec); err != nil {
			return nil, err
		}
	}

	for _, spec := range f.formats {
		col, v, ok := splitPair(spec)
		if !ok {
			return nil, errors.Newf("invalid --format %q", spec)
		}
		if err := s.SetFormat(col, columnFormat(v)); err != nil {
			return nil, err
		}
	}

	s.ChartOptions = f.chartOptions()
	return s, nil
}

func applyFilter(s *xlviz.Session, spec string) error {
	col, v, hasValue := splitPair(spec)
	added, err := s.AddFilter(col)
	if err != nil || !hasValue {
		return err
	}
	if added.Kind == models.FilterNumericRange {
		lo, hi, ok := strings.Cut(v, ":")
		if !ok {
			return errors.Newf("invalid range %q, want min:max", v)
		}
		from, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return errors.Wrapf(err, "filter %q", col)
		}
		to, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return errors.Wrapf(err, "filter %q", col)
		}
		return s.SetRange(col, from, to)
	}
	return s.SetValues(col, strings.Split(v, "|")...)
}

func columnFormat(v string) models.ColumnFormat {
	switch models.Notation(v) {
	case models.NotationCompact, models.NotationStandard:
		return models.ColumnFormat{Notation: models.Notation(v)}
	}
	return models.ColumnFormat{DateFormat: models.DateFormat(v)}
}

func (f *sessionFlags) chartOptions() *models.ChartOptions {
	opts := &models.ChartOptions{
		Title:        models.TitleOptions{Text: f.title},
		ColorPalette: f.palette,
	}
	switch f.legend {
	case "":
	case "none":
		hidden := false
		opts.Legend.Display = &hidden
	default:
		opts.Legend.Position = models.LegendPosition(f.legend)
	}
	return opts
}
