package xlviz

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/catalogue"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/filter"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/infer"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/parser"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/shaper"
)

// Session is the working state of one visualization being edited. It owns
// its dataset; saving takes a copy.
type Session struct {
	FileName   string
	SourceName string
	Data       *models.Dataset

	Definition   models.ChartDefinition
	Mapping      models.ColumnMapping
	Filters      []models.Filter
	Format       models.FormatOptions
	ChartOptions *models.ChartOptions
	Overrides    models.TypeOverrides

	cfg config
}

// NewSession starts editing data read from source of fileName.
func NewSession(fileName, sourceName string, data *models.Dataset, opts ...Option) *Session {
	return &Session{
		FileName:   fileName,
		SourceName: sourceName,
		Data:       data,
		Mapping:    models.ColumnMapping{},
		Format:     models.FormatOptions{},
		Overrides:  models.TypeOverrides{},
		cfg:        newConfig(opts),
	}
}

// OpenSession reads a source of the workbook at path and starts a session
// over it.
func OpenSession(path, sourceName string, opts ...Option) (*Session, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(ErrFileNotFound, "%s", path)
	}
	cfg := newConfig(opts)

	wb, err := parser.Open(path, parser.Options{Logger: cfg.logger})
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	src, ok := wb.Find(sourceName)
	if !ok {
		return nil, errors.Wrapf(parser.ErrUnknownSource, "%q", sourceName)
	}
	data, err := wb.Extract(src)
	if err != nil {
		return nil, err
	}
	return NewSession(filepath.Base(path), src.Name, data, opts...), nil
}

// EditSession reopens a saved visualization. The session works on a copy
// of the stored dataset.
func EditSession(viz models.SavedVisualization, opts ...Option) (*Session, error) {
	cp, err := catalogue.Snapshot(viz)
	if err != nil {
		return nil, err
	}
	s := NewSession(cp.FileName, cp.DataSourceName, cp.ChartData, opts...)
	s.Definition = cp.ChartDefinition
	s.Filters = cp.Filters
	s.ChartOptions = cp.ChartOptions
	if cp.ColumnMapping != nil {
		s.Mapping = cp.ColumnMapping
	}
	if cp.FormatOptions != nil {
		s.Format = cp.FormatOptions
	}
	if cp.ColumnTypeOverrides != nil {
		s.Overrides = cp.ColumnTypeOverrides
	}
	return s, nil
}

func (s *Session) requireColumn(column string) error {
	if !s.Data.HasColumn(column) {
		return errors.Wrapf(ErrUnknownColumn, "%q", column)
	}
	return nil
}

// SetChart selects a chart type and clears the column mapping.
func (s *Session) SetChart(id string) error {
	def, ok := charts.Lookup(id)
	if !ok {
		return errors.Wrapf(ErrUnknownChart, "%q", id)
	}
	s.Definition = def
	s.Mapping = models.ColumnMapping{}
	return nil
}

// Map assigns columns to a dimension of the selected chart. Passing no
// columns clears the dimension.
func (s *Session) Map(dimension string, columns ...string) error {
	if _, ok := s.Definition.Dimension(dimension); !ok {
		return errors.Newf("chart %q has no dimension %q", s.Definition.ID, dimension)
	}
	for _, c := range columns {
		if err := s.requireColumn(c); err != nil {
			return err
		}
	}
	if len(columns) == 0 {
		delete(s.Mapping, dimension)
		return nil
	}
	s.Mapping.Set(dimension, columns...)
	return nil
}

func (s *Session) filterIndex(column string) int {
	for i, f := range s.Filters {
		if f.Column == column {
			return i
		}
	}
	return -1
}

// AddFilter attaches the default filter for column. It keeps every row
// until narrowed.
func (s *Session) AddFilter(column string) (models.Filter, error) {
	if err := s.requireColumn(column); err != nil {
		return models.Filter{}, err
	}
	if s.filterIndex(column) >= 0 {
		return models.Filter{}, errors.Wrapf(ErrDuplicateFilter, "%q", column)
	}
	f := filter.Default(s.Data, column, s.Types()[column])
	s.Filters = append(s.Filters, f)
	s.cfg.logger.Debug("filter added", zap.String("column", column), zap.String("type", string(f.Kind)))
	return f, nil
}

// FilterChoices lists the distinct values of column offered by a
// categorical filter, in locale collation order.
func (s *Session) FilterChoices(column string) ([]string, error) {
	if err := s.requireColumn(column); err != nil {
		return nil, err
	}
	return filter.SortedValues(s.Data, column), nil
}

// RemoveFilter detaches the filter on column, if any.
func (s *Session) RemoveFilter(column string) {
	if i := s.filterIndex(column); i >= 0 {
		s.Filters = append(s.Filters[:i:i], s.Filters[i+1:]...)
	}
}

// SetRange narrows the range filter on column.
func (s *Session) SetRange(column string, min, max float64) error {
	i := s.filterIndex(column)
	if i < 0 {
		return errors.Wrapf(ErrNoFilter, "%q", column)
	}
	if s.Filters[i].Kind != models.FilterNumericRange {
		return errors.Newf("filter on %q is not a range", column)
	}
	s.Filters[i].Min, s.Filters[i].Max = min, max
	return nil
}

// SetValues replaces the allowed values of the categorical filter on column.
func (s *Session) SetValues(column string, values ...string) error {
	i := s.filterIndex(column)
	if i < 0 {
		return errors.Wrapf(ErrNoFilter, "%q", column)
	}
	if s.Filters[i].Kind != models.FilterCategoricalIn {
		return errors.Newf("filter on %q is not categorical", column)
	}
	s.Filters[i].Values = append([]string{}, values...)
	return nil
}

// SetOverride forces the type of column; TypeAuto returns it to inference.
func (s *Session) SetOverride(column string, t models.ColumnType) error {
	if err := s.requireColumn(column); err != nil {
		return err
	}
	switch {
	case t == models.TypeAuto || t == "":
		delete(s.Overrides, column)
	case t.Valid():
		s.Overrides[column] = t
	default:
		return errors.Wrapf(ErrInvalidType, "%q", t)
	}
	return nil
}

// SetFormat sets the display options of column.
func (s *Session) SetFormat(column string, f models.ColumnFormat) error {
	if err := s.requireColumn(column); err != nil {
		return err
	}
	s.Format[column] = f
	return nil
}

// Types returns the column types of the full dataset with overrides applied.
func (s *Session) Types() models.ColumnTypes {
	return infer.Types(s.Data, s.Overrides)
}

// Visible returns the rows that pass every filter.
func (s *Session) Visible() *models.Dataset {
	return filter.Apply(s.Data, s.Filters)
}

// Options returns the chart options with defaults filled in.
func (s *Session) Options() models.ChartOptions {
	return charts.ResolveOptions(s.ChartOptions)
}

// Shape runs the pipeline over the session state.
func (s *Session) Shape() (shaper.Output, error) {
	in := Input{
		Definition: s.Definition,
		Data:       s.Data,
		Mapping:    s.Mapping,
		Filters:    s.Filters,
		Overrides:  s.Overrides,
		Format:     s.Format,
		Palette:    s.cfg.palette,
	}
	if s.ChartOptions != nil && s.ChartOptions.ColorPalette != "" {
		in.Palette = s.ChartOptions.ColorPalette
	}
	return Shape(in, WithLogger(s.cfg.logger))
}

// Snapshot builds a record for the catalogue. The record shares nothing
// with the session.
func (s *Session) Snapshot(title string) (models.SavedVisualization, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.SavedVisualization{}, catalogue.ErrInvalidTitle
	}
	return catalogue.Snapshot(models.SavedVisualization{
		Title:               title,
		ChartDefinition:     s.Definition,
		DataSourceName:      s.SourceName,
		ChartData:           s.Data,
		FileName:            s.FileName,
		ColumnMapping:       s.Mapping,
		Filters:             s.Filters,
		FormatOptions:       s.Format,
		ChartOptions:        s.ChartOptions,
		ColumnTypeOverrides: s.Overrides,
	})
}
