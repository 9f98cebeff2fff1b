package parser

import (
	"io"
	"io/fs"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// Workbook is an opened spreadsheet workbook.
type Workbook struct {
	// Name is the file name the workbook was loaded from.
	Name string

	file *excelize.File
	opts Options
}

// Open opens the workbook at path.
func Open(path string, opts Options) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "open %s", path)
		}
		return nil, errors.Mark(errors.Wrapf(err, "open %s", path), ErrInvalidWorkbook)
	}
	return &Workbook{Name: filepath.Base(path), file: f, opts: opts}, nil
}

// OpenReader reads a workbook from r. name is recorded as the file name.
func OpenReader(r io.Reader, name string, opts Options) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read %s", name), ErrInvalidWorkbook)
	}
	return &Workbook{Name: name, file: f, opts: opts}, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Sources lists every worksheet in workbook order, followed by the defined
// tables of each worksheet.
func (w *Workbook) Sources() []models.DataSource {
	sheets := w.file.GetSheetList()
	sources := make([]models.DataSource, 0, len(sheets))
	for _, name := range sheets {
		sources = append(sources, models.DataSource{Name: name, Type: models.SourceSheet})
	}
	if !w.opts.ShouldIncludeTables() {
		return sources
	}

	for _, sheet := range sheets {
		tables, err := w.file.GetTables(sheet)
		if err != nil {
			w.opts.logger().Warn("skipping tables of unreadable sheet",
				zap.String("workbook", w.Name),
				zap.String("sheet", sheet),
				zap.Error(err),
			)
			continue
		}
		for _, t := range tables {
			sources = append(sources, models.DataSource{Name: t.Name, Type: models.SourceTable})
		}
	}
	return sources
}

// Find looks a source up by name. Sheets shadow tables of the same name.
func (w *Workbook) Find(name string) (models.DataSource, bool) {
	for _, src := range w.Sources() {
		if src.Name == name {
			return src, true
		}
	}
	return models.DataSource{}, false
}

// Extract reads the rows of a source. A source without data rows yields a
// SourceError wrapping ErrEmptySource.
func (w *Workbook) Extract(src models.DataSource) (*models.Dataset, error) {
	var (
		d   *models.Dataset
		err error
	)
	switch src.Type {
	case models.SourceSheet:
		d, err = w.extractSheet(src.Name)
	case models.SourceTable:
		d, err = w.extractTable(src.Name)
	default:
		err = errors.Wrapf(ErrUnknownSource, "source type %q", src.Type)
	}
	if err != nil {
		return nil, NewSourceError(src, err)
	}
	if d.Len() == 0 {
		return nil, NewSourceError(src, ErrEmptySource)
	}
	return d, nil
}

func (w *Workbook) extractSheet(name string) (*models.Dataset, error) {
	if idx, err := w.file.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, errors.Wrapf(ErrUnknownSource, "sheet %q", name)
	}
	grid, err := readGrid(w.file, name)
	if err != nil {
		return nil, err
	}
	return sheetToDataset(grid), nil
}

func (w *Workbook) extractTable(name string) (*models.Dataset, error) {
	for _, sheet := range w.file.GetSheetList() {
		tables, err := w.file.GetTables(sheet)
		if err != nil {
			continue
		}
		for _, t := range tables {
			if t.Name != name {
				continue
			}
			area, err := parseRange(t.Range)
			if err != nil {
				return nil, errors.Wrapf(err, "table %q", name)
			}
			grid, err := readGrid(w.file, sheet)
			if err != nil {
				return nil, err
			}
			return tableToDataset(grid, area), nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownSource, "table %q", name)
}
