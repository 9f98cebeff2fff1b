package parser

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

var (
	// ErrInvalidWorkbook indicates the input could not be parsed as a workbook.
	ErrInvalidWorkbook = errors.New("failed to parse the Excel file")

	// ErrEmptySource indicates a sheet or table without data rows.
	ErrEmptySource = errors.New("data source is empty")

	// ErrUnknownSource indicates a sheet or table name not present in the workbook.
	ErrUnknownSource = errors.New("unknown data source")
)

// SourceError represents a failure to read one data source.
type SourceError struct {
	Source string
	Kind   models.SourceKind
	Err    error
}

func (e *SourceError) Error() string {
	if errors.Is(e.Err, ErrEmptySource) {
		return fmt.Sprintf("Data source %q is empty or could not be read.", e.Source)
	}
	return fmt.Sprintf("failed to extract data from %s %q: %v", e.Kind, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(src models.DataSource, err error) *SourceError {
	return &SourceError{
		Source: src.Name,
		Kind:   src.Type,
		Err:    err,
	}
}
