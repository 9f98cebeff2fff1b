package xlviz

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrFileNotFound indicates the input workbook does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnknownColumn indicates a column that is not part of the dataset.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownChart indicates a chart type identifier outside the catalogue.
	ErrUnknownChart = errors.New("unknown chart type")

	// ErrDuplicateFilter indicates a second filter on the same column.
	ErrDuplicateFilter = errors.New("column already has a filter")

	// ErrNoFilter indicates an edit of a filter that was never added.
	ErrNoFilter = errors.New("column has no filter")

	// ErrInvalidType indicates an override that is not a column type.
	ErrInvalidType = errors.New("invalid column type")
)
