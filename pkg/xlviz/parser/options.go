// Package parser reads worksheets and defined tables of a workbook into
// datasets.
package parser

import (
	"go.uber.org/zap"
)

// Options configures workbook reading.
type Options struct {
	// IncludeTables specifies whether defined tables are listed as sources.
	// If nil, defaults to true.
	IncludeTables *bool
	// Logger receives warnings about unreadable sheets and tables.
	// If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default reading options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeTables returns whether defined tables are listed.
func (o Options) ShouldIncludeTables() bool {
	if o.IncludeTables != nil {
		return *o.IncludeTables
	}
	return true
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
