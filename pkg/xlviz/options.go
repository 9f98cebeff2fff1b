// Package xlviz turns spreadsheet data into chart-ready structures: it
// infers column types, applies filters and shapes the visible rows for a
// chart family, and keeps the editing state of one visualization.
package xlviz

import (
	"go.uber.org/zap"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
)

type config struct {
	logger  *zap.Logger
	palette string
}

// Option configures a Session or a pipeline run.
type Option func(*config)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPalette sets the palette used when chart options name none.
func WithPalette(name string) Option {
	return func(c *config) {
		c.palette = name
	}
}

func newConfig(opts []Option) config {
	c := config{logger: zap.NewNop(), palette: charts.DefaultPalette}
	for _, o := range opts {
		o(&c)
	}
	return c
}
