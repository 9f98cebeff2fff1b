// Package export renders shaped charts into downloadable artifacts: a
// self-contained HTML page for the Plotly family and a PNG image for the
// Chart.js family.
package export

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/shaper"
)

// Format is an export file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatHTML Format = "html"
)

// ErrUnsupported indicates a chart family the format cannot render.
var ErrUnsupported = errors.New("export format not supported for this chart")

// Default image size in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 640
)

// Request is what an export needs besides the destination.
type Request struct {
	Definition models.ChartDefinition
	Output     shaper.Output
	// Options are merged over the chart defaults before rendering.
	Options *models.ChartOptions
	// Width and Height size PNG images; zero selects the defaults.
	Width, Height int
}

func (r Request) options() models.ChartOptions {
	return charts.ResolveOptions(r.Options)
}

func (r Request) size() (int, int) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// FileName returns the download name of an export.
func FileName(dataSourceName, chartID string, f Format) string {
	return dataSourceName + "_" + chartID + "." + string(f)
}

// Write renders req in format f.
func Write(w io.Writer, f Format, req Request) error {
	switch f {
	case FormatHTML:
		return HTML(w, req)
	case FormatPNG:
		return PNG(w, req)
	}
	return errors.Wrapf(ErrUnsupported, "unknown format %q", f)
}
