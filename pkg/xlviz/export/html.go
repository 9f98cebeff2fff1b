package export

import (
	"html/template"
	"io"

	"github.com/cockroachdb/errors"
)

// PlotlyScript is the renderer bundle referenced by exported pages.
const PlotlyScript = "https://cdn.plot.ly/plotly-2.32.0.min.js"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.Script}}"></script>
<style>
body { margin: 0; font-family: sans-serif; }
#plot { width: 100vw; height: 90vh; }
.legend { display: inline-block; vertical-align: top; margin: 8px 24px; font-size: 12px; }
.legend span { display: inline-block; width: 10px; height: 10px; margin-right: 6px; }
</style>
</head>
<body>
<div id="plot"></div>
{{range .Legends}}<div class="legend"><strong>{{.Title}}</strong>
{{range .Items}}<div><span style="background: {{.Color}}"></span>{{.Label}}</div>
{{end}}</div>
{{end}}<script>
var figure = {{.Figure}};
Plotly.newPlot('plot', figure.data, figure.layout).then(function () {
  if (figure.frames) { Plotly.addFrames('plot', figure.frames); }
});
</script>
</body>
</html>
`))

type pageData struct {
	Title   string
	Script  string
	Figure  *Figure
	Legends []Legend
}

// HTML writes a self-contained page that renders a Plotly-family chart.
// Other families yield ErrUnsupported.
func HTML(w io.Writer, req Request) error {
	if req.Output == nil {
		return errors.New("nothing to export")
	}
	fig, err := PlotlyFigure(req.Definition, req.Output, req.options())
	if err != nil {
		return err
	}
	data := pageData{
		Title:   req.Definition.Name,
		Script:  PlotlyScript,
		Figure:  fig,
		Legends: legends(req.Output),
	}
	if err := page.Execute(w, data); err != nil {
		return errors.Wrap(err, "render html")
	}
	return nil
}
