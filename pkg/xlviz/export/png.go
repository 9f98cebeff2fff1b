package export

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/shaper"
)

type renderer interface {
	Render(chart.RendererProvider, io.Writer) error
}

// PNG renders a bar, line, pie or scatter chart as a PNG image.
func PNG(w io.Writer, req Request) error {
	if req.Output == nil {
		return errors.New("nothing to export")
	}
	opts := req.options()
	title := ""
	if models.Shown(opts.Title.Display) {
		title = opts.Title.Text
	}
	width, height := req.size()

	var r renderer
	switch o := req.Output.(type) {
	case *shaper.Categorical:
		switch o.Kind {
		case charts.Bar:
			r = barChart(o, title, width, height)
		case charts.Line:
			r = lineChart(o, opts, title, width, height)
		case charts.Pie:
			r = pieChart(o, title, width, height)
		}
	case *shaper.Scatter:
		r = scatterChart(o, opts, title, width, height)
	}
	if r == nil {
		return errors.Wrapf(ErrUnsupported, "PNG export is not available for %s charts", req.Output.Chart())
	}
	if err := r.Render(chart.PNG, w); err != nil {
		return errors.Wrap(err, "render png")
	}
	return nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func number(v models.Value) float64 {
	f, _ := v.Float()
	return f
}

func barChart(c *shaper.Categorical, title string, width, height int) renderer {
	if len(c.Series) == 1 {
		s := c.Series[0]
		bars := make([]chart.Value, len(c.Labels))
		for i, l := range c.Labels {
			bars[i] = chart.Value{
				Label: l.String(),
				Value: number(s.Values[i]),
				Style: chart.Style{FillColor: color(s.Color), StrokeColor: color(s.Color)},
			}
		}
		return &chart.BarChart{Title: title, Width: width, Height: height, Bars: bars}
	}

	// go-chart has no grouped bars; multiple series stack instead.
	stacked := make([]chart.StackedBar, len(c.Labels))
	for i, l := range c.Labels {
		values := make([]chart.Value, len(c.Series))
		for j, s := range c.Series {
			values[j] = chart.Value{
				Label: s.Name,
				Value: number(s.Values[i]),
				Style: chart.Style{FillColor: color(s.Color), StrokeColor: color(s.Color)},
			}
		}
		stacked[i] = chart.StackedBar{Name: l.String(), Values: values}
	}
	return &chart.StackedBarChart{Title: title, Width: width, Height: height, Bars: stacked}
}

func pieChart(c *shaper.Categorical, title string, width, height int) renderer {
	var values []chart.Value
	if len(c.Series) > 0 {
		for i, l := range c.Labels {
			values = append(values, chart.Value{
				Label: l.String(),
				Value: number(c.Series[0].Values[i]),
				Style: chart.Style{FillColor: color(charts.ColorAt(c.Colors, i))},
			})
		}
	}
	return &chart.PieChart{Title: title, Width: width, Height: height, Values: values}
}

func lineChart(c *shaper.Categorical, opts models.ChartOptions, title string, width, height int) renderer {
	xs := make([]float64, len(c.Labels))
	ticks := make([]chart.Tick, len(c.Labels))
	for i, l := range c.Labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: l.String()}
	}

	graph := &chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		XAxis:  xAxis(opts.XAxis, ticks),
		YAxis:  yAxis(opts.YAxis),
	}
	for _, s := range c.Series {
		ys := make([]float64, len(s.Values))
		for i, v := range s.Values {
			ys[i] = number(v)
		}
		px, py := pad(xs, ys)
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: px,
			YValues: py,
			Style:   chart.Style{StrokeColor: color(s.Color), StrokeWidth: 2},
		})
	}
	if models.Shown(opts.Legend.Display) {
		graph.Elements = []chart.Renderable{chart.Legend(graph)}
	}
	return graph
}

func scatterChart(s *shaper.Scatter, opts models.ChartOptions, title string, width, height int) renderer {
	xs := make([]float64, 0, len(s.Points))
	ys := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		x, okX := p.X.Float()
		y, okY := p.Y.Float()
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	xs, ys = pad(xs, ys)
	graph := &chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		XAxis:  xAxis(opts.XAxis, nil),
		YAxis:  yAxis(opts.YAxis),
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    color(s.Color),
			},
		}},
	}
	return graph
}

func xAxis(a models.AxisOptions, ticks []chart.Tick) chart.XAxis {
	return chart.XAxis{
		Name:  a.Title,
		Ticks: ticks,
		Style: chart.Style{Hidden: !models.Shown(a.Display)},
	}
}

func yAxis(a models.AxisOptions) chart.YAxis {
	return chart.YAxis{
		Name:  a.Title,
		Style: chart.Style{Hidden: !models.Shown(a.Display)},
	}
}

// pad repeats a lone point so go-chart can build a non-empty range.
func pad(xs, ys []float64) ([]float64, []float64) {
	if len(xs) == 1 {
		return []float64{xs[0], xs[0] + 1}, []float64{ys[0], ys[0]}
	}
	return xs, ys
}
