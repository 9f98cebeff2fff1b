package export

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/shaper"
)

// Figure is a Plotly figure: traces, layout and animation frames.
type Figure struct {
	Data   []map[string]interface{} `json:"data"`
	Layout map[string]interface{}   `json:"layout"`
	Frames []map[string]interface{} `json:"frames,omitempty"`
}

var legendPositions = map[models.LegendPosition]map[string]interface{}{
	models.LegendTop:    {"y": 1.1, "x": 0.5, "yanchor": "bottom", "xanchor": "center", "orientation": "h"},
	models.LegendBottom: {"y": -0.2, "x": 0.5, "yanchor": "top", "xanchor": "center", "orientation": "h"},
	models.LegendLeft:   {"y": 0.5, "x": -0.1, "yanchor": "middle", "xanchor": "right"},
	models.LegendRight:  {"y": 0.5, "x": 1.1, "yanchor": "middle", "xanchor": "left"},
}

func baseLayout(opts models.ChartOptions) map[string]interface{} {
	layout := map[string]interface{}{
		"colorway":   charts.Colors(opts.ColorPalette),
		"xaxis":      axis(opts.XAxis),
		"yaxis":      axis(opts.YAxis),
		"showlegend": models.Shown(opts.Legend.Display),
		"legend":     legendPositions[opts.Legend.Position],
	}
	if models.Shown(opts.Title.Display) && opts.Title.Text != "" {
		layout["title"] = map[string]interface{}{"text": opts.Title.Text, "x": 0.5, "y": 0.95}
	}
	return layout
}

func axis(a models.AxisOptions) map[string]interface{} {
	m := map[string]interface{}{"visible": models.Shown(a.Display)}
	if a.Title != "" {
		m["title"] = a.Title
	}
	return m
}

// PlotlyFigure converts a shaped Plotly-family chart into a figure.
func PlotlyFigure(def models.ChartDefinition, out shaper.Output, opts models.ChartOptions) (*Figure, error) {
	if def.Library != charts.LibraryPlotly {
		return nil, errors.Wrap(ErrUnsupported, "HTML export is currently only supported for Plotly.js charts")
	}
	fig := &Figure{Layout: baseLayout(opts)}

	switch o := out.(type) {
	case *shaper.Grid:
		traceType := "heatmap"
		if o.Chart() == charts.Surface3D {
			traceType = "surface"
		}
		fig.Data = append(fig.Data, map[string]interface{}{"type": traceType, "x": o.X, "y": o.Y, "z": o.Z})

	case *shaper.Hierarchy:
		fig.Data = append(fig.Data, map[string]interface{}{
			"type":     o.Chart().String(),
			"labels":   o.Labels,
			"parents":  o.Parents,
			"values":   o.Values,
			"textinfo": "label+percent entry",
			"marker":   map[string]interface{}{"colors": o.Colors},
		})

	case *shaper.Funnel:
		fig.Data = append(fig.Data, map[string]interface{}{
			"type":         "funnel",
			"y":            o.Stages,
			"x":            o.Values,
			"textposition": "inside",
			"textinfo":     "value+percent initial",
			"marker":       map[string]interface{}{"color": o.Color},
		})

	case *shaper.Marimekko:
		marimekkoFigure(fig, o)

	case *shaper.BubbleChart:
		bubbleFigure(fig, o)

	case *shaper.Race:
		raceFigure(fig, o)

	default:
		return nil, errors.Wrapf(ErrUnsupported, "no Plotly figure for %s", out.Chart())
	}
	return fig, nil
}

func marimekkoFigure(fig *Figure, m *shaper.Marimekko) {
	shapes := make([]map[string]interface{}, 0, len(m.Rects))
	for _, r := range m.Rects {
		shapes = append(shapes, map[string]interface{}{
			"type": "rect", "x0": r.X0, "x1": r.X1, "y0": r.Y0, "y1": r.Y1,
			"fillcolor": r.Color,
			"line":      map[string]interface{}{"width": 0.5, "color": "white"},
		})
	}

	annotations := make([]map[string]interface{}, 0, len(m.Labels)+len(m.Badges))
	for _, a := range m.Labels {
		annotations = append(annotations, map[string]interface{}{
			"x": a.X, "y": a.Y, "text": strings.ReplaceAll(a.Text, "\n", "<br>"),
			"showarrow": false,
			"font":      map[string]interface{}{"color": "black", "size": 9},
		})
	}
	for _, b := range m.Badges {
		annotations = append(annotations, map[string]interface{}{
			"x": b.X, "y": b.Y, "text": "<b>" + b.Text + "</b>",
			"showarrow": false, "yanchor": "top", "borderpad": 2, "bordercolor": "grey",
			"bgcolor": b.Background,
			"font":    map[string]interface{}{"color": "white", "size": 10},
		})
	}

	fig.Data = []map[string]interface{}{}
	fig.Layout["shapes"] = shapes
	fig.Layout["annotations"] = annotations
	fig.Layout["xaxis"] = map[string]interface{}{"visible": false, "range": []float64{0, 1}}
	fig.Layout["yaxis"] = map[string]interface{}{"visible": false, "range": []float64{0, 1.05}}
	fig.Layout["showlegend"] = false
}

func bubbleFigure(fig *Figure, b *shaper.BubbleChart) {
	n := len(b.Bubbles)
	xs, ys, frames := make([]models.Value, n), make([]models.Value, n), make([]models.Value, n)
	sizes := make([]float64, n)
	for i, p := range b.Bubbles {
		xs[i], ys[i], sizes[i], frames[i] = p.X, p.Y, p.Size, p.Frame
	}
	fig.Data = append(fig.Data, map[string]interface{}{
		"x": xs, "y": ys, "mode": "markers",
		"marker":     map[string]interface{}{"size": sizes, "sizemode": "diameter", "color": frames},
		"transforms": []map[string]interface{}{{"type": "groupby", "groups": frames}},
	})
	fig.Layout["updatemenus"] = []map[string]interface{}{{
		"type": "buttons", "showactive": false,
		"buttons": []map[string]interface{}{playButton(500, false, nil)},
	}}
}

func playButton(duration int, redraw bool, transition map[string]interface{}) map[string]interface{} {
	args := map[string]interface{}{
		"frame":       map[string]interface{}{"duration": duration, "redraw": redraw},
		"fromcurrent": true,
	}
	if transition != nil {
		args["transition"] = transition
	}
	return map[string]interface{}{"label": "Play", "method": "animate", "args": []interface{}{nil, args}}
}

func raceTrace(f shaper.RaceFrame, color string) map[string]interface{} {
	xs := make([]float64, len(f.Bars))
	ys := make([]models.Value, len(f.Bars))
	texts := make([]string, len(f.Bars))
	for i, b := range f.Bars {
		xs[i], ys[i], texts[i] = b.Value, b.Label, b.Text
	}
	return map[string]interface{}{
		"type": "bar", "orientation": "h",
		"x": xs, "y": ys, "text": texts,
		"textposition": "auto", "insidetextanchor": "end", "hoverinfo": "y+text",
		"marker": map[string]interface{}{"color": color},
	}
}

func raceFigure(fig *Figure, r *shaper.Race) {
	steps := make([]map[string]interface{}, 0, len(r.Frames))
	for _, f := range r.Frames {
		name := f.Frame.String()
		fig.Frames = append(fig.Frames, map[string]interface{}{
			"name": name,
			"data": []map[string]interface{}{raceTrace(f, r.Color)},
		})
		steps = append(steps, map[string]interface{}{
			"label":  f.Label,
			"method": "animate",
			"args": []interface{}{[]string{name}, map[string]interface{}{
				"mode":       "immediate",
				"frame":      map[string]interface{}{"duration": 100, "redraw": true},
				"transition": map[string]interface{}{"duration": 50},
			}},
		})
	}
	if len(r.Frames) > 0 {
		fig.Data = []map[string]interface{}{raceTrace(r.Frames[0], r.Color)}
	}

	xaxis := fig.Layout["xaxis"].(map[string]interface{})
	xaxis["range"] = r.AxisRange
	xaxis["autorange"] = false
	if r.TickFormat != "" {
		xaxis["tickformat"] = r.TickFormat
	}
	yaxis := fig.Layout["yaxis"].(map[string]interface{})
	yaxis["autorange"] = "reversed"
	yaxis["tickfont"] = map[string]interface{}{"size": 10}

	fig.Layout["margin"] = map[string]interface{}{"l": 150, "t": 80, "b": 80}
	fig.Layout["updatemenus"] = []map[string]interface{}{{
		"x": 0.1, "y": 0, "pad": map[string]interface{}{"t": 50},
		"showactive": false, "direction": "left", "type": "buttons",
		"buttons": []map[string]interface{}{
			playButton(100, true, map[string]interface{}{"duration": 50, "easing": "linear"}),
			{"label": "Pause", "method": "animate", "args": []interface{}{[]interface{}{nil}, map[string]interface{}{"mode": "immediate"}}},
		},
	}}
	fig.Layout["sliders"] = []map[string]interface{}{{
		"pad":          map[string]interface{}{"l": 130, "t": 30},
		"currentvalue": map[string]interface{}{"visible": true, "prefix": "Frame: ", "xanchor": "right"},
		"steps":        steps,
	}}
}

// Legend is an out-of-band legend rendered below a chart.
type Legend struct {
	Title string
	Items []shaper.LegendItem
}

func legends(out shaper.Output) []Legend {
	m, ok := out.(*shaper.Marimekko)
	if !ok || len(m.Bars) == 0 {
		return nil
	}
	return []Legend{
		{Title: "Segments", Items: m.SegmentLegend},
		{Title: "Bars", Items: m.BarLegend},
	}
}
