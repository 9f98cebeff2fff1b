package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/shaper"
)

func shape(t *testing.T, chartID string, columns []string, mapping models.ColumnMapping, rows ...[]models.Value) Request {
	t.Helper()
	d := &models.Dataset{Columns: columns}
	for _, vals := range rows {
		r := make(models.Row)
		for i, v := range vals {
			r[columns[i]] = v
		}
		d.Rows = append(d.Rows, r)
	}
	def := charts.MustLookup(chartID)
	out, err := shaper.Shape(shaper.Request{Definition: def, Data: d, Mapping: mapping})
	require.NoError(t, err)
	return Request{Definition: def, Output: out}
}

var (
	num  = models.Number
	text = models.Text
)

func TestFileName(t *testing.T) {
	require.Equal(t, "Sales_heatmap.html", FileName("Sales", "heatmap", FormatHTML))
	require.Equal(t, "Table1_bar.png", FileName("Table1", "bar", FormatPNG))
}

func TestHTMLHeatmap(t *testing.T) {
	req := shape(t, "heatmap", []string{"x", "y", "z"},
		models.ColumnMapping{"x": "x", "y": "y", "z": "z"},
		[]models.Value{text("a"), text("p"), num(1)},
		[]models.Value{text("b"), text("q"), num(2)},
	)
	req.Options = &models.ChartOptions{Title: models.TitleOptions{Text: "Heat"}}

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, req))
	page := buf.String()
	require.Contains(t, page, "<title>Heatmap</title>")
	require.Contains(t, page, PlotlyScript)
	require.Contains(t, page, `"type":"heatmap"`)
	require.Contains(t, page, `"text":"Heat"`)
	require.Contains(t, page, "Plotly.newPlot('plot'")
}

func TestHTMLRejectsOtherFamilies(t *testing.T) {
	req := shape(t, "bar", []string{"c", "v"},
		models.ColumnMapping{"category": "c", "values": "v"},
		[]models.Value{text("A"), num(1)},
	)
	err := Write(&bytes.Buffer{}, FormatHTML, req)
	require.True(t, errors.Is(err, ErrUnsupported))
	require.Contains(t, err.Error(), "only supported for Plotly.js charts")
}

func TestMarimekkoFigure(t *testing.T) {
	req := shape(t, "marimekko", []string{"bar", "seg", "v"},
		models.ColumnMapping{"barCategory": "bar", "segmentCategory": "seg", "value": "v"},
		[]models.Value{text("X"), text("p"), num(30)},
		[]models.Value{text("X"), text("q"), num(70)},
		[]models.Value{text("Y"), text("p"), num(100)},
	)
	m := req.Output.(*shaper.Marimekko)

	fig, err := PlotlyFigure(req.Definition, req.Output, charts.DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, fig.Data)
	require.Len(t, fig.Layout["shapes"], len(m.Rects))

	annotations := fig.Layout["annotations"].([]map[string]interface{})
	require.Len(t, annotations, len(m.Labels)+len(m.Badges))
	require.True(t, strings.Contains(annotations[0]["text"].(string), "<br>"))
	require.Equal(t, false, fig.Layout["showlegend"])

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, req))
	require.Contains(t, buf.String(), "1. X (100)")
}

func TestRaceFigure(t *testing.T) {
	race := &shaper.Race{
		Frames: []shaper.RaceFrame{
			{Frame: num(2020), Label: "2020", Bars: []shaper.RaceBar{{Label: text("a"), Value: 5, Text: "5"}}},
			{Frame: num(2021), Label: "2021", Bars: []shaper.RaceBar{{Label: text("a"), Value: 9, Text: "9"}}},
		},
		AxisMax:   9,
		AxisRange: [2]float64{0, 9.9},
		Color:     "#1f77b4",
	}
	fig, err := PlotlyFigure(charts.MustLookup("bar-chart-race"), race, charts.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)
	require.Len(t, fig.Frames, 2)
	require.Equal(t, "2021", fig.Frames[1]["name"])
	require.Equal(t, "reversed", fig.Layout["yaxis"].(map[string]interface{})["autorange"])
	require.Equal(t, [2]float64{0, 9.9}, fig.Layout["xaxis"].(map[string]interface{})["range"])
}

func TestLegendPosition(t *testing.T) {
	opts := charts.ResolveOptions(&models.ChartOptions{Legend: models.LegendOptions{Position: models.LegendLeft}})
	layout := baseLayout(opts)
	require.Equal(t, "right", layout["legend"].(map[string]interface{})["xanchor"])
	require.NotContains(t, layout, "title")

	hidden := false
	opts.Title.Display = &hidden
	opts.Title.Text = "ignored"
	require.NotContains(t, baseLayout(opts), "title")
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestPNG(t *testing.T) {
	tests := []struct {
		name    string
		chartID string
		columns []string
		mapping models.ColumnMapping
	}{
		{"bar", "bar", []string{"c", "v"}, models.ColumnMapping{"category": "c", "values": "v"}},
		{"stacked bar", "bar", []string{"c", "v", "w"}, models.ColumnMapping{"category": "c", "values": "v,w"}},
		{"line", "line", []string{"c", "v", "w"}, models.ColumnMapping{"category": "c", "values": "v,w"}},
		{"pie", "pie", []string{"c", "v"}, models.ColumnMapping{"labels": "c", "values": "v"}},
		{"scatter", "scatter", []string{"c", "v", "w"}, models.ColumnMapping{"x": "v", "y": "w"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := [][]models.Value{
				{text("A"), num(10), num(3)},
				{text("B"), num(20), num(7)},
				{text("C"), num(15), num(4)},
			}
			for i := range rows {
				rows[i] = rows[i][:len(tt.columns)]
			}
			req := shape(t, tt.chartID, tt.columns, tt.mapping, rows...)
			req.Width, req.Height = 320, 240

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, FormatPNG, req))
			require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
		})
	}
}

func TestPNGUnsupported(t *testing.T) {
	req := shape(t, "radar", []string{"c", "v"},
		models.ColumnMapping{"category": "c", "values": "v"},
		[]models.Value{text("A"), num(1)},
	)
	err := PNG(&bytes.Buffer{}, req)
	require.True(t, errors.Is(err, ErrUnsupported))

	require.True(t, errors.Is(Write(&bytes.Buffer{}, Format("svg"), req), ErrUnsupported))
}
