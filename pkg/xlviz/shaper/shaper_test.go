package shaper

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

func dataset(columns []string, rows ...[]models.Value) *models.Dataset {
	d := &models.Dataset{Columns: columns}
	for _, vals := range rows {
		r := make(models.Row)
		for i, v := range vals {
			if !v.IsNull() {
				r[columns[i]] = v
			}
		}
		d.Rows = append(d.Rows, r)
	}
	return d
}

var (
	num  = models.Number
	text = models.Text
)

func request(chartID string, d *models.Dataset, mapping models.ColumnMapping) Request {
	return Request{Definition: charts.MustLookup(chartID), Data: d, Mapping: mapping}
}

func TestEveryKindHasShaper(t *testing.T) {
	for _, k := range charts.Kinds {
		_, ok := shapers[k]
		require.True(t, ok, "no shaping function for %s", k)
	}
	require.Len(t, shapers, len(charts.Kinds))
}

func TestShapeBar(t *testing.T) {
	d := dataset([]string{"cat", "v"},
		[]models.Value{text("A"), num(10)},
		[]models.Value{text("B"), num(20)},
	)
	out, err := Shape(request("bar", d, models.ColumnMapping{"category": "cat", "values": "v"}))
	require.NoError(t, err)

	bar, ok := out.(*Categorical)
	require.True(t, ok)
	require.Equal(t, charts.Bar, bar.Chart())
	require.Equal(t, []models.Value{text("A"), text("B")}, bar.Labels)
	require.Len(t, bar.Series, 1)
	require.Equal(t, "v", bar.Series[0].Name)
	require.Equal(t, []models.Value{num(10), num(20)}, bar.Series[0].Values)
	require.Equal(t, charts.Colors(charts.DefaultPalette)[0], bar.Series[0].Color)
}

func TestShapeLineMultipleSeries(t *testing.T) {
	d := dataset([]string{"month", "a", "b"},
		[]models.Value{text("Jan"), num(1), num(2)},
		[]models.Value{text("Feb"), num(3), models.Null()},
	)
	out, err := Shape(Request{
		Definition: charts.MustLookup("line"),
		Data:       d,
		Mapping:    models.ColumnMapping{"category": "month", "values": "a,b"},
		Palette:    "Sunset",
	})
	require.NoError(t, err)

	line := out.(*Categorical)
	require.Len(t, line.Series, 2)
	require.Equal(t, "b", line.Series[1].Name)
	require.True(t, line.Series[1].Values[1].IsNull())
	require.Equal(t, "#f3722c", line.Series[1].Color)
}

func TestShapeNotReady(t *testing.T) {
	d := dataset([]string{"cat"}, []models.Value{text("A")})
	_, err := Shape(request("bar", d, models.ColumnMapping{"category": "cat"}))
	require.True(t, errors.Is(err, ErrNotReady))

	_, err = Shape(request("marimekko", d, models.ColumnMapping{"barCategory": "cat", "value": "v"}))
	require.True(t, errors.Is(err, ErrNotReady))
}

func TestShapeOptionalDimension(t *testing.T) {
	d := dataset([]string{"s", "t"},
		[]models.Value{text("a"), text("b")},
		[]models.Value{text("b"), text("c")},
	)
	out, err := Shape(request("force-directed", d, models.ColumnMapping{"source": "s", "target": "t"}))
	require.NoError(t, err)

	g := out.(*Graph)
	require.Equal(t, []Node{{text("a")}, {text("b")}, {text("c")}}, g.Nodes)
	require.Len(t, g.Links, 2)
	require.Equal(t, float64(DefaultLinkWeight), g.Links[0].Value)
}

func TestShapeGraphMissingColumn(t *testing.T) {
	d := dataset([]string{"s"}, []models.Value{text("a")})
	_, err := Shape(request("force-directed", d, models.ColumnMapping{"source": "s", "target": "nope"}))
	require.True(t, errors.Is(err, ErrCannotRender))
}

func TestShapeRecoversPanics(t *testing.T) {
	saved := shapers[charts.Funnel]
	shapers[charts.Funnel] = func(*job) (Output, error) { panic("boom") }
	defer func() { shapers[charts.Funnel] = saved }()

	d := dataset([]string{"s", "v"}, []models.Value{text("a"), num(1)})
	out, err := Shape(request("funnel", d, models.ColumnMapping{"stage": "s", "value": "v"}))
	require.Nil(t, out)
	require.True(t, errors.Is(err, ErrCannotRender))
	require.Contains(t, err.Error(), "boom")
}

func TestShapeUnknownChart(t *testing.T) {
	_, err := Shape(Request{Definition: models.ChartDefinition{ID: "gantt"}})
	require.True(t, errors.Is(err, ErrCannotRender))
}

func TestShapeRadarCapsRows(t *testing.T) {
	d := &models.Dataset{Columns: []string{"item", "speed", "power"}}
	for i := 0; i < 8; i++ {
		d.Rows = append(d.Rows, models.Row{"item": num(float64(i)), "speed": num(1), "power": num(2)})
	}
	out, err := Shape(request("radar", d, models.ColumnMapping{"category": "item", "values": "speed,power"}))
	require.NoError(t, err)

	radar := out.(*Categorical)
	require.Equal(t, []models.Value{text("speed"), text("power")}, radar.Labels)
	require.Len(t, radar.Series, RadarRows)
	require.Equal(t, "4", radar.Series[4].Name)
	require.Equal(t, radar.Series[0].Color+"80", radar.Series[0].Fill)
}

func TestShapePie(t *testing.T) {
	d := dataset([]string{"k", "v"},
		[]models.Value{text("a"), num(1)},
		[]models.Value{text("b"), num(2)},
	)
	out, err := Shape(request("pie", d, models.ColumnMapping{"labels": "k", "values": "v"}))
	require.NoError(t, err)
	pie := out.(*Categorical)
	require.Len(t, pie.Colors, 2)
	require.Equal(t, []models.Value{num(1), num(2)}, pie.Series[0].Values)
}

func TestShapeScatter(t *testing.T) {
	d := dataset([]string{"x", "y"}, []models.Value{num(1), num(2)})
	out, err := Shape(request("scatter", d, models.ColumnMapping{"x": "x", "y": "y"}))
	require.NoError(t, err)
	s := out.(*Scatter)
	require.Equal(t, "x vs y", s.Name)
	require.Equal(t, []Point{{X: num(1), Y: num(2)}}, s.Points)
}
