package shaper

import (
	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// RadarRows caps the number of items drawn on a radar chart.
const RadarRows = 5

// Series is one named run of values aligned with the chart labels.
type Series struct {
	Name   string         `json:"name"`
	Values []models.Value `json:"values"`
	Color  string         `json:"color,omitempty"`
	Fill   string         `json:"fill,omitempty"`
}

// Categorical is the output of bar, line, pie and radar charts.
type Categorical struct {
	Kind   charts.Kind    `json:"chart"`
	Labels []models.Value `json:"labels"`
	Series []Series       `json:"series"`
	// Colors holds per-label colours for pie slices.
	Colors []string `json:"colors,omitempty"`
}

func (c *Categorical) Chart() charts.Kind { return c.Kind }
func (*Categorical) output()              {}

// Point is one scatter point.
type Point struct {
	X models.Value `json:"x"`
	Y models.Value `json:"y"`
}

// Scatter is the output of scatter charts.
type Scatter struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
	Color  string  `json:"color"`
}

func (*Scatter) Chart() charts.Kind { return charts.Scatter }
func (*Scatter) output()            {}

func shapeSeries(j *job) (Output, error) {
	rows := j.rows()
	out := &Categorical{Kind: j.kind, Labels: column(rows, j.col("category"))}
	for i, col := range j.mapping.Columns("values") {
		out.Series = append(out.Series, Series{
			Name:   col,
			Values: column(rows, col),
			Color:  j.color(i),
		})
	}
	return out, nil
}

func shapePie(j *job) (Output, error) {
	rows := j.rows()
	out := &Categorical{
		Kind:   charts.Pie,
		Labels: column(rows, j.col("labels")),
		Series: []Series{{Name: j.col("values"), Values: column(rows, j.col("values"))}},
	}
	for i := range rows {
		out.Colors = append(out.Colors, j.color(i))
	}
	return out, nil
}

func shapeScatter(j *job) (Output, error) {
	xCol, yCol := j.col("x"), j.col("y")
	out := &Scatter{Name: xCol + " vs " + yCol, Color: j.color(0)}
	for _, r := range j.rows() {
		out.Points = append(out.Points, Point{X: r.Get(xCol), Y: r.Get(yCol)})
	}
	return out, nil
}

// shapeRadar draws one polygon per item. The axes are the value columns,
// so the labels are column names rather than row values.
func shapeRadar(j *job) (Output, error) {
	cols := j.mapping.Columns("values")
	out := &Categorical{Kind: charts.Radar}
	for _, c := range cols {
		out.Labels = append(out.Labels, models.Text(c))
	}

	rows := j.rows()
	if len(rows) > RadarRows {
		rows = rows[:RadarRows]
	}
	for i, r := range rows {
		s := Series{
			Name:  r.Get(j.col("category")).String(),
			Color: j.color(i),
			Fill:  j.color(i) + "80",
		}
		for _, c := range cols {
			s.Values = append(s.Values, r.Get(c))
		}
		out.Series = append(out.Series, s)
	}
	return out, nil
}
