package shaper

import (
	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// Hierarchy is the output of sunburst and treemap charts: flat
// child/parent/value triples aligned by row.
type Hierarchy struct {
	Kind    charts.Kind    `json:"chart"`
	Labels  []models.Value `json:"labels"`
	Parents []models.Value `json:"parents"`
	Values  []models.Value `json:"values"`
	Colors  []string       `json:"colors"`
}

func (h *Hierarchy) Chart() charts.Kind { return h.Kind }
func (*Hierarchy) output()              {}

// Funnel is the output of funnel charts, in row order.
type Funnel struct {
	Stages []models.Value `json:"stages"`
	Values []models.Value `json:"values"`
	Color  string         `json:"color"`
}

func (*Funnel) Chart() charts.Kind { return charts.Funnel }
func (*Funnel) output()            {}

func shapeHierarchy(j *job) (Output, error) {
	rows := j.rows()
	return &Hierarchy{
		Kind:    j.kind,
		Labels:  column(rows, j.col("labels")),
		Parents: column(rows, j.col("parents")),
		Values:  column(rows, j.col("values")),
		Colors:  j.colors,
	}, nil
}

func shapeFunnel(j *job) (Output, error) {
	rows := j.rows()
	return &Funnel{
		Stages: column(rows, j.col("stage")),
		Values: column(rows, j.col("value")),
		Color:  j.color(0),
	}, nil
}
