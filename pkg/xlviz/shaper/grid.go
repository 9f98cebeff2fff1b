package shaper

import (
	"slices"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// Grid is the output of heatmap and surface charts. Z[yi][xi] holds the
// value of the first row matching (X[xi], Y[yi]), or null for gaps.
type Grid struct {
	Kind charts.Kind      `json:"chart"`
	X    []models.Value   `json:"x"`
	Y    []models.Value   `json:"y"`
	Z    [][]models.Value `json:"z"`
}

func (g *Grid) Chart() charts.Kind { return g.Kind }
func (*Grid) output()              {}

type cell struct {
	x, y models.Value
}

func shapeGrid(j *job) (Output, error) {
	rows := j.rows()
	xCol, yCol, zCol := j.col("x"), j.col("y"), j.col("z")

	xs := distinct(rows, xCol)
	ys := distinct(rows, yCol)
	slices.SortStableFunc(xs, models.Compare)
	slices.SortStableFunc(ys, models.Compare)

	cells := make(map[cell]models.Value, len(rows))
	for _, r := range rows {
		k := cell{r.Get(xCol), r.Get(yCol)}
		if _, ok := cells[k]; !ok {
			cells[k] = r.Get(zCol)
		}
	}

	z := make([][]models.Value, len(ys))
	for yi, y := range ys {
		z[yi] = make([]models.Value, len(xs))
		for xi, x := range xs {
			z[yi][xi] = cells[cell{x, y}]
		}
	}
	return &Grid{Kind: j.kind, X: xs, Y: ys, Z: z}, nil
}
