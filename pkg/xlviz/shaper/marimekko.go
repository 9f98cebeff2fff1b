package shaper

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/format"
)

// Layout constants of the Marimekko chart, in unit coordinates.
const (
	// LabelThreshold is the segment height above which a value label is drawn.
	LabelThreshold = 0.05
	// BadgeY is the vertical position of the rank badges under the bars.
	BadgeY = -0.04
)

// MekkoBar is one width-weighted bar.
type MekkoBar struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	// Width is the bar's share of the grand total.
	Width float64 `json:"width"`
	// Rank is the 1-based position after sorting by total.
	Rank  int    `json:"rank"`
	Color string `json:"color"`
}

// Rect is one stacked segment region in unit coordinates.
type Rect struct {
	Bar     string  `json:"bar"`
	Segment string  `json:"segment"`
	Value   float64 `json:"value"`
	X0      float64 `json:"x0"`
	X1      float64 `json:"x1"`
	Y0      float64 `json:"y0"`
	Y1      float64 `json:"y1"`
	Color   string  `json:"color"`
}

// Height is the segment's share of its bar.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Annotation is a text label placed at a point.
type Annotation struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
	// Background is set for rank badges.
	Background string `json:"background,omitempty"`
}

// LegendItem is one entry of an out-of-band legend.
type LegendItem struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Marimekko is the output of Marimekko charts. Bars are sorted by total
// descending, segments by grand total descending; both sorts are stable so
// ties keep first-seen order. An empty Marimekko means the grand total was
// zero.
type Marimekko struct {
	GrandTotal    float64      `json:"grandTotal"`
	Bars          []MekkoBar   `json:"bars"`
	Segments      []string     `json:"segments"`
	Rects         []Rect       `json:"rects"`
	Labels        []Annotation `json:"labels"`
	Badges        []Annotation `json:"badges"`
	SegmentLegend []LegendItem `json:"segmentLegend"`
	BarLegend     []LegendItem `json:"barLegend"`
}

func (*Marimekko) Chart() charts.Kind { return charts.Marimekko }
func (*Marimekko) output()            {}

// pivot accumulates sums per key while remembering first-seen key order.
type pivot struct {
	keys   []string
	totals map[string]float64
}

func newPivot() *pivot {
	return &pivot{totals: make(map[string]float64)}
}

func (p *pivot) add(key string, v float64) {
	if _, ok := p.totals[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.totals[key] += v
}

// sortedDesc returns the keys ordered by total, largest first.
func (p *pivot) sortedDesc() []string {
	keys := slices.Clone(p.keys)
	slices.SortStableFunc(keys, func(a, b string) int {
		switch ta, tb := p.totals[a], p.totals[b]; {
		case ta > tb:
			return -1
		case ta < tb:
			return 1
		}
		return 0
	})
	return keys
}

func shapeMarimekko(j *job) (Output, error) {
	barCol, segCol, valCol := j.col("barCategory"), j.col("segmentCategory"), j.col("value")
	valFmt := j.format.For(valCol)

	// Bucket by (bar, segment). Rows with an empty key or an unparseable
	// value are skipped.
	bars := newPivot()
	segsByBar := make(map[string]*pivot)
	segments := newPivot()
	for _, r := range j.rows() {
		bar, seg := r.Get(barCol), r.Get(segCol)
		val, ok := r.Get(valCol).Float()
		if !ok || !bar.Truthy() || !seg.Truthy() {
			continue
		}
		b, s := bar.String(), seg.String()
		bars.add(b, val)
		segments.add(s, val)
		if segsByBar[b] == nil {
			segsByBar[b] = newPivot()
		}
		segsByBar[b].add(s, val)
	}

	out := &Marimekko{}
	for _, b := range bars.keys {
		out.GrandTotal += bars.totals[b]
	}
	if out.GrandTotal == 0 {
		return out, nil
	}

	out.Segments = segments.sortedDesc()
	segColor := make(map[string]string, len(out.Segments))
	for i, s := range out.Segments {
		segColor[s] = j.color(i)
		out.SegmentLegend = append(out.SegmentLegend, LegendItem{
			Label: fmt.Sprintf("%s (%s)", s, format.Number(segments.totals[s], valFmt)),
			Color: segColor[s],
		})
	}

	rankColors := charts.Colors(charts.RankPalette)
	x := 0.0
	for _, b := range bars.sortedDesc() {
		total := bars.totals[b]
		if total == 0 {
			continue
		}
		rank := len(out.Bars) + 1
		bar := MekkoBar{
			Name:  b,
			Total: total,
			Width: total / out.GrandTotal,
			Rank:  rank,
			Color: charts.ColorAt(rankColors, rank-1),
		}
		out.Bars = append(out.Bars, bar)
		out.BarLegend = append(out.BarLegend, LegendItem{
			Label: fmt.Sprintf("%d. %s (%s)", bar.Rank, b, format.Number(total, valFmt)),
			Color: bar.Color,
		})

		y := 0.0
		segs := segsByBar[b]
		for _, s := range out.Segments {
			v := segs.totals[s]
			if v == 0 {
				continue
			}
			h := v / total
			out.Rects = append(out.Rects, Rect{
				Bar: b, Segment: s, Value: v,
				X0: x, X1: x + bar.Width,
				Y0: y, Y1: y + h,
				Color: segColor[s],
			})
			if h > LabelThreshold {
				out.Labels = append(out.Labels, Annotation{
					X:    x + bar.Width/2,
					Y:    y + h/2,
					Text: fmt.Sprintf("%s\n(%s%%)", format.Number(v, valFmt), strconv.FormatFloat(h*100, 'f', 1, 64)),
				})
			}
			y += h
		}

		out.Badges = append(out.Badges, Annotation{
			X:          x + bar.Width/2,
			Y:          BadgeY,
			Text:       strconv.Itoa(bar.Rank),
			Background: bar.Color,
		})
		x += bar.Width
	}
	return out, nil
}
