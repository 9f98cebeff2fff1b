package shaper

import (
	"math"
	"slices"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/charts"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/format"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

const (
	// DefaultBubbleSize replaces a missing, zero or non-numeric bubble size.
	DefaultBubbleSize = 10
	// RaceTopN is the number of bars kept per race frame.
	RaceTopN = 15
	// RaceHeadroom scales the race axis above the global maximum.
	RaceHeadroom = 1.1
	// CompactTickFormat is the axis tick format for compact notation.
	CompactTickFormat = ".2s"
)

// Bubble is one animated bubble.
type Bubble struct {
	X     models.Value `json:"x"`
	Y     models.Value `json:"y"`
	Size  float64      `json:"size"`
	Frame models.Value `json:"frame"`
}

// BubbleChart is the output of animated bubble charts. Frames lists the
// distinct frame values in first-seen order.
type BubbleChart struct {
	Bubbles []Bubble       `json:"bubbles"`
	Frames  []models.Value `json:"frames"`
}

func (*BubbleChart) Chart() charts.Kind { return charts.AnimatedBubble }
func (*BubbleChart) output()            {}

// RaceBar is one ranked bar of a race frame.
type RaceBar struct {
	Label models.Value `json:"label"`
	Value float64      `json:"value"`
	Text  string       `json:"text"`
}

// RaceFrame is one snapshot of a bar chart race. Bars are in display
// order, smallest of the top values first.
type RaceFrame struct {
	Frame models.Value `json:"frame"`
	Label string       `json:"label"`
	Bars  []RaceBar    `json:"bars"`
}

// Race is the output of bar chart races. AxisRange is shared by every
// frame so the scale never changes during playback.
type Race struct {
	Frames     []RaceFrame `json:"frames"`
	AxisMax    float64     `json:"axisMax"`
	AxisRange  [2]float64  `json:"axisRange"`
	TickFormat string      `json:"tickFormat,omitempty"`
	Color      string      `json:"color"`
}

func (*Race) Chart() charts.Kind { return charts.BarChartRace }
func (*Race) output()            {}

func shapeBubble(j *job) (Output, error) {
	xCol, yCol, sizeCol, frameCol := j.col("x"), j.col("y"), j.col("size"), j.col("frame")
	rows := j.rows()
	out := &BubbleChart{Frames: distinct(rows, frameCol)}
	for _, r := range rows {
		size, ok := r.Get(sizeCol).Float()
		if !ok || size == 0 || math.IsNaN(size) {
			size = DefaultBubbleSize
		}
		out.Bubbles = append(out.Bubbles, Bubble{
			X:     r.Get(xCol),
			Y:     r.Get(yCol),
			Size:  size,
			Frame: r.Get(frameCol),
		})
	}
	return out, nil
}

type raceEntry struct {
	label models.Value
	value float64
}

func shapeRace(j *job) (Output, error) {
	labelCol, valueCol, frameCol := j.col("label"), j.col("value"), j.col("frame")
	valFmt := j.format.For(valueCol)
	frameFmt := j.format.For(frameCol)
	frameType := j.types[frameCol]

	rows := j.rows()
	frames := distinct(rows, frameCol)
	slices.SortStableFunc(frames, models.Compare)

	byFrame := make(map[models.Value][]raceEntry, len(frames))
	peak, seen := 0.0, false
	for _, r := range rows {
		v, ok := r.Get(valueCol).Float()
		if !ok {
			continue
		}
		if !seen || v > peak {
			peak, seen = v, true
		}
		f := r.Get(frameCol)
		byFrame[f] = append(byFrame[f], raceEntry{label: r.Get(labelCol), value: v})
	}

	out := &Race{
		AxisMax:   peak,
		AxisRange: [2]float64{0, peak * RaceHeadroom},
		Color:     j.color(0),
	}
	if valFmt != nil && valFmt.Notation == models.NotationCompact {
		out.TickFormat = CompactTickFormat
	}

	for _, f := range frames {
		entries := slices.Clone(byFrame[f])
		slices.SortStableFunc(entries, func(a, b raceEntry) int {
			switch {
			case a.value > b.value:
				return -1
			case a.value < b.value:
				return 1
			}
			return 0
		})
		if len(entries) > RaceTopN {
			entries = entries[:RaceTopN]
		}
		slices.Reverse(entries)

		frame := RaceFrame{Frame: f, Label: format.Value(f, frameFmt, frameType)}
		for _, e := range entries {
			frame.Bars = append(frame.Bars, RaceBar{
				Label: e.label,
				Value: e.value,
				Text:  format.Number(e.value, valFmt),
			})
		}
		out.Frames = append(out.Frames, frame)
	}
	return out, nil
}
