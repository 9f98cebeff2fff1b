package models

// Notation selects how numbers are rendered.
type Notation string

const (
	// NotationStandard renders grouped digits ("1,234").
	NotationStandard Notation = "standard"
	// NotationCompact renders SI-style suffixes ("1.2K").
	NotationCompact Notation = "compact"
)

// DateFormat is one of the fixed date patterns offered for a column.
type DateFormat string

const (
	// DateDefault disables date formatting.
	DateDefault DateFormat = "Default"
	// DateISO renders 2023-12-25.
	DateISO DateFormat = "yyyy-mm-dd"
	// DateUS renders 12/25/23.
	DateUS DateFormat = "m/d/yy"
	// DateMonthYear renders Dec-23.
	DateMonthYear DateFormat = "mmm-yy"
	// DateGeneral renders serials like the spreadsheet General format.
	DateGeneral DateFormat = "General"
)

// ColumnFormat holds the display options of one column.
type ColumnFormat struct {
	// Notation is the number notation; empty means standard.
	Notation Notation `json:"notation,omitempty"`
	// DateFormat is the date pattern; empty means Default.
	DateFormat DateFormat `json:"dateFormat,omitempty"`
}

// IsDate reports whether a non-default date pattern is selected.
func (c ColumnFormat) IsDate() bool {
	return c.DateFormat != "" && c.DateFormat != DateDefault
}

// FormatOptions maps a column name to its display options.
type FormatOptions map[string]ColumnFormat

// For returns the options of a column, or nil when none are set.
func (f FormatOptions) For(column string) *ColumnFormat {
	if c, ok := f[column]; ok {
		return &c
	}
	return nil
}

// LegendPosition places the chart legend.
type LegendPosition string

const (
	LegendTop    LegendPosition = "top"
	LegendBottom LegendPosition = "bottom"
	LegendLeft   LegendPosition = "left"
	LegendRight  LegendPosition = "right"
)

// TitleOptions controls the chart title.
type TitleOptions struct {
	Display *bool  `json:"display,omitempty"`
	Text    string `json:"text"`
}

// AxisOptions controls one axis.
type AxisOptions struct {
	Display *bool  `json:"display,omitempty"`
	Title   string `json:"title"`
}

// LegendOptions controls the legend.
type LegendOptions struct {
	Display  *bool          `json:"display,omitempty"`
	Position LegendPosition `json:"position,omitempty"`
}

// ChartOptions are display-only settings passed through to the renderer.
// They never affect data shaping.
type ChartOptions struct {
	Title        TitleOptions  `json:"title"`
	XAxis        AxisOptions   `json:"xAxis"`
	YAxis        AxisOptions   `json:"yAxis"`
	Legend       LegendOptions `json:"legend"`
	ColorPalette string        `json:"colorPalette,omitempty"`
}

// Merge returns o with unset fields taken from defaults.
func (o ChartOptions) Merge(defaults ChartOptions) ChartOptions {
	out := o
	if out.Title.Display == nil {
		out.Title.Display = defaults.Title.Display
	}
	if out.XAxis.Display == nil {
		out.XAxis.Display = defaults.XAxis.Display
	}
	if out.YAxis.Display == nil {
		out.YAxis.Display = defaults.YAxis.Display
	}
	if out.Legend.Display == nil {
		out.Legend.Display = defaults.Legend.Display
	}
	if out.Legend.Position == "" {
		out.Legend.Position = defaults.Legend.Position
	}
	if out.ColorPalette == "" {
		out.ColorPalette = defaults.ColorPalette
	}
	return out
}

// Shown dereferences an optional display flag; unset means shown.
func Shown(b *bool) bool {
	return b == nil || *b
}
