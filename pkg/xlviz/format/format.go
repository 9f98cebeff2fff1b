// Package format renders cell values for display.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// MaxFractionDigits bounds the fraction digits of standard notation.
const MaxFractionDigits = 3

var printer = message.NewPrinter(language.English)

// Value renders v for display. The rules apply in order: null is empty,
// then a selected date pattern, then compact notation for numeric columns,
// then grouped standard notation for numbers, then the plain string form.
func Value(v models.Value, opts *models.ColumnFormat, t models.ColumnType) string {
	if v.IsNull() {
		return ""
	}

	if opts != nil && opts.IsDate() {
		if s, ok := date(v, opts.DateFormat); ok {
			return s
		}
	}

	if t == models.TypeNumeric && opts != nil && opts.Notation == models.NotationCompact {
		if f, ok := v.Float(); ok {
			return Compact(f)
		}
	}

	if f, ok := v.Num(); ok {
		return Standard(f)
	}
	return v.String()
}

// Number renders a computed number such as an aggregate total with the
// options of the column it came from.
func Number(f float64, opts *models.ColumnFormat) string {
	return Value(models.Number(f), opts, models.TypeNumeric)
}

// Standard renders f with thousands separators and at most
// MaxFractionDigits fraction digits.
func Standard(f float64) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(MaxFractionDigits)))
}

var compactSuffixes = []string{"", "K", "M", "B", "T"}

var siExponents = map[string]int{"k": 1, "M": 2, "G": 3, "T": 4, "P": 5, "E": 6, "Z": 7, "Y": 8}

// Compact renders f with a magnitude suffix: 1234 is "1.2K", 12345 is
// "12K" and 123456 is "123K". Mantissas below 100 keep two significant
// digits.
func Compact(f float64) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	if f == 0 {
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	_, prefix := humanize.ComputeSI(f)
	idx := siExponents[prefix]
	if idx >= len(compactSuffixes) {
		idx = len(compactSuffixes) - 1
	}

	m := roundMantissa(f / math.Pow(1000, float64(idx)))
	if m >= 1000 && idx < len(compactSuffixes)-1 {
		idx++
		m = roundMantissa(m / 1000)
	}
	return sign + strconv.FormatFloat(m, 'f', -1, 64) + compactSuffixes[idx]
}

func roundMantissa(m float64) float64 {
	if m >= 100 {
		return math.Round(m)
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(m, 'g', 2, 64), 64)
	return r
}

func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "∞", true
	case math.IsInf(f, -1):
		return "-∞", true
	}
	return "", false
}

var layouts = map[models.DateFormat]string{
	models.DateISO:       "2006-01-02",
	models.DateUS:        "1/2/06",
	models.DateMonthYear: "Jan-06",
}

// date applies a date pattern. Numbers are spreadsheet serials; strings
// are parsed as calendar dates and only support the layout patterns.
func date(v models.Value, pattern models.DateFormat) (string, bool) {
	if serial, ok := v.Num(); ok {
		if pattern == models.DateGeneral {
			return v.String(), true
		}
		layout, ok := layouts[pattern]
		if !ok {
			return "", false
		}
		tm, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", false
		}
		return tm.Format(layout), true
	}

	s, ok := v.Str()
	if !ok {
		return "", false
	}
	tm, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	layout, ok := layouts[pattern]
	if !ok {
		return "", false
	}
	return tm.Format(layout), true
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2006",
}

// ParseDate parses common calendar date spellings.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return tm, true
		}
	}
	return time.Time{}, false
}
