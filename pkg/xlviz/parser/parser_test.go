package parser

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// writeWorkbook saves a fixture workbook and returns its path.
func writeWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestExtractSheet(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "B2", "Region")
		f.SetCellValue("Sheet1", "C2", "Sales")
		f.SetCellValue("Sheet1", "E2", "Sales")
		f.SetCellValue("Sheet1", "B3", "North")
		f.SetCellValue("Sheet1", "C3", 100)
		f.SetCellValue("Sheet1", "D3", true)
		f.SetCellValue("Sheet1", "B5", "South")
		f.SetCellValue("Sheet1", "C5", 200.5)
		f.SetCellValue("Sheet1", "E5", "00123")
	})

	wb, err := Open(path, DefaultOptions())
	require.NoError(t, err)
	defer wb.Close()
	require.Equal(t, "fixture.xlsx", wb.Name)

	d, err := wb.Extract(models.DataSource{Name: "Sheet1", Type: models.SourceSheet})
	require.NoError(t, err)

	require.Equal(t, []string{"Region", "Sales", EmptyHeader, "Sales_1"}, d.Columns)
	require.Equal(t, 2, d.Len())
	require.Equal(t, models.Text("North"), d.Value(0, "Region"))
	require.Equal(t, models.Number(100), d.Value(0, "Sales"))
	require.Equal(t, models.Bool(true), d.Value(0, EmptyHeader))
	require.True(t, d.Value(0, "Sales_1").IsNull())
	require.Equal(t, models.Number(200.5), d.Value(1, "Sales"))
	require.Equal(t, models.Text("00123"), d.Value(1, "Sales_1"))
}

func TestSourcesAndTables(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.NewSheet("Data")
		f.SetSheetRow("Data", "A1", &[]interface{}{"Product", "Units"})
		f.SetSheetRow("Data", "A2", &[]interface{}{"Widget", 5})
		f.SetSheetRow("Data", "A3", &[]interface{}{"Gadget", 7})
		f.SetSheetRow("Data", "D1", &[]interface{}{"Ignored"})
		if err := f.AddTable("Data", &excelize.Table{Range: "A1:B3", Name: "Inventory"}); err != nil {
			t.Fatalf("Failed to add table: %v", err)
		}
	})

	wb, err := Open(path, DefaultOptions())
	require.NoError(t, err)
	defer wb.Close()

	require.Equal(t, []models.DataSource{
		{Name: "Sheet1", Type: models.SourceSheet},
		{Name: "Data", Type: models.SourceSheet},
		{Name: "Inventory", Type: models.SourceTable},
	}, wb.Sources())

	src, ok := wb.Find("Inventory")
	require.True(t, ok)
	d, err := wb.Extract(src)
	require.NoError(t, err)
	require.Equal(t, []string{"Product", "Units"}, d.Columns)
	require.Equal(t, 2, d.Len())
	require.Equal(t, models.Number(7), d.Value(1, "Units"))

	noTables := false
	wb2, err := Open(path, Options{IncludeTables: &noTables})
	require.NoError(t, err)
	defer wb2.Close()
	require.Len(t, wb2.Sources(), 2)
}

func TestExtractErrors(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "OnlyHeader")
	})
	wb, err := Open(path, DefaultOptions())
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.Extract(models.DataSource{Name: "Sheet1", Type: models.SourceSheet})
	require.True(t, errors.Is(err, ErrEmptySource))
	require.Equal(t, `Data source "Sheet1" is empty or could not be read.`, err.Error())

	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	require.Equal(t, models.SourceSheet, srcErr.Kind)

	_, err = wb.Extract(models.DataSource{Name: "Missing", Type: models.SourceTable})
	require.True(t, errors.Is(err, ErrUnknownSource))

	_, err = wb.Extract(models.DataSource{Name: "Nope", Type: models.SourceSheet})
	require.True(t, errors.Is(err, ErrUnknownSource))
}

func TestOpenReaderInvalid(t *testing.T) {
	_, err := OpenReader(bytes.NewReader([]byte("not a workbook")), "junk.xlsx", DefaultOptions())
	require.True(t, errors.Is(err, ErrInvalidWorkbook))
}

func TestHeaderNames(t *testing.T) {
	tests := []struct {
		input    []models.Value
		expected []string
	}{
		{[]models.Value{models.Text("a"), models.Text("a"), models.Text("a")}, []string{"a", "a_1", "a_2"}},
		{[]models.Value{models.Text("a"), models.Text("a_1"), models.Text("a")}, []string{"a", "a_1", "a_2"}},
		{[]models.Value{models.Null(), models.Number(2020), models.Null()}, []string{"__EMPTY", "2020", "__EMPTY_1"}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, headerNames(tt.input))
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Value
	}{
		{"123", models.Number(123)},
		{"123.45", models.Number(123.45)},
		{"-100", models.Number(-100)},
		{"hello", models.Text("hello")},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if !result.Equal(tt.expected) {
			t.Errorf("parseValue(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestParseRange(t *testing.T) {
	a, err := parseRange("$B$2:$D$10")
	require.NoError(t, err)
	require.Equal(t, area{minRow: 1, maxRow: 9, minCol: 1, maxCol: 3}, a)

	_, err = parseRange("B2")
	require.Error(t, err)
}
