package xlviz

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/catalogue"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/parser"
	"github.com/ukaji3/xlviz-go/pkg/xlviz/shaper"
)

func salesData() *models.Dataset {
	return models.NewDataset([]string{"cat", "v"}, []models.Row{
		{"cat": models.Text("A"), "v": models.Number(10)},
		{"cat": models.Text("B"), "v": models.Number(20)},
	})
}

func barSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession("sales.xlsx", "Sheet1", salesData())
	require.NoError(t, s.SetChart("bar"))
	require.NoError(t, s.Map("category", "cat"))
	require.NoError(t, s.Map("values", "v"))
	return s
}

func TestSessionShape(t *testing.T) {
	s := barSession(t)

	out, err := s.Shape()
	require.NoError(t, err)
	bar := out.(*shaper.Categorical)
	require.Equal(t, []models.Value{models.Text("A"), models.Text("B")}, bar.Labels)
	require.Equal(t, []models.Value{models.Number(10), models.Number(20)}, bar.Series[0].Values)

	f, err := s.AddFilter("v")
	require.NoError(t, err)
	require.Equal(t, models.RangeFilter("v", 10, 20), f)
	require.Equal(t, 2, s.Visible().Len())

	require.NoError(t, s.SetRange("v", 15, 25))
	require.Equal(t, 1, s.Visible().Len())
	require.Equal(t, models.Text("B"), s.Visible().Value(0, "cat"))

	out, err = s.Shape()
	require.NoError(t, err)
	require.Equal(t, []models.Value{models.Text("B")}, out.(*shaper.Categorical).Labels)

	s.RemoveFilter("v")
	require.Equal(t, 2, s.Visible().Len())
}

func TestSessionNotReady(t *testing.T) {
	s := NewSession("sales.xlsx", "Sheet1", salesData())
	require.NoError(t, s.SetChart("pie"))
	require.NoError(t, s.Map("labels", "cat"))

	_, err := s.Shape()
	require.True(t, errors.Is(err, shaper.ErrNotReady))
}

func TestSessionFilterErrors(t *testing.T) {
	s := barSession(t)

	_, err := s.AddFilter("missing")
	require.True(t, errors.Is(err, ErrUnknownColumn))

	f, err := s.AddFilter("cat")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, f.Values)

	_, err = s.AddFilter("cat")
	require.True(t, errors.Is(err, ErrDuplicateFilter))

	require.True(t, errors.Is(s.SetRange("v", 0, 1), ErrNoFilter))
	require.Error(t, s.SetRange("cat", 0, 1))

	require.NoError(t, s.SetValues("cat", "A"))
	require.Equal(t, 1, s.Visible().Len())
}

func TestSessionSparseFirstRow(t *testing.T) {
	d := models.NewDataset([]string{"a", "b"}, []models.Row{
		{"a": models.Number(1)},
		{"a": models.Number(2), "b": models.Text("x")},
	})
	s := NewSession("sparse.xlsx", "Sheet1", d)
	require.Equal(t, models.ColumnTypes{"a": models.TypeNumeric}, s.Types())

	_, err := s.AddFilter("b")
	require.True(t, errors.Is(err, ErrUnknownColumn))
	require.NoError(t, s.SetChart("bar"))
	require.True(t, errors.Is(s.Map("category", "b"), ErrUnknownColumn))
}

func TestSessionFilterChoices(t *testing.T) {
	d := models.NewDataset([]string{"name"}, []models.Row{
		{"name": models.Text("beta")},
		{"name": models.Text("Alpha")},
		{"name": models.Text("beta")},
		{"name": models.Text("Gamma")},
	})
	s := NewSession("names.xlsx", "Sheet1", d)

	choices, err := s.FilterChoices("name")
	require.NoError(t, err)
	require.Equal(t, []string{"Alpha", "beta", "Gamma"}, choices)

	_, err = s.FilterChoices("missing")
	require.True(t, errors.Is(err, ErrUnknownColumn))
}

func TestSessionOverrides(t *testing.T) {
	s := barSession(t)
	require.Equal(t, models.TypeNumeric, s.Types()["v"])

	require.NoError(t, s.SetOverride("v", models.TypeText))
	require.Equal(t, models.TypeText, s.Types()["v"])

	f, err := s.AddFilter("v")
	require.NoError(t, err)
	require.Equal(t, models.FilterCategoricalIn, f.Kind)

	require.NoError(t, s.SetOverride("v", models.TypeAuto))
	require.Equal(t, models.TypeNumeric, s.Types()["v"])

	require.True(t, errors.Is(s.SetOverride("v", "currency"), ErrInvalidType))
	require.True(t, errors.Is(s.SetOverride("nope", models.TypeText), ErrUnknownColumn))
}

func TestSessionMapValidation(t *testing.T) {
	s := barSession(t)
	require.True(t, errors.Is(s.Map("category", "nope"), ErrUnknownColumn))
	require.Error(t, s.Map("size", "v"))
	require.True(t, errors.Is(s.SetChart("gantt"), ErrUnknownChart))

	require.NoError(t, s.SetChart("line"))
	require.Empty(t, s.Mapping)
}

func TestSnapshotAndEdit(t *testing.T) {
	s := barSession(t)
	_, err := s.AddFilter("v")
	require.NoError(t, err)
	require.NoError(t, s.SetFormat("v", models.ColumnFormat{Notation: models.NotationCompact}))

	_, err = s.Snapshot("   ")
	require.True(t, errors.Is(err, catalogue.ErrInvalidTitle))

	viz, err := s.Snapshot("  Sales  ")
	require.NoError(t, err)
	require.Equal(t, "Sales", viz.Title)
	require.Equal(t, "Sheet1", viz.DataSourceName)
	require.Equal(t, "bar", viz.ChartDefinition.ID)

	// Later edits never reach the snapshot.
	s.Data.Rows[0]["v"] = models.Number(999)
	require.NoError(t, s.SetRange("v", 0, 1))
	s.Mapping.Set("values", "cat")
	require.Equal(t, models.Number(10), viz.ChartData.Value(0, "v"))
	require.Equal(t, 20.0, viz.Filters[0].Max)
	require.Equal(t, "v", viz.ColumnMapping.Get("values"))

	edit, err := EditSession(viz)
	require.NoError(t, err)
	out, err := edit.Shape()
	require.NoError(t, err)
	require.Len(t, out.(*shaper.Categorical).Labels, 2)

	edit.Data.Rows[1]["v"] = models.Number(0)
	require.Equal(t, models.Number(20), viz.ChartData.Value(1, "v"))

	saved, err := ShapeSaved(viz)
	require.NoError(t, err)
	require.Equal(t, out, saved)
}

func TestOpenSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"region", "revenue"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"North", 120}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"South", 80}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s, err := OpenSession(path, "Sheet1")
	require.NoError(t, err)
	require.Equal(t, "book.xlsx", s.FileName)
	require.Equal(t, []string{"region", "revenue"}, s.Data.Header())
	require.Equal(t, models.TypeNumeric, s.Types()["revenue"])

	_, err = OpenSession(path, "Nope")
	require.True(t, errors.Is(err, parser.ErrUnknownSource))

	_, err = OpenSession(filepath.Join(t.TempDir(), "missing.xlsx"), "Sheet1")
	require.True(t, errors.Is(err, ErrFileNotFound))
}
