package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

func sample() *models.Dataset {
	return models.NewDataset([]string{"cat", "v"}, []models.Row{
		{"cat": models.Text("A"), "v": models.Number(10)},
		{"cat": models.Text("B"), "v": models.Number(20)},
		{"cat": models.Number(3), "v": models.Text("25 units")},
		{"v": models.Text("n/a")},
	})
}

func TestApplyNoFiltersIsIdentity(t *testing.T) {
	d := sample()
	require.Same(t, d, Apply(d, nil))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		filters  []models.Filter
		expected []int
	}{
		{"range", []models.Filter{models.RangeFilter("v", 15, 25)}, []int{1, 2}},
		{"range inclusive bounds", []models.Filter{models.RangeFilter("v", 10, 10)}, []int{0}},
		{"categorical stringifies", []models.Filter{models.InFilter("cat", "3", "A")}, []int{0, 2}},
		{"categorical rejects null", []models.Filter{models.InFilter("cat", "")}, nil},
		{"and across filters", []models.Filter{
			models.RangeFilter("v", 0, 100),
			models.InFilter("cat", "B", "3"),
		}, []int{1, 2}},
		{"duplicate column filters are anded", []models.Filter{
			models.RangeFilter("v", 0, 20),
			models.RangeFilter("v", 15, 30),
		}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sample()
			got := Apply(d, tt.filters)
			var want []models.Row
			for _, i := range tt.expected {
				want = append(want, d.Rows[i])
			}
			require.Equal(t, len(want), got.Len())
			for i := range want {
				require.Equal(t, want[i], got.Rows[i])
			}
			require.Equal(t, d.Columns, got.Columns)
		})
	}
}

func TestDefaultIsNonRestrictive(t *testing.T) {
	d := sample()

	rng := Default(d, "v", models.TypeNumeric)
	require.Equal(t, models.FilterNumericRange, rng.Kind)
	require.Equal(t, 10.0, rng.Min)
	require.Equal(t, 25.0, rng.Max)
	require.Equal(t, 3, Apply(d, []models.Filter{rng}).Len())

	in := Default(d, "cat", models.TypeText)
	require.Equal(t, []string{"A", "B", "3"}, in.Values)
	require.Equal(t, 3, Apply(d, []models.Filter{in}).Len())

	empty := Default(d, "missing", models.TypeDate)
	require.Equal(t, 0.0, empty.Min)
	require.Equal(t, 0.0, empty.Max)
}

func TestSortedValues(t *testing.T) {
	d := models.NewDataset([]string{"c"}, []models.Row{
		{"c": models.Text("banana")},
		{"c": models.Text("Apple")},
		{"c": models.Text("cherry")},
		{"c": models.Text("apple")},
	})
	got := SortedValues(d, "c")
	require.Len(t, got, 4)
	require.Equal(t, "cherry", got[3])
	require.Equal(t, "banana", got[2])
}

func TestCategoricalMatchesExponentNotation(t *testing.T) {
	d := models.NewDataset([]string{"v"}, []models.Row{
		{"v": models.Number(1e-7)},
		{"v": models.Number(2.5e21)},
		{"v": models.Number(1)},
	})

	got := Apply(d, []models.Filter{models.InFilter("v", "1e-7", "2.5e+21")})
	require.Equal(t, 2, got.Len())
	require.Equal(t, models.Number(1e-7), got.Value(0, "v"))

	require.Equal(t, []string{"1e-7", "2.5e+21", "1"}, Default(d, "v", models.TypeText).Values)
}
