package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

func TestToJSON(t *testing.T) {
	v := map[string]int{"a": 1}

	compact, err := ToJSON(v, false)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(compact))

	pretty, err := ToJSON(v, true)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1\n}", string(pretty))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, v, false))
	require.Equal(t, "{\"a\":1}\n", buf.String())
}

func TestPreview(t *testing.T) {
	d := models.NewDataset([]string{"name", "sales"}, []models.Row{
		{"name": models.Text("a"), "sales": models.Number(1234)},
		{"name": models.Text("b")},
		{"name": models.Text("c"), "sales": models.Number(5)},
	})
	types := models.ColumnTypes{"name": models.TypeText, "sales": models.TypeNumeric}
	opts := models.FormatOptions{"sales": {Notation: models.NotationCompact}}

	table := Preview(d, types, opts, 2)
	require.Equal(t, 3, table.Total)
	require.Equal(t, [][]string{{"a", "1.2K"}, {"b", ""}}, table.Rows)
}
