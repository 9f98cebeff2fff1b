package catalogue

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func sampleViz(title string) models.SavedVisualization {
	return models.SavedVisualization{
		Title:           title,
		ChartDefinition: models.ChartDefinition{ID: "bar", Name: "Bar Chart"},
		DataSourceName:  "Sheet1",
		FileName:        "sales.xlsx",
		ChartData: models.NewDataset([]string{"cat", "v"}, []models.Row{
			{"cat": models.Text("A"), "v": models.Number(10)},
		}),
		ColumnMapping: models.ColumnMapping{"category": "cat", "values": "v"},
		Filters:       []models.Filter{models.RangeFilter("v", 0, 100)},
	}
}

// failingStorage rejects every write.
type failingStorage struct {
	*MemoryStorage
}

func (failingStorage) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestStoreBackends(t *testing.T) {
	ctx := context.Background()
	sqlite, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "xlviz.db"))
	require.NoError(t, err)
	defer sqlite.Close()

	backends := map[string]Storage{
		"memory": NewMemoryStorage(),
		"file":   NewFileStorage(t.TempDir()),
		"sqlite": sqlite,
	}

	for name, storage := range backends {
		t.Run(name, func(t *testing.T) {
			s := New(storage, Options{Clock: fixedClock(1000)})
			require.NoError(t, s.Load(ctx))
			require.Equal(t, 0, s.Len())

			first, err := s.Add(ctx, sampleViz("  First  "))
			require.NoError(t, err)
			require.Equal(t, "First", first.Title)
			require.Equal(t, int64(1000), first.ID)

			second, err := s.Add(ctx, sampleViz("Second"))
			require.NoError(t, err)
			require.Equal(t, int64(1001), second.ID)

			reloaded := New(storage, Options{Clock: fixedClock(1000)})
			require.NoError(t, reloaded.Load(ctx))
			require.Len(t, reloaded.List(), 2)

			got, err := reloaded.Get(first.ID)
			require.NoError(t, err)
			require.Equal(t, models.Number(10), got.ChartData.Value(0, "v"))
			require.Equal(t, []models.Filter{models.RangeFilter("v", 0, 100)}, got.Filters)

			third, err := reloaded.Add(ctx, sampleViz("Third"))
			require.NoError(t, err)
			require.Equal(t, int64(1002), third.ID)

			require.NoError(t, reloaded.Delete(ctx, first.ID))
			require.True(t, errors.Is(reloaded.Delete(ctx, first.ID), ErrNotFound))
			require.Len(t, reloaded.List(), 2)

			require.NoError(t, reloaded.Clear(ctx))
			require.Equal(t, 0, reloaded.Len())
		})
	}
}

func TestStoreRejectsBlankTitle(t *testing.T) {
	s := New(NewMemoryStorage(), DefaultOptions())
	_, err := s.Add(context.Background(), sampleViz("   "))
	require.True(t, errors.Is(err, ErrInvalidTitle))
}

func TestStoreSnapshotIsIndependent(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryStorage(), DefaultOptions())
	viz := sampleViz("Snap")
	saved, err := s.Add(ctx, viz)
	require.NoError(t, err)

	viz.ChartData.Rows[0]["v"] = models.Number(999)
	viz.ColumnMapping["values"] = "other"

	got, err := s.Get(saved.ID)
	require.NoError(t, err)
	require.Equal(t, models.Number(10), got.ChartData.Value(0, "v"))
	require.Equal(t, "v", got.ColumnMapping.Get("values"))
}

func TestStoreLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	require.NoError(t, mem.Save(ctx, DefaultKey, []byte("{not json")))

	s := New(mem, DefaultOptions())
	require.NoError(t, s.Load(ctx))
	require.Equal(t, 0, s.Len())
}

func TestStoreRollsBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	seed := New(mem, DefaultOptions())
	_, err := seed.Add(ctx, sampleViz("Kept"))
	require.NoError(t, err)

	s := New(failingStorage{mem}, DefaultOptions())
	require.NoError(t, s.Load(ctx))

	_, err = s.Add(ctx, sampleViz("Lost"))
	require.Error(t, err)
	require.Equal(t, 1, s.Len())

	require.Error(t, s.Delete(ctx, s.List()[0].ID))
	require.Equal(t, 1, s.Len())
}
