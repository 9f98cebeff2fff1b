package catalogue

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tiendc/go-deepcopy"
	"go.uber.org/zap"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

// DefaultKey is the storage key of the catalogue.
const DefaultKey = "excel-visualizer-saved"

var (
	// ErrNotFound indicates no visualization has the requested id.
	ErrNotFound = errors.New("visualization not found")

	// ErrEmptyCatalogue indicates an export of a catalogue without entries.
	ErrEmptyCatalogue = errors.New("your catalogue is empty, there is nothing to save")

	// ErrInvalidTitle indicates a visualization saved without a title.
	ErrInvalidTitle = errors.New("please provide a title")
)

// Options configures a Store.
type Options struct {
	// Key is the storage key. If empty, DefaultKey is used.
	Key string
	// Logger receives load warnings and mutation events.
	// If nil, logging is disabled.
	Logger *zap.Logger
	// Clock supplies id timestamps. If nil, time.Now is used.
	Clock func() time.Time
}

// DefaultOptions returns default store options.
func DefaultOptions() Options {
	return Options{Key: DefaultKey}
}

func (o Options) key() string {
	if o.Key != "" {
		return o.Key
	}
	return DefaultKey
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

// Store is the catalogue of saved visualizations. Every mutation rewrites
// the whole collection to storage; when the write fails the in-memory list
// is left unchanged.
type Store struct {
	mu      sync.Mutex
	storage Storage
	opts    Options
	items   []models.SavedVisualization
	lastID  int64
}

// New returns an empty Store over storage. Call Load to read the persisted
// catalogue.
func New(storage Storage, opts Options) *Store {
	return &Store{storage: storage, opts: opts}
}

// Load reads the persisted catalogue. Unparseable data is logged and
// replaced by an empty catalogue; only storage failures are returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Load(ctx, s.opts.key())
	if err != nil {
		return errors.Wrap(err, "load catalogue")
	}

	var items []models.SavedVisualization
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			s.opts.logger().Warn("could not load saved visualizations, starting empty",
				zap.String("key", s.opts.key()),
				zap.Error(err),
			)
			items = nil
		}
	}

	s.items = items
	s.lastID = 0
	for _, v := range items {
		s.lastID = max(s.lastID, v.ID)
	}
	return nil
}

// List returns the visualizations in insertion order.
func (s *Store) List() []models.SavedVisualization {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SavedVisualization(nil), s.items...)
}

// Len returns the number of saved visualizations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the visualization with the given id.
func (s *Store) Get(id int64) (models.SavedVisualization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.items {
		if v.ID == id {
			return v, nil
		}
	}
	return models.SavedVisualization{}, errors.Wrapf(ErrNotFound, "id %d", id)
}

// Add stores a copy of viz under a fresh id and returns the stored record.
// The title is trimmed and must not be empty.
func (s *Store) Add(ctx context.Context, viz models.SavedVisualization) (models.SavedVisualization, error) {
	viz.Title = strings.TrimSpace(viz.Title)
	if viz.Title == "" {
		return models.SavedVisualization{}, ErrInvalidTitle
	}

	rec, err := Snapshot(viz)
	if err != nil {
		return models.SavedVisualization{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID()
	next := append(append([]models.SavedVisualization(nil), s.items...), rec)
	if err := s.persist(ctx, next); err != nil {
		return models.SavedVisualization{}, err
	}
	s.lastID = rec.ID
	s.opts.logger().Info("visualization saved",
		zap.Int64("id", rec.ID),
		zap.String("title", rec.Title),
		zap.String("chart", rec.ChartDefinition.ID),
	)
	return rec, nil
}

// Delete removes the visualization with the given id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.SavedVisualization, 0, len(s.items))
	for _, v := range s.items {
		if v.ID != id {
			next = append(next, v)
		}
	}
	if len(next) == len(s.items) {
		return errors.Wrapf(ErrNotFound, "id %d", id)
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.opts.logger().Info("visualization deleted", zap.Int64("id", id))
	return nil
}

// Replace swaps the whole catalogue for items.
func (s *Store) Replace(ctx context.Context, items []models.SavedVisualization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.SavedVisualization(nil), items...)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	for _, v := range next {
		s.lastID = max(s.lastID, v.ID)
	}
	s.opts.logger().Info("catalogue replaced", zap.Int("count", len(next)))
	return nil
}

// Clear removes every visualization.
func (s *Store) Clear(ctx context.Context) error {
	return s.Replace(ctx, nil)
}

// persist writes next and, on success, makes it the current list.
func (s *Store) persist(ctx context.Context, next []models.SavedVisualization) error {
	if next == nil {
		next = []models.SavedVisualization{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return errors.Wrap(err, "encode catalogue")
	}
	if err := s.storage.Save(ctx, s.opts.key(), data); err != nil {
		return errors.Wrap(err, "save catalogue")
	}
	s.items = next
	return nil
}

// nextID returns a millisecond timestamp strictly greater than every id
// handed out or loaded so far.
func (s *Store) nextID() int64 {
	id := s.opts.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}

// Snapshot returns a deep copy of viz, so later edits to the working
// dataset or settings never reach the stored record.
func Snapshot(viz models.SavedVisualization) (models.SavedVisualization, error) {
	data := viz.ChartData
	viz.ChartData = nil

	var out models.SavedVisualization
	if err := deepcopy.Copy(&out, viz); err != nil {
		return models.SavedVisualization{}, errors.Wrap(err, "copy visualization")
	}
	out.ChartData = data.Clone()
	return out, nil
}
