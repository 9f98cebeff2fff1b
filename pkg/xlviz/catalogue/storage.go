// Package catalogue persists saved visualizations and moves them in and out
// of project bundles.
package catalogue

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/cockroachdb/errors"
)

// Storage is a key/value boundary holding serialized catalogues.
type Storage interface {
	// Load returns the stored bytes, or nil when the key was never written.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the stored bytes of key.
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryStorage keeps catalogues in process memory.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.data[key]; ok {
		return append([]byte(nil), b...), nil
	}
	return nil, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// FileStorage keeps one JSON file per key in a directory.
type FileStorage struct {
	Dir string
}

// NewFileStorage returns a FileStorage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{Dir: dir}
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.Dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (f *FileStorage) Load(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read catalogue %q", key)
	}
	return b, nil
}

// Save writes to a temporary file and renames it over the target so a
// failed write never leaves a truncated catalogue behind.
func (f *FileStorage) Save(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return errors.Wrap(err, "create store directory")
	}
	tmp, err := os.CreateTemp(f.Dir, ".catalogue-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write catalogue %q", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write catalogue %q", key)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return errors.Wrapf(err, "replace catalogue %q", key)
	}
	return nil
}
