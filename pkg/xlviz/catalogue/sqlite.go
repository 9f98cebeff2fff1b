package catalogue

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	// SQLite driver registered as "sqlite".
	_ "modernc.org/sqlite"
)

const (
	createKVTable = `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`
	selectKV      = `SELECT value FROM kv WHERE key = ?`
	upsertKV      = `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
)

// SQLiteStorage keeps catalogues in a single-table SQLite database.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database at dsn, for
// example "xlviz.db" or "file::memory:?cache=shared".
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite: open")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "sqlite: ping")
	}

	if _, err := db.ExecContext(ctx, createKVTable); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "sqlite: create table")
	}
	return &SQLiteStorage{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, selectKV, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "sqlite: load %q", key)
	}
	return data, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, key string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertKV, key, data); err != nil {
		return errors.Wrapf(err, "sqlite: save %q", key)
	}
	return nil
}
