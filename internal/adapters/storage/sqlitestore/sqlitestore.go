/*
Package sqlitestore persists records in a single SQLite table.

SCHEMA:

	records(namespace TEXT, key TEXT, value BLOB, updated_at TEXT)
	PRIMARY KEY (namespace, key)

Writes are upserts, so the last write for a namespace/key pair wins.
The database is opened in WAL mode; use ":memory:" for a throwaway store.
*/
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (namespace, key)
);`

// Store is a ports.KeyValueStore backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the database at path and creates the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite at %q: %w", path, err)
	}

	// A second connection to ":memory:" would see an empty database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating sqlite: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the stored value or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var value []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("record", namespace+"/"+key)
	}

	if err != nil {
		return nil, domain.NewUnavailableError(s.Name(), err.Error())
	}

	return value, nil
}

// Put inserts or replaces the record.
func (s *Store) Put(ctx context.Context, namespace, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		namespace, key, value, s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return domain.NewUnavailableError(s.Name(), err.Error())
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "storage.sqlite" }

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
