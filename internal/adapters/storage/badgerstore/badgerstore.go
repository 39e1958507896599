// Package badgerstore persists records in an embedded Badger database.
// It is the default record store of a local installation.
package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// Store is a ports.KeyValueStore backed by Badger. Each record lives under
// the key "namespace/key".
type Store struct {
	db *badger.DB
}

// Open opens or creates the database in dir. An empty dir opens an
// in-memory database.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %q: %w", dir, err)
	}

	return &Store{db: db}, nil
}

func recordKey(namespace, key string) []byte {
	return []byte(namespace + "/" + key)
}

// Get returns the stored value or domain.ErrNotFound.
func (s *Store) Get(_ context.Context, namespace, key string) ([]byte, error) {
	var value []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(namespace, key))
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.NewNotFoundError("record", namespace+"/"+key)
	}

	if err != nil {
		return nil, domain.NewUnavailableError(s.Name(), err.Error())
	}

	return value, nil
}

// Put stores value in its own transaction.
func (s *Store) Put(_ context.Context, namespace, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(namespace, key), value)
	})
	if err != nil {
		return domain.NewUnavailableError(s.Name(), err.Error())
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "storage.badger" }

// Check implements ports.HealthChecker.
func (s *Store) Check(context.Context) error {
	if s.db.IsClosed() {
		return errors.New("database is closed")
	}

	return nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
