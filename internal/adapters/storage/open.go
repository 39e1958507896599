// Package storage selects the record store adapter named by configuration.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/badgerstore"
	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/dynamostore"
	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/memstore"
	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/sqlitestore"
	"github.com/jsamuelsen/quotedesk/internal/platform/config"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

// Store is what the rest of the program needs from a record store adapter.
type Store interface {
	ports.KeyValueStore
	ports.HealthChecker
	io.Closer
}

var (
	_ Store = (*memstore.Store)(nil)
	_ Store = (*badgerstore.Store)(nil)
	_ Store = (*sqlitestore.Store)(nil)
	_ Store = (*dynamostore.Store)(nil)
)

// Open returns the adapter for cfg.Driver. The caller owns the returned store
// and must Close it.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Driver {
	case config.DriverMemory:
		return memstore.New(), nil
	case config.DriverBadger:
		store, err = badgerstore.Open(cfg.Path)
	case config.DriverSQLite:
		store, err = sqlitestore.Open(cfg.Path)
	case config.DriverDynamoDB:
		store, err = dynamostore.Connect(ctx, dynamostore.Config{
			Table:    cfg.DynamoDB.Table,
			Region:   cfg.DynamoDB.Region,
			Endpoint: cfg.DynamoDB.Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	if err != nil {
		return nil, err
	}

	return store, nil
}
