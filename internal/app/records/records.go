// Package records reads and writes JSON documents through a ports.KeyValueStore.
//
// Stored data is never trusted: a value that no longer decodes into the
// requested type is logged and treated as if it had never been written.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotedesk/internal/domain"
	"github.com/jsamuelsen/quotedesk/internal/platform/logging"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

// Logical keys of the persisted layout.
const (
	KeyCompany = "company"
	KeyCatalog = "catalog"
	KeyQuotes  = "quotes"
	KeyAccess  = "access"
)

// GlobalNamespace holds records shared by every user of an installation.
const GlobalNamespace = "global"

// DefaultNamespacePrefix is prepended to every per-user namespace.
const DefaultNamespacePrefix = "saas"

// UserNamespace isolates one user's records from everyone else's.
func UserNamespace(prefix, user string) string {
	if prefix == "" {
		prefix = DefaultNamespacePrefix
	}

	return prefix + "_" + user
}

// Read loads and decodes the record under namespace and key. found is false
// when the record is absent or no longer decodes. Only store failures are
// returned as errors.
func Read[T any](ctx context.Context, store ports.KeyValueStore, namespace, key string) (value T, found bool, err error) {
	data, err := store.Get(ctx, namespace, key)
	if errors.Is(err, domain.ErrNotFound) {
		return value, false, nil
	}

	if err != nil {
		return value, false, fmt.Errorf("reading %s/%s: %w", namespace, key, err)
	}

	if err := json.Unmarshal(data, &value); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "discarding undecodable record",
			slog.String("namespace", namespace),
			slog.String("key", key),
			slog.Any("error", err),
		)

		var zero T

		return zero, false, nil
	}

	return value, true, nil
}

// Write encodes value as JSON and stores it, replacing any previous record.
func Write(ctx context.Context, store ports.KeyValueStore, namespace, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", namespace, key, err)
	}

	if err := store.Put(ctx, namespace, key, data); err != nil {
		return fmt.Errorf("writing %s/%s: %w", namespace, key, err)
	}

	return nil
}
