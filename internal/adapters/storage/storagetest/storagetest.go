// Package storagetest holds the behavior every ports.KeyValueStore adapter
// must share. Adapter tests call Run with a fresh store.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedesk/internal/domain"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

// Run exercises not-found, overwrite and namespace isolation on store.
func Run(t *testing.T, store ports.KeyValueStore) {
	t.Helper()

	ctx := context.Background()

	t.Run("missing key is not found", func(t *testing.T) {
		_, err := store.Get(ctx, "saas_u1", "never-written")
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "saas_u1", "company", []byte(`{"name":"Acme"}`)))

		got, err := store.Get(ctx, "saas_u1", "company")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Acme"}`, string(got))
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "saas_u1", "catalog", []byte(`[1]`)))
		require.NoError(t, store.Put(ctx, "saas_u1", "catalog", []byte(`[1,2]`)))

		got, err := store.Get(ctx, "saas_u1", "catalog")
		require.NoError(t, err)
		assert.Equal(t, `[1,2]`, string(got))
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "saas_a", "quotes", []byte(`["a"]`)))

		_, err := store.Get(ctx, "saas_b", "quotes")
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("returned value is not aliased", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "global", "access", []byte(`{"code":"X"}`)))

		first, err := store.Get(ctx, "global", "access")
		require.NoError(t, err)
		first[0] = '!'

		second, err := store.Get(ctx, "global", "access")
		require.NoError(t, err)
		assert.Equal(t, `{"code":"X"}`, string(second))
	})

	if checker, ok := store.(ports.HealthChecker); ok {
		t.Run("healthy", func(t *testing.T) {
			assert.NotEmpty(t, checker.Name())
			assert.NoError(t, checker.Check(ctx))
		})
	}
}
