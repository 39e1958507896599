package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/storagetest"
)

func TestStore_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	storagetest.Run(t, s)
}

func TestStore_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quotedesk.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "saas_u1", "quotes", []byte(`[]`)))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(ctx, "saas_u1", "quotes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestPut_StampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, s.Put(ctx, "ns", "k", []byte("v")))

	var updatedAt string
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT updated_at FROM records WHERE namespace = 'ns' AND key = 'k'`,
	).Scan(&updatedAt))
	assert.Equal(t, "2024-05-01T12:00:00Z", updatedAt)
}
