package staging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedesk/internal/adapters/storage/memstore"
	"github.com/jsamuelsen/quotedesk/internal/domain"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

type recordingAction struct {
	name        string
	failOn      bool
	log         *[]string
	rollbackErr error
}

func (a *recordingAction) Execute(context.Context) error {
	if a.failOn {
		return errors.New("boom")
	}

	*a.log = append(*a.log, "exec:"+a.name)

	return nil
}

func (a *recordingAction) Rollback(context.Context) error {
	*a.log = append(*a.log, "undo:"+a.name)
	return a.rollbackErr
}

func (a *recordingAction) Description() string { return a.name }

func TestBatch_CommitRunsInOrder(t *testing.T) {
	var log []string

	b := New()
	require.NoError(t, b.Add(&recordingAction{name: "a", log: &log}))
	require.NoError(t, b.Add(&recordingAction{name: "b", log: &log}))
	assert.Equal(t, 2, b.Len())

	require.NoError(t, b.Commit(context.Background()))
	assert.Equal(t, []string{"exec:a", "exec:b"}, log)
}

func TestBatch_FailureRollsBackInReverse(t *testing.T) {
	var log []string

	b := New()
	require.NoError(t, b.Add(&recordingAction{name: "a", log: &log}))
	require.NoError(t, b.Add(&recordingAction{name: "b", log: &log}))
	require.NoError(t, b.Add(&recordingAction{name: "c", log: &log, failOn: true}))

	err := b.Commit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `action "c" failed`)
	assert.Equal(t, []string{"exec:a", "exec:b", "undo:b", "undo:a"}, log)
}

func TestBatch_RollbackErrorsAreReported(t *testing.T) {
	var log []string

	b := New()
	require.NoError(t, b.Add(&recordingAction{name: "a", log: &log, rollbackErr: ErrNoPriorValue}))
	require.NoError(t, b.Add(&recordingAction{name: "b", log: &log, failOn: true}))

	err := b.Commit(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoPriorValue)
}

func TestBatch_AlreadyCommitted(t *testing.T) {
	b := New()
	require.NoError(t, b.Commit(context.Background()))

	assert.ErrorIs(t, b.Add(&recordingAction{name: "late"}), ErrAlreadyCommitted)
	assert.ErrorIs(t, b.Commit(context.Background()), ErrAlreadyCommitted)
}

func TestBatch_ActionsIsACopy(t *testing.T) {
	b := New()
	require.NoError(t, b.Add(&recordingAction{name: "a"}))

	actions := b.Actions()
	actions[0] = nil

	assert.NotNil(t, b.Actions()[0])
}

// failingStore rejects writes to one key.
type failingStore struct {
	ports.KeyValueStore
	key string
}

func (s failingStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	if key == s.key {
		return domain.NewUnavailableError("storage", "read-only")
	}

	return s.KeyValueStore.Put(ctx, namespace, key, value)
}

func TestPut_RestoresPriorBytes(t *testing.T) {
	ctx := context.Background()
	mem := memstore.New()
	require.NoError(t, mem.Put(ctx, "ns", "catalog", []byte(`[{"id":"1"}]`)))

	store := failingStore{KeyValueStore: mem, key: "company"}

	b := New()
	require.NoError(t, b.Add(Put(store, "ns", "catalog", []byte(`[]`), []byte(`[]`))))
	require.NoError(t, b.Add(Put(store, "ns", "quotes", []byte(`[{"id":"q"}]`), []byte(`[]`))))
	require.NoError(t, b.Add(Put(store, "ns", "company", []byte(`{"name":"Acme"}`), nil)))

	err := b.Commit(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))

	catalog, err := mem.Get(ctx, "ns", "catalog")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(catalog))

	quotes, err := mem.Get(ctx, "ns", "quotes")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(quotes))

	_, err = mem.Get(ctx, "ns", "company")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPut_RollbackWithoutEmptyValue(t *testing.T) {
	ctx := context.Background()
	action := Put(memstore.New(), "ns", "company", []byte(`{}`), nil)

	require.NoError(t, action.Execute(ctx))
	assert.ErrorIs(t, action.Rollback(ctx), ErrNoPriorValue)
	assert.Equal(t, "put ns/company", action.Description())
}
