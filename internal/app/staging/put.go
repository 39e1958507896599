package staging

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsamuelsen/quotedesk/internal/domain"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

// PutAction overwrites one record and remembers what it replaced.
type PutAction struct {
	store     ports.KeyValueStore
	namespace string
	key       string
	value     []byte
	empty     []byte

	prior   []byte
	existed bool
}

// Put stages writing value under namespace and key. empty is what a rollback
// writes when the key did not exist before; nil means such a rollback fails
// with ErrNoPriorValue.
func Put(store ports.KeyValueStore, namespace, key string, value, empty []byte) *PutAction {
	return &PutAction{
		store:     store,
		namespace: namespace,
		key:       key,
		value:     value,
		empty:     empty,
	}
}

// Execute snapshots the current record and writes the new value.
func (a *PutAction) Execute(ctx context.Context) error {
	prior, err := a.store.Get(ctx, a.namespace, a.key)

	switch {
	case err == nil:
		a.prior, a.existed = prior, true
	case errors.Is(err, domain.ErrNotFound):
		a.prior, a.existed = nil, false
	default:
		return fmt.Errorf("snapshotting %s/%s: %w", a.namespace, a.key, err)
	}

	if err := a.store.Put(ctx, a.namespace, a.key, a.value); err != nil {
		return fmt.Errorf("writing %s/%s: %w", a.namespace, a.key, err)
	}

	return nil
}

// Rollback writes back the snapshot taken by Execute.
func (a *PutAction) Rollback(ctx context.Context) error {
	restore := a.prior
	if !a.existed {
		if a.empty == nil {
			return ErrNoPriorValue
		}

		restore = a.empty
	}

	return a.store.Put(ctx, a.namespace, a.key, restore)
}

// Description implements Action.
func (a *PutAction) Description() string {
	return "put " + a.namespace + "/" + a.key
}
